package entity

import (
	"fmt"
	"strings"
	"time"
)

// Role rol de un perfil de acceso.
type Role string

// Roles válidos para Profile.
const (
	RoleAdmin Role = "ADMIN"
	RoleCaixa Role = "CAIXA"
)

// Valid indica si r es un rol conocido.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCaixa
}

// ParseRole convierte un string en Role. Vacío equivale a CAIXA.
func ParseRole(s string) (Role, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return RoleCaixa, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("rol desconocido: %q", s)
	}
	return r, nil
}

// Profile perfil de acceso del personal de la tienda.
type Profile struct {
	ID           string
	Name         string
	Email        string // clave de login, única
	PasswordHash string // bcrypt
	Role         Role
	Active       bool
	CreatedAt    time.Time
}

// IsAdmin indica si el perfil tiene rol ADMIN.
func (p *Profile) IsAdmin() bool { return p.Role == RoleAdmin }
