package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/pkg/jwt"
)

// Locals keys para ProfileID y Role en Fiber.
const (
	LocalProfileID = "profile_id"
	LocalRole      = "role"
)

// SessionValidator revalida el perfil del token contra el almacén (lo implementa auth.AuthUseCase).
type SessionValidator interface {
	ValidateSession(ctx context.Context, profileID string) (*entity.Profile, error)
}

// AuthMiddleware valida el Bearer Token JWT y reconcilia la sesión con el perfil almacenado:
// un perfil eliminado o desactivado invalida el token aunque no haya expirado.
// El rol cargado en Locals es el del perfil actual, no el del token.
func AuthMiddleware(jwtSecret string, sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		profileID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || profileID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if sessions != nil {
			p, err := sessions.ValidateSession(c.UserContext(), profileID)
			if err != nil {
				return respondError(c, err)
			}
			role = string(p.Role)
		}
		c.Locals(LocalProfileID, profileID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetProfileID devuelve el ProfileID del contexto (después del middleware de auth).
func GetProfileID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalProfileID).(string)
	return s
}

// GetRole devuelve el rol vigente del perfil autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
