package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/jhoicas/brecho-pos/pkg/jwt"
	"github.com/jhoicas/brecho-pos/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de acceso: login, validación de sesión y gestión de perfiles.
// El control de rol (solo ADMIN gestiona perfiles) lo hace la capa HTTP; aquí se aplican
// las protecciones contra auto-bloqueo y contra quedarse sin administradores.
type AuthUseCase struct {
	profiles repository.ProfileRepository
	tx       repository.TxRunner
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(profiles repository.ProfileRepository, tx repository.TxRunner, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{profiles: profiles, tx: tx, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Authenticate busca el perfil por email exacto y compara la contraseña.
// Devuelve (nil, nil) si no hay coincidencia, sin revelar cuál campo falló.
// Si las credenciales coinciden pero el perfil está inactivo devuelve ErrAccountDisabled.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*entity.Profile, error) {
	p, err := uc.profiles.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}
	if !p.Active {
		return nil, domain.ErrAccountDisabled
	}
	return p, nil
}

// Login verifica email/password, genera JWT y retorna token + perfil.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	p, err := uc.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, p.ID, string(p.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("profile_id", p.ID).Str("role", string(p.Role)).Msg("login")
	return &dto.LoginResponse{Token: token, Profile: *dto.NewProfileResponse(p)}, nil
}

// ValidateSession reconcilia la identidad del token con el perfil actual.
// Si el perfil ya no existe o fue desactivado devuelve ErrSessionRevoked.
func (uc *AuthUseCase) ValidateSession(ctx context.Context, profileID string) (*entity.Profile, error) {
	p, err := uc.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Active {
		return nil, domain.ErrSessionRevoked
	}
	return p, nil
}

// AddProfile crea un perfil activo: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) AddProfile(ctx context.Context, in dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	existing, err := uc.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	p := &entity.Profile{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := uc.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("profile_id", p.ID).Str("role", string(role)).Msg("perfil creado")
	return dto.NewProfileResponse(p), nil
}

// EnsureAdmin crea el perfil in como ADMIN solo si todavía no existe ningún administrador activo.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, in dto.CreateProfileRequest) (*dto.ProfileResponse, bool, error) {
	n, err := uc.profiles.CountActiveAdmins(ctx)
	if err != nil {
		return nil, false, err
	}
	if n > 0 {
		return nil, false, nil
	}
	in.Role = string(entity.RoleAdmin)
	p, err := uc.AddProfile(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// ToggleStatus activa o desactiva el perfil targetID.
// Rechaza con ErrSelfProtection desactivar el propio perfil activo y con ErrLastAdmin
// desactivar al único administrador activo.
func (uc *AuthUseCase) ToggleStatus(ctx context.Context, actorID, targetID string) (*dto.ProfileResponse, error) {
	var out *entity.Profile
	err := uc.tx.RunInTx(ctx, func(r repository.Repos) error {
		target, err := r.Profiles.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNotFound
		}
		if target.Active {
			if target.ID == actorID {
				return domain.ErrSelfProtection
			}
			if err := guardLastAdmin(ctx, r.Profiles, target); err != nil {
				return err
			}
		}
		target.Active = !target.Active
		if err := r.Profiles.SetActive(ctx, target.ID, target.Active); err != nil {
			return err
		}
		out = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("actor_id", actorID).Str("profile_id", targetID).Bool("active", out.Active).Msg("estado de perfil actualizado")
	return dto.NewProfileResponse(out), nil
}

// DeleteProfile elimina el perfil targetID. Nunca se permite eliminar el propio perfil
// ni al único administrador activo.
func (uc *AuthUseCase) DeleteProfile(ctx context.Context, actorID, targetID string) error {
	if targetID == actorID {
		return domain.ErrSelfProtection
	}
	err := uc.tx.RunInTx(ctx, func(r repository.Repos) error {
		target, err := r.Profiles.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNotFound
		}
		if target.Active {
			if err := guardLastAdmin(ctx, r.Profiles, target); err != nil {
				return err
			}
		}
		return r.Profiles.Delete(ctx, targetID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("actor_id", actorID).Str("profile_id", targetID).Msg("perfil eliminado")
	return nil
}

// guardLastAdmin falla si target es el único ADMIN activo.
func guardLastAdmin(ctx context.Context, profiles repository.ProfileRepository, target *entity.Profile) error {
	if !target.IsAdmin() {
		return nil
	}
	n, err := profiles.CountActiveAdmins(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return domain.ErrLastAdmin
	}
	return nil
}

// List devuelve los perfiles ordenados por nombre.
func (uc *AuthUseCase) List(ctx context.Context) ([]*dto.ProfileResponse, error) {
	list, err := uc.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProfileResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProfileResponse(p))
	}
	return out, nil
}
