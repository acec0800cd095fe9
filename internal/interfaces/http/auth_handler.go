package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brecho-pos/internal/application/auth"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
)

// AuthHandler maneja login, sesión actual y gestión de perfiles.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return validation(c, "email y password son requeridos")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil de la sesión actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, err := h.uc.ValidateSession(c.UserContext(), GetProfileID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProfileResponse(p))
}

// ListProfiles godoc
// @Summary      Listar perfiles
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProfileResponse
// @Router       /api/profiles [get]
func (h *AuthHandler) ListProfiles(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateProfile godoc
// @Summary      Crear perfil (ADMIN)
// @Tags         profiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProfileRequest  true  "name, email, password, role"
// @Success      201   {object}  dto.ProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/profiles [post]
func (h *AuthHandler) CreateProfile(c *fiber.Ctx) error {
	var in dto.CreateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Password) < 6 {
		return validation(c, "password debe tener al menos 6 caracteres")
	}
	out, err := h.uc.AddProfile(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ToggleProfile godoc
// @Summary      Activar o desactivar perfil (ADMIN)
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del perfil"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{id}/toggle [patch]
func (h *AuthHandler) ToggleProfile(c *fiber.Ctx) error {
	out, err := h.uc.ToggleStatus(c.UserContext(), GetProfileID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteProfile godoc
// @Summary      Eliminar perfil (ADMIN)
// @Tags         profiles
// @Security     Bearer
// @Param        id   path  string  true  "ID del perfil"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{id} [delete]
func (h *AuthHandler) DeleteProfile(c *fiber.Ctx) error {
	if err := h.uc.DeleteProfile(c.UserContext(), GetProfileID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
