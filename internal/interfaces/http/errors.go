package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable orden de evaluación: el primer sentinel que coincide con errors.Is gana.
var errorTable = []errorMapping{
	{domain.ErrInvalidCoupon, fiber.StatusBadRequest, "INVALID_COUPON"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrSessionRevoked, fiber.StatusUnauthorized, "SESSION_REVOKED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrAccountDisabled, fiber.StatusForbidden, "ACCOUNT_DISABLED"},
	{domain.ErrSelfProtection, fiber.StatusForbidden, "SELF_PROTECTION"},
	{domain.ErrLastAdmin, fiber.StatusForbidden, "LAST_ADMIN"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrItemUnavailable, fiber.StatusConflict, "ITEM_UNAVAILABLE"},
	{domain.ErrInsufficientBalance, fiber.StatusConflict, "INSUFFICIENT_BALANCE"},
	{domain.ErrInsufficientCredit, fiber.StatusConflict, "INSUFFICIENT_CREDIT"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrBlobPolicy, fiber.StatusUnprocessableEntity, "BLOB_POLICY"},
	{domain.ErrBlobStorage, fiber.StatusBadGateway, "BLOB_STORAGE"},
}

// classifyError devuelve status HTTP y código para err.
func classifyError(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// internalMessage texto devuelto al cliente para errores no clasificados.
const internalMessage = "error interno del servidor"

// respondError escribe dto.ErrorResponse con el status correspondiente al error.
// Un error INTERNAL no expone su texto: queda en Locals para que AccessLog lo registre.
func respondError(c *fiber.Ctx, err error) error {
	status, code := classifyError(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		c.Locals(localsError, err)
		msg = internalMessage
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}
