package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brecho-pos/internal/application/coupon"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
)

// CouponHandler maneja cupones de descuento.
type CouponHandler struct {
	uc *coupon.CouponUseCase
}

// NewCouponHandler construye el handler.
func NewCouponHandler(uc *coupon.CouponUseCase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cupón (ADMIN)
// @Tags         coupons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCouponRequest  true  "type FIXED | PERCENT"
// @Success      201   {object}  dto.CouponResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/coupons [post]
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCouponRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cupones
// @Tags         coupons
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CouponResponse
// @Router       /api/coupons [get]
func (h *CouponHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar cupón (ADMIN)
// @Tags         coupons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string                      true  "código"
// @Param        body  body  dto.SetCouponActiveRequest  true  "active"
// @Success      200   {object}  dto.CouponResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/coupons/{code}/active [patch]
func (h *CouponHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetCouponActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetActive(c.UserContext(), c.Params("code"), in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
