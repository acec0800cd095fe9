package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brecho-pos/internal/application/consignment"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
)

// VendorHandler maneja proveedoras en consignación y sus repasses.
type VendorHandler struct {
	uc *consignment.VendorUseCase
}

// NewVendorHandler construye el handler.
func NewVendorHandler(uc *consignment.VendorUseCase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar proveedora
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVendorRequest  true  "commission_rate opcional (0..1)"
// @Success      201   {object}  dto.VendorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vendors [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
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
// @Summary      Listar proveedoras con saldo y resumen de piezas
// @Tags         vendors
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VendorResponse
// @Router       /api/vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Pagar repasse a la proveedora
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la proveedora"
// @Param        body  body  dto.PayVendorRequest   true  "amount > 0 y <= saldo"
// @Success      200   {object}  dto.PayVendorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendors/{id}/pay [post]
func (h *VendorHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Pay(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Payouts godoc
// @Summary      Historial de repasses de la proveedora
// @Tags         vendors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la proveedora"
// @Success      200  {array}  dto.PayoutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id}/payouts [get]
func (h *VendorHandler) Payouts(c *fiber.Ctx) error {
	out, err := h.uc.Payouts(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
