package dto

import (
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest entrada para crear un cupón.
type CreateCouponRequest struct {
	Code   string          `json:"code"`
	Type   string          `json:"type"` // FIXED | PERCENT
	Value  decimal.Decimal `json:"value"`
	Active *bool           `json:"active,omitempty"` // por defecto true
}

// SetCouponActiveRequest activa o desactiva un cupón.
type SetCouponActiveRequest struct {
	Active bool `json:"active"`
}

// CouponResponse salida de un cupón.
type CouponResponse struct {
	Code   string          `json:"code"`
	Type   string          `json:"type"`
	Value  decimal.Decimal `json:"value"`
	Active bool            `json:"active"`
}

// NewCouponResponse mapea la entidad.
func NewCouponResponse(c *entity.Coupon) *CouponResponse {
	if c == nil {
		return nil
	}
	return &CouponResponse{Code: c.Code, Type: string(c.Type), Value: c.Value, Active: c.Active}
}
