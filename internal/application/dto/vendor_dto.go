package dto

import (
	"time"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateVendorRequest entrada para registrar una proveedora. CommissionRate nil usa el valor por defecto.
type CreateVendorRequest struct {
	Name           string           `json:"name"`
	Phone          string           `json:"phone"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
}

// PayVendorRequest registro de un pago realizado a la proveedora.
type PayVendorRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// VendorResponse salida de una proveedora con resumen de piezas.
type VendorResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Balance        decimal.Decimal `json:"balance"`
	SoldCount      int             `json:"sold_count"`
	ActiveCount    int             `json:"active_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewVendorResponse mapea la entidad (sin contadores).
func NewVendorResponse(v *entity.Vendor) *VendorResponse {
	if v == nil {
		return nil
	}
	return &VendorResponse{
		ID:             v.ID,
		Name:           v.Name,
		Phone:          v.Phone,
		CommissionRate: v.CommissionRate,
		Balance:        v.Balance,
		CreatedAt:      v.CreatedAt,
	}
}

// PayoutResponse salida de un pago a proveedora.
type PayoutResponse struct {
	ID        string          `json:"id"`
	VendorID  string          `json:"vendor_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewPayoutResponse mapea la entidad.
func NewPayoutResponse(p *entity.VendorPayout) *PayoutResponse {
	return &PayoutResponse{ID: p.ID, VendorID: p.VendorID, Amount: p.Amount, CreatedAt: p.CreatedAt}
}

// PayVendorResponse proveedora actualizada y el pago registrado.
type PayVendorResponse struct {
	Vendor *VendorResponse `json:"vendor"`
	Payout *PayoutResponse `json:"payout"`
}
