package dto

import (
	"time"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// QuoteRequest carrito a cotizar.
type QuoteRequest struct {
	ItemIDs    []string `json:"item_ids"`
	CouponCode string   `json:"coupon_code,omitempty"`
	CustomerID string   `json:"customer_id,omitempty"`
	UseCredit  bool     `json:"use_credit"`
}

// QuoteResponse totales del carrito.
type QuoteResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	CreditUsed decimal.Decimal `json:"credit_used"`
	Total      decimal.Decimal `json:"total"`
	CouponCode string          `json:"coupon_code,omitempty"`
	// CouponError aviso cuando el cupón informado no es válido; la venta sigue sin descuento.
	CouponError string `json:"coupon_error,omitempty"`
}

// CheckoutRequest carrito más forma de pago.
type CheckoutRequest struct {
	QuoteRequest
	PaymentMethod string `json:"payment_method"`
}

// SaleItemResponse pieza vendida con el precio del momento.
type SaleItemResponse struct {
	ItemID    string          `json:"item_id"`
	PriceSold decimal.Decimal `json:"price_sold"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID              string             `json:"id"`
	CustomerID      string             `json:"customer_id,omitempty"`
	Total           decimal.Decimal    `json:"total"`
	Discount        decimal.Decimal    `json:"discount"`
	CreditUsed      decimal.Decimal    `json:"credit_used"`
	DiscountApplied decimal.Decimal    `json:"discount_applied"`
	PaymentMethod   string             `json:"payment_method"`
	Items           []SaleItemResponse `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
}

// NewSaleResponse mapea la entidad.
func NewSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	resp := &SaleResponse{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		Total:           s.Total,
		Discount:        s.Discount,
		CreditUsed:      s.CreditUsed,
		DiscountApplied: s.DiscountApplied(),
		PaymentMethod:   string(s.PaymentMethod),
		Items:           make([]SaleItemResponse, 0, len(s.Items)),
		CreatedAt:       s.CreatedAt,
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{ItemID: it.ItemID, PriceSold: it.PriceSold})
	}
	return resp
}

// CheckoutResponse venta registrada más las entidades afectadas (read-your-writes).
type CheckoutResponse struct {
	Sale     *SaleResponse     `json:"sale"`
	Items    []*ItemResponse   `json:"items"`
	Vendors  []*VendorResponse `json:"vendors,omitempty"`
	Customer *CustomerResponse `json:"customer,omitempty"`
}

// TradeInItemRequest pieza que entra por troca. Price nil usa crédito * multiplicador.
type TradeInItemRequest struct {
	Image     string           `json:"image"`
	Category  string           `json:"category"`
	Size      string           `json:"size"`
	Condition string           `json:"condition,omitempty"` // por defecto GOOD
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// TradeInRequest troca de piezas por crédito.
type TradeInRequest struct {
	CustomerID   string               `json:"customer_id"`
	CreditAmount decimal.Decimal      `json:"credit_amount"`
	Items        []TradeInItemRequest `json:"items"`
}

// TradeInResponse cliente con el crédito actualizado y las piezas ingresadas.
type TradeInResponse struct {
	Customer *CustomerResponse `json:"customer"`
	Items    []*ItemResponse   `json:"items"`
}
