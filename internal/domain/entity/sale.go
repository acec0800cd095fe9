package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod forma de pago de una venta.
type PaymentMethod string

// Formas de pago válidas.
const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCard   PaymentMethod = "CARD"
	PaymentPix    PaymentMethod = "PIX"
	PaymentCredit PaymentMethod = "CREDIT"
)

// Valid indica si m es una forma de pago conocida.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPix, PaymentCredit:
		return true
	}
	return false
}

// ParsePaymentMethod convierte un string en PaymentMethod. Vacío equivale a CASH.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return PaymentCash, nil
	}
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("forma de pago desconocida: %q", s)
	}
	return m, nil
}

// Sale registro inmutable de una venta.
type Sale struct {
	ID            string
	CustomerID    string
	Total         decimal.Decimal
	Discount      decimal.Decimal
	CreditUsed    decimal.Decimal
	PaymentMethod PaymentMethod
	Items         []SaleItem
	CreatedAt     time.Time
}

// DiscountApplied total de descuento más crédito utilizado.
func (s *Sale) DiscountApplied() decimal.Decimal {
	return s.Discount.Add(s.CreditUsed)
}

// SaleItem vínculo pieza-venta con el precio del momento de la venta.
type SaleItem struct {
	SaleID    string
	ItemID    string
	PriceSold decimal.Decimal
}
