package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CouponType tipo de descuento.
type CouponType string

// Tipos de cupón.
const (
	CouponFixed   CouponType = "FIXED"
	CouponPercent CouponType = "PERCENT"
)

// Valid indica si t es un tipo conocido.
func (t CouponType) Valid() bool {
	return t == CouponFixed || t == CouponPercent
}

// ParseCouponType convierte un string en CouponType.
func ParseCouponType(s string) (CouponType, error) {
	t := CouponType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("tipo de cupón desconocido: %q", s)
	}
	return t, nil
}

// Coupon código de descuento. Reutilizable mientras esté activo.
type Coupon struct {
	Code      string // único, comparación exacta
	Type      CouponType
	Value     decimal.Decimal
	Active    bool
	CreatedAt time.Time
}
