// Package settlement contiene las reglas puras de precio del checkout: subtotal, cupón,
// uso de crédito y repasse a proveedoras. No tiene efectos secundarios.
package settlement

import (
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CentPlaces decimales de todo importe monetario persistido.
const CentPlaces = 2

// RoundMoney redondea un importe a centavos (mitad lejos de cero).
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(CentPlaces)
}

// IsCents indica si v no tiene más de dos decimales.
func IsCents(v decimal.Decimal) bool {
	return v.Equal(RoundMoney(v))
}

// Totals resultado del cálculo de una venta.
type Totals struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	CreditUsed decimal.Decimal
	Total      decimal.Decimal
}

// Subtotal suma los precios de las piezas del carrito.
func Subtotal(items []*entity.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price)
	}
	return sum
}

// FindCoupon busca un cupón por código exacto (sensible a mayúsculas) y activo.
func FindCoupon(coupons []*entity.Coupon, code string) (*entity.Coupon, error) {
	for _, c := range coupons {
		if c.Code == code && c.Active {
			return c, nil
		}
	}
	return nil, domain.ErrInvalidCoupon
}

// CouponDiscount descuento de un cupón sobre subtotal. Cupón nil o inactivo no descuenta.
// PERCENT: subtotal * valor / 100 redondeado a centavos. FIXED: valor (el total se acota en cero después).
func CouponDiscount(coupon *entity.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if coupon == nil || !coupon.Active || coupon.Value.IsNegative() {
		return decimal.Zero
	}
	switch coupon.Type {
	case entity.CouponPercent:
		return RoundMoney(subtotal.Mul(coupon.Value).Div(hundred))
	case entity.CouponFixed:
		return coupon.Value
	}
	return decimal.Zero
}

// CreditToUse crédito a consumir: min(crédito del cliente, subtotal - descuento), nunca negativo.
func CreditToUse(customer *entity.Customer, subtotal, discount decimal.Decimal, useCredit bool) decimal.Decimal {
	if !useCredit || customer == nil {
		return decimal.Zero
	}
	credit := decimal.Max(customer.StoreCredit, decimal.Zero)
	remaining := decimal.Max(subtotal.Sub(discount), decimal.Zero)
	return decimal.Min(credit, remaining)
}

// SaleTotal max(0, subtotal - descuento - crédito).
func SaleTotal(subtotal, discount, creditUsed decimal.Decimal) decimal.Decimal {
	return decimal.Max(subtotal.Sub(discount).Sub(creditUsed), decimal.Zero)
}

// ComputeSaleTotal calcula los totales de un carrito. Función pura: mismas entradas, misma salida.
func ComputeSaleTotal(items []*entity.Item, coupon *entity.Coupon, customer *entity.Customer, useCredit bool) Totals {
	subtotal := Subtotal(items)
	discount := CouponDiscount(coupon, subtotal)
	creditUsed := CreditToUse(customer, subtotal, discount, useCredit)
	return Totals{
		Subtotal:   subtotal,
		Discount:   discount,
		CreditUsed: creditUsed,
		Total:      SaleTotal(subtotal, discount, creditUsed),
	}
}

// VendorShare repasse de la proveedora por una pieza vendida: precio * comisión, en centavos.
func VendorShare(price, commissionRate decimal.Decimal) decimal.Decimal {
	return RoundMoney(price.Mul(commissionRate))
}

// ValidCommissionRate indica si rate está en [0, 1].
func ValidCommissionRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(1))
}
