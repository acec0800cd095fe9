package settlement_test

import (
	"testing"

	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cart(prices ...string) []*entity.Item {
	items := make([]*entity.Item, 0, len(prices))
	for _, p := range prices {
		items = append(items, &entity.Item{Price: d(p), Status: entity.ItemStatusForSale})
	}
	return items
}

func percent(v string) *entity.Coupon {
	return &entity.Coupon{Code: "PROMO", Type: entity.CouponPercent, Value: d(v), Active: true}
}

func fixed(v string) *entity.Coupon {
	return &entity.Coupon{Code: "FIXO", Type: entity.CouponFixed, Value: d(v), Active: true}
}

// Escenario A: sin cupón ni crédito el total es el subtotal.
func TestComputeSaleTotal_SinCuponNiCredito(t *testing.T) {
	got := settlement.ComputeSaleTotal(cart("50.00", "30.00"), nil, nil, false)

	assert.True(t, got.Subtotal.Equal(d("80")), "subtotal: %s", got.Subtotal)
	assert.True(t, got.Discount.IsZero())
	assert.True(t, got.CreditUsed.IsZero())
	assert.True(t, got.Total.Equal(d("80")), "total: %s", got.Total)
}

// Escenario B: cupón PERCENT 10 sobre 80 descuenta 8.
func TestComputeSaleTotal_CuponPorcentaje(t *testing.T) {
	got := settlement.ComputeSaleTotal(cart("50.00", "30.00"), percent("10"), nil, false)

	assert.True(t, got.Discount.Equal(d("8")), "discount: %s", got.Discount)
	assert.True(t, got.Total.Equal(d("72")), "total: %s", got.Total)
}

// Escenario C: crédito 100 cubre el restante de 72.
func TestComputeSaleTotal_CuponYCreditoCubreTodo(t *testing.T) {
	customer := &entity.Customer{StoreCredit: d("100")}
	got := settlement.ComputeSaleTotal(cart("50.00", "30.00"), percent("10"), customer, true)

	assert.True(t, got.CreditUsed.Equal(d("72")), "creditUsed: %s", got.CreditUsed)
	assert.True(t, got.Total.IsZero(), "total: %s", got.Total)
}

// Escenario D: crédito 15 sobre subtotal 10 usa solo 10.
func TestComputeSaleTotal_CreditoMayorQueSubtotal(t *testing.T) {
	customer := &entity.Customer{StoreCredit: d("15")}
	got := settlement.ComputeSaleTotal(cart("10.00"), nil, customer, true)

	assert.True(t, got.CreditUsed.Equal(d("10")))
	assert.True(t, got.Total.IsZero())
	assert.True(t, customer.StoreCredit.Sub(got.CreditUsed).Equal(d("5")), "saldo restante")
}

func TestComputeSaleTotal_CreditoSinSolicitarNoSeUsa(t *testing.T) {
	customer := &entity.Customer{StoreCredit: d("15")}
	got := settlement.ComputeSaleTotal(cart("10.00"), nil, customer, false)

	assert.True(t, got.CreditUsed.IsZero())
	assert.True(t, got.Total.Equal(d("10")))
}

// Un FIXED mayor que el subtotal no produce crédito ni total negativos.
func TestComputeSaleTotal_CuponFijoMayorQueSubtotal(t *testing.T) {
	customer := &entity.Customer{StoreCredit: d("20")}
	got := settlement.ComputeSaleTotal(cart("10.00"), fixed("25"), customer, true)

	assert.True(t, got.Discount.Equal(d("25")))
	assert.True(t, got.CreditUsed.IsZero(), "creditUsed: %s", got.CreditUsed)
	assert.True(t, got.Total.IsZero())
}

func TestComputeSaleTotal_CuponInactivoNoDescuenta(t *testing.T) {
	c := percent("50")
	c.Active = false
	got := settlement.ComputeSaleTotal(cart("40"), c, nil, false)

	assert.True(t, got.Discount.IsZero())
	assert.True(t, got.Total.Equal(d("40")))
}

func TestComputeSaleTotal_Propiedades(t *testing.T) {
	carts := [][]*entity.Item{cart(), cart("0.01"), cart("10", "20", "30.55"), cart("999.99")}
	coupons := []*entity.Coupon{nil, percent("0"), percent("10"), percent("100"), fixed("5"), fixed("5000")}
	credits := []string{"0", "3.50", "1000"}

	for _, items := range carts {
		for _, coupon := range coupons {
			for _, credit := range credits {
				customer := &entity.Customer{StoreCredit: d(credit)}
				got := settlement.ComputeSaleTotal(items, coupon, customer, true)
				again := settlement.ComputeSaleTotal(items, coupon, customer, true)

				assert.False(t, got.Total.IsNegative(), "total >= 0")
				assert.True(t, got.Total.LessThanOrEqual(got.Subtotal), "total <= subtotal")
				assert.False(t, got.Discount.IsNegative(), "descuento >= 0")
				assert.False(t, got.CreditUsed.IsNegative(), "crédito >= 0")
				assert.True(t, got.CreditUsed.LessThanOrEqual(customer.StoreCredit), "crédito <= saldo")
				assert.Equal(t, got, again, "función pura")
			}
		}
	}
}

func TestFindCoupon(t *testing.T) {
	inactive := &entity.Coupon{Code: "OFF", Type: entity.CouponFixed, Value: d("5"), Active: false}
	coupons := []*entity.Coupon{percent("10"), inactive}

	c, err := settlement.FindCoupon(coupons, "PROMO")
	require.NoError(t, err)
	assert.Equal(t, "PROMO", c.Code)

	_, err = settlement.FindCoupon(coupons, "promo")
	assert.ErrorIs(t, err, domain.ErrInvalidCoupon, "el código distingue mayúsculas")

	_, err = settlement.FindCoupon(coupons, "OFF")
	assert.ErrorIs(t, err, domain.ErrInvalidCoupon, "cupón inactivo")

	_, err = settlement.FindCoupon(coupons, "NADA")
	assert.ErrorIs(t, err, domain.ErrInvalidCoupon)
}

// Escenario E: comisión 0.5 sobre 40 repasa 20.
func TestVendorShare(t *testing.T) {
	assert.True(t, settlement.VendorShare(d("40.00"), d("0.5")).Equal(d("20")))
	assert.True(t, settlement.VendorShare(d("33.33"), d("0.4")).Equal(d("13.33")))
}

// ─── Redondeo a centavos ──────────────────────────────────────────────────────

func TestVendorShare_RedondeaACentavos(t *testing.T) {
	got := settlement.VendorShare(d("19.99"), d("0.3333"))
	assert.True(t, got.Equal(d("6.66")), "share: %s", got)
	assert.True(t, settlement.IsCents(got))
}

func TestComputeSaleTotal_PorcentajeRedondeaDescuento(t *testing.T) {
	got := settlement.ComputeSaleTotal(cart("19.99"), percent("15"), nil, false)

	assert.True(t, got.Discount.Equal(d("3")), "2.9985 se redondea: %s", got.Discount)
	assert.True(t, got.Total.Equal(d("16.99")), "total: %s", got.Total)
	assert.True(t, got.Subtotal.Sub(got.Discount).Equal(got.Total))
}

func TestRoundMoneyEIsCents(t *testing.T) {
	assert.True(t, settlement.RoundMoney(d("10.005")).Equal(d("10.01")))
	assert.True(t, settlement.RoundMoney(d("-10.005")).Equal(d("-10.01")))
	assert.True(t, settlement.IsCents(d("10.5")))
	assert.True(t, settlement.IsCents(d("10.50")))
	assert.True(t, settlement.IsCents(d("7")))
	assert.False(t, settlement.IsCents(d("10.005")))
}

func TestValidCommissionRate(t *testing.T) {
	assert.True(t, settlement.ValidCommissionRate(d("0")))
	assert.True(t, settlement.ValidCommissionRate(d("0.6")))
	assert.True(t, settlement.ValidCommissionRate(d("1")))
	assert.False(t, settlement.ValidCommissionRate(d("1.01")))
	assert.False(t, settlement.ValidCommissionRate(d("-0.1")))
}
