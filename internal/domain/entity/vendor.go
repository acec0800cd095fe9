package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor proveedora en consignación. Balance es lo que la tienda le debe.
type Vendor struct {
	ID             string
	Name           string
	Phone          string
	CommissionRate decimal.Decimal // fracción del precio de venta que se repasa (0..1)
	Balance        decimal.Decimal
	CreatedAt      time.Time
}

// VendorPayout pago registrado a una proveedora (descuenta Balance).
type VendorPayout struct {
	ID        string
	VendorID  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
