package repository

import (
	"context"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// VendorRepository define el puerto de persistencia para Vendor.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	// List ordena por nombre.
	List(ctx context.Context) ([]*entity.Vendor, error)
	// AdjustBalance suma delta al saldo de forma relativa. Con delta negativo solo aplica
	// si el saldo resultante no queda negativo; devuelve false en ese caso o si no existe.
	AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (bool, error)
}

// PayoutRepository persistencia de pagos a proveedoras.
type PayoutRepository interface {
	Create(ctx context.Context, payout *entity.VendorPayout) error
	ListByVendor(ctx context.Context, vendorID string) ([]*entity.VendorPayout, error)
}
