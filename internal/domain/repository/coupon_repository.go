package repository

import (
	"context"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
)

// CouponRepository persistencia de cupones (clave: Code).
type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
	List(ctx context.Context) ([]*entity.Coupon, error)
	SetActive(ctx context.Context, code string, active bool) error
}
