package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
)

var _ repository.CouponRepository = (*CouponRepo)(nil)

// CouponRepo implementación de CouponRepository.
type CouponRepo struct {
	q Querier
}

// NewCouponRepository construye el adaptador.
func NewCouponRepository(q Querier) *CouponRepo {
	return &CouponRepo{q: q}
}

// Create persiste un cupón. Código repetido → ErrDuplicate.
func (r *CouponRepo) Create(ctx context.Context, c *entity.Coupon) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO coupons (code, type, value, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.Code, string(c.Type), c.Value, c.Active, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert coupon: %w", translate(err))
	}
	return nil
}

// GetByCode comparación exacta (distingue mayúsculas).
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	var (
		c   entity.Coupon
		typ string
	)
	err := r.q.QueryRow(ctx, `
		SELECT code, type, value, active, created_at FROM coupons WHERE code = $1`, code).Scan(
		&c.Code, &typ, &c.Value, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon: %w", translate(err))
	}
	c.Type = entity.CouponType(typ)
	return &c, nil
}

// List devuelve todos los cupones.
func (r *CouponRepo) List(ctx context.Context) ([]*entity.Coupon, error) {
	rows, err := r.q.Query(ctx, `SELECT code, type, value, active, created_at FROM coupons`)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", translate(err))
	}
	defer rows.Close()
	var list []*entity.Coupon
	for rows.Next() {
		var (
			c   entity.Coupon
			typ string
		)
		if err := rows.Scan(&c.Code, &typ, &c.Value, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan coupon: %w", translate(err))
		}
		c.Type = entity.CouponType(typ)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SetActive activa o desactiva un cupón.
func (r *CouponRepo) SetActive(ctx context.Context, code string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE coupons SET active = $1 WHERE code = $2`, active, code)
	if err != nil {
		return fmt.Errorf("update coupon: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
