package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.VendorRepository = (*VendorRepo)(nil)
	_ repository.PayoutRepository = (*PayoutRepo)(nil)
)

// VendorRepo implementación de VendorRepository (usable con pool o tx).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persiste una nueva proveedora.
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vendors (id, name, phone, commission_rate, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.Name, v.Phone, v.CommissionRate, v.Balance, v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", translate(err))
	}
	return nil
}

// GetByID obtiene una proveedora por ID.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	var v entity.Vendor
	err := r.q.QueryRow(ctx, `
		SELECT id, name, phone, commission_rate, balance, created_at
		FROM vendors WHERE id = $1`, id).Scan(
		&v.ID, &v.Name, &v.Phone, &v.CommissionRate, &v.Balance, &v.CreatedAt,
	)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", translate(err))
	}
	return &v, nil
}

// List ordena por nombre.
func (r *VendorRepo) List(ctx context.Context) ([]*entity.Vendor, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, phone, commission_rate, balance, created_at
		FROM vendors ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", translate(err))
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Phone, &v.CommissionRate, &v.Balance, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", translate(err))
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// AdjustBalance actualización relativa del saldo; con delta negativo exige saldo suficiente.
func (r *VendorRepo) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE vendors SET balance = balance + $1::numeric
		WHERE id = $2 AND ($1::numeric >= 0 OR balance + $1::numeric >= 0)`, delta, id)
	if err != nil {
		return false, fmt.Errorf("adjust vendor balance: %w", translate(err))
	}
	return tag.RowsAffected() == 1, nil
}

// PayoutRepo implementación de PayoutRepository.
type PayoutRepo struct {
	q Querier
}

// NewPayoutRepository construye el adaptador.
func NewPayoutRepository(q Querier) *PayoutRepo {
	return &PayoutRepo{q: q}
}

// Create registra un pago a proveedora.
func (r *PayoutRepo) Create(ctx context.Context, p *entity.VendorPayout) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vendor_payouts (id, vendor_id, amount, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.VendorID, p.Amount, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payout: %w", translate(err))
	}
	return nil
}

// ListByVendor del más reciente al más antiguo.
func (r *PayoutRepo) ListByVendor(ctx context.Context, vendorID string) ([]*entity.VendorPayout, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, vendor_id, amount, created_at
		FROM vendor_payouts WHERE vendor_id = $1 ORDER BY created_at DESC`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", translate(err))
	}
	defer rows.Close()
	var list []*entity.VendorPayout
	for rows.Next() {
		var p entity.VendorPayout
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payout: %w", translate(err))
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
