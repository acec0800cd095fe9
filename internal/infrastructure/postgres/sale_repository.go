package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, customer_id, total_amount, discount, credit_used, payment_method, created_at`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s          entity.Sale
		customerID *string
		method     string
	)
	if err := row.Scan(&s.ID, &customerID, &s.Total, &s.Discount, &s.CreditUsed, &method, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.CustomerID = emptyIfNull(customerID)
	s.PaymentMethod = entity.PaymentMethod(method)
	return &s, nil
}

// Create inserta la cabecera y devuelve la fila generada (RETURNING).
// Un ID vacío deja que la base genere el UUID.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) (*entity.Sale, error) {
	query := `
		INSERT INTO sales (id, customer_id, total_amount, discount, credit_used, payment_method, created_at)
		VALUES (COALESCE($1::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, COALESCE($7, now()))
		RETURNING ` + saleColumns
	var createdAt any
	if !sale.CreatedAt.IsZero() {
		createdAt = sale.CreatedAt
	}
	created, err := scanSale(r.q.QueryRow(ctx, query,
		nullIfEmpty(sale.ID), nullIfEmpty(sale.CustomerID), sale.Total, sale.Discount, sale.CreditUsed,
		string(sale.PaymentMethod), createdAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert sale: %w", translate(err))
	}
	return created, nil
}

// AddItems vincula las piezas vendidas con su precio del momento.
func (r *SaleRepo) AddItems(ctx context.Context, items []entity.SaleItem) error {
	for _, it := range items {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO sale_items (sale_id, item_id, price_sold) VALUES ($1, $2, $3)`,
			it.SaleID, it.ItemID, it.PriceSold,
		); err != nil {
			return fmt.Errorf("insert sale item: %w", translate(err))
		}
	}
	return nil
}

// GetByID obtiene una venta con sus piezas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", translate(err))
	}
	items, err := r.itemsBySale(ctx, `WHERE sale_id = $1`, id)
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return s, nil
}

// List de la más reciente a la más antigua, con piezas.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", translate(err))
	}
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", translate(err))
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	items, err := r.itemsBySale(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Items = items[s.ID]
	}
	return list, nil
}

func (r *SaleRepo) itemsBySale(ctx context.Context, where string, args ...any) (map[string][]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `SELECT sale_id, item_id, price_sold FROM sale_items `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", translate(err))
	}
	defer rows.Close()
	out := make(map[string][]entity.SaleItem)
	for rows.Next() {
		var si entity.SaleItem
		if err := rows.Scan(&si.SaleID, &si.ItemID, &si.PriceSold); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", translate(err))
		}
		out[si.SaleID] = append(out[si.SaleID], si)
	}
	return out, rows.Err()
}
