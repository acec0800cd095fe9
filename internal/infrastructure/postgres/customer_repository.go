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
	_ repository.CustomerRepository            = (*CustomerRepo)(nil)
	_ repository.CustomerTransactionRepository = (*CustomerTransactionRepo)(nil)
)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, name, tax_id, store_credit, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, nullIfEmpty(c.TaxID), c.StoreCredit, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", translate(err))
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var (
		c     entity.Customer
		taxID *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, name, tax_id, store_credit, created_at
		FROM customers WHERE id = $1`, id).Scan(&c.ID, &c.Name, &taxID, &c.StoreCredit, &c.CreatedAt)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", translate(err))
	}
	c.TaxID = emptyIfNull(taxID)
	return &c, nil
}

// List ordena por nombre.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, tax_id, store_credit, created_at
		FROM customers ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", translate(err))
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var (
			c     entity.Customer
			taxID *string
		)
		if err := rows.Scan(&c.ID, &c.Name, &taxID, &c.StoreCredit, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", translate(err))
		}
		c.TaxID = emptyIfNull(taxID)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// AdjustCredit actualización relativa del crédito; con delta negativo exige crédito suficiente.
func (r *CustomerRepo) AdjustCredit(ctx context.Context, id string, delta decimal.Decimal) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE customers SET store_credit = store_credit + $1::numeric
		WHERE id = $2 AND ($1::numeric >= 0 OR store_credit + $1::numeric >= 0)`, delta, id)
	if err != nil {
		return false, fmt.Errorf("adjust customer credit: %w", translate(err))
	}
	return tag.RowsAffected() == 1, nil
}

// CustomerTransactionRepo extracto de crédito.
type CustomerTransactionRepo struct {
	q Querier
}

// NewCustomerTransactionRepository construye el adaptador.
func NewCustomerTransactionRepository(q Querier) *CustomerTransactionRepo {
	return &CustomerTransactionRepo{q: q}
}

// Create registra un movimiento.
func (r *CustomerTransactionRepo) Create(ctx context.Context, t *entity.CustomerTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customer_transactions (id, customer_id, type, amount, description, related_sale_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.CustomerID, t.Type, t.Amount, t.Description, nullIfEmpty(t.RelatedSaleID), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer transaction: %w", translate(err))
	}
	return nil
}

// ListByCustomer del más reciente al más antiguo.
func (r *CustomerTransactionRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.CustomerTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, customer_id, type, amount, description, related_sale_id, created_at
		FROM customer_transactions WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer transactions: %w", translate(err))
	}
	defer rows.Close()
	var list []*entity.CustomerTransaction
	for rows.Next() {
		var (
			t       entity.CustomerTransaction
			related *string
		)
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Type, &t.Amount, &t.Description, &related, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer transaction: %w", translate(err))
		}
		t.RelatedSaleID = emptyIfNull(related)
		list = append(list, &t)
	}
	return list, rows.Err()
}
