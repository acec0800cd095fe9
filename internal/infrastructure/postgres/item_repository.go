package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, image_url, category, size, condition, price, status, vendor_id, description, entry_date, sold_at`

// ItemRepo implementación de ItemRepository (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste una nueva pieza.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.ImageURL, item.Category, item.Size, string(item.Condition), item.Price,
		string(item.Status), nullIfEmpty(item.VendorID), item.Description, item.EntryDate, item.SoldAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", translate(err))
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		it        entity.Item
		condition string
		status    string
		vendorID  *string
	)
	if err := row.Scan(&it.ID, &it.ImageURL, &it.Category, &it.Size, &condition, &it.Price,
		&status, &vendorID, &it.Description, &it.EntryDate, &it.SoldAt); err != nil {
		return nil, err
	}
	it.Condition = entity.ItemCondition(condition)
	it.Status = entity.ItemStatus(status)
	it.VendorID = emptyIfNull(vendorID)
	return &it, nil
}

// GetByID obtiene una pieza por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", translate(err))
	}
	return it, nil
}

// GetByIDs obtiene las piezas cuyos IDs están en ids (las inexistentes se omiten).
func (r *ItemRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+itemColumns+` FROM items WHERE id::text = ANY($1)`, ids)
}

// List de la más reciente a la más antigua.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM items ORDER BY entry_date DESC`)
}

func (r *ItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", translate(err))
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", translate(err))
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado solo si el estado actual es from.
func (r *ItemRepo) UpdateStatus(ctx context.Context, id string, from, to entity.ItemStatus, soldAt *time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE items SET status = $1, sold_at = $2 WHERE id = $3 AND status = $4`,
		string(to), soldAt, id, string(from),
	)
	if err != nil {
		return false, fmt.Errorf("update item status: %w", translate(err))
	}
	return tag.RowsAffected() == 1, nil
}

// Delete elimina una pieza.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
