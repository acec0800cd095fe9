package repository

import (
	"context"
	"time"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Item, error)
	// List devuelve las piezas de la más reciente a la más antigua.
	List(ctx context.Context) ([]*entity.Item, error)
	// UpdateStatus cambia el estado solo si el estado actual es from.
	// Devuelve false si la fila no existe o estaba en otro estado.
	UpdateStatus(ctx context.Context, id string, from, to entity.ItemStatus, soldAt *time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}
