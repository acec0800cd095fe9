package repository

import (
	"context"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
)

// SaleRepository persistencia de ventas (inmutables) y sus piezas.
type SaleRepository interface {
	// Create inserta la cabecera y devuelve el registro tal como quedó guardado.
	Create(ctx context.Context, sale *entity.Sale) (*entity.Sale, error)
	AddItems(ctx context.Context, items []entity.SaleItem) error
	// GetByID incluye las piezas vendidas.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List de la más reciente a la más antigua, con piezas.
	List(ctx context.Context) ([]*entity.Sale, error)
}
