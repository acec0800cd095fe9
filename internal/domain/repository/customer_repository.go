package repository

import (
	"context"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// List ordena por nombre.
	List(ctx context.Context) ([]*entity.Customer, error)
	// AdjustCredit suma delta al crédito. Con delta negativo solo aplica si el crédito
	// resultante no queda negativo; devuelve false en ese caso o si no existe.
	AdjustCredit(ctx context.Context, id string, delta decimal.Decimal) (bool, error)
}

// CustomerTransactionRepository extracto de crédito de clientes.
type CustomerTransactionRepository interface {
	Create(ctx context.Context, tx *entity.CustomerTransaction) error
	// ListByCustomer del más reciente al más antiguo.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.CustomerTransaction, error)
}
