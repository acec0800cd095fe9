package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CustomerUseCase casos de uso de clientes y su extracto de crédito.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	txs       repository.CustomerTransactionRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customers repository.CustomerRepository, txs repository.CustomerTransactionRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, txs: txs}
}

// Create registra un cliente con crédito cero.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	c := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        name,
		TaxID:       strings.TrimSpace(in.TaxID),
		StoreCredit: decimal.Zero,
		CreatedAt:   time.Now(),
	}
	if err := uc.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

// Get obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

// List devuelve los clientes ordenados por nombre.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCustomerResponse(c))
	}
	return out, nil
}

// Transactions extracto de crédito del cliente, del más reciente al más antiguo.
func (uc *CustomerUseCase) Transactions(ctx context.Context, customerID string) ([]*dto.CustomerTransactionResponse, error) {
	c, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.txs.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.NewCustomerTransactionResponse(t))
	}
	return out, nil
}
