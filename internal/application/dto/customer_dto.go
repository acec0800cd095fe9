package dto

import (
	"time"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para registrar un cliente (CPF opcional).
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TaxID       string          `json:"tax_id,omitempty"`
	StoreCredit decimal.Decimal `json:"store_credit"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewCustomerResponse mapea la entidad.
func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		TaxID:       c.TaxID,
		StoreCredit: c.StoreCredit,
		CreatedAt:   c.CreatedAt,
	}
}

// CustomerTransactionResponse línea del extracto de crédito.
type CustomerTransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	RelatedSaleID string          `json:"related_sale_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewCustomerTransactionResponse mapea la entidad.
func NewCustomerTransactionResponse(t *entity.CustomerTransaction) *CustomerTransactionResponse {
	return &CustomerTransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Amount:        t.Amount,
		Description:   t.Description,
		RelatedSaleID: t.RelatedSaleID,
		CreatedAt:     t.CreatedAt,
	}
}
