package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer cliente final; StoreCredit se acumula por trocas y se gasta en ventas.
type Customer struct {
	ID          string
	Name        string
	TaxID       string // CPF (opcional)
	StoreCredit decimal.Decimal
	CreatedAt   time.Time
}

// Tipos de movimiento de crédito.
const (
	CreditAdded = "CREDIT_ADDED"
	CreditSpent = "CREDIT_SPENT"
)

// CustomerTransaction línea del extracto de crédito del cliente.
type CustomerTransaction struct {
	ID            string
	CustomerID    string
	Type          string // CREDIT_ADDED, CREDIT_SPENT
	Amount        decimal.Decimal
	Description   string
	RelatedSaleID string
	CreatedAt     time.Time
}
