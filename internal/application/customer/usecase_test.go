package customer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brecho-pos/internal/application/customer"
	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/memory"
)

func TestCustomer_AltaListadoYExtracto(t *testing.T) {
	r := memory.New().Repos()
	uc := customer.NewCustomerUseCase(r.Customers, r.CustomerTxs)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zoe, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Zoe", TaxID: " 123.456.789-00 "})
	require.NoError(t, err)
	assert.True(t, zoe.StoreCredit.IsZero())
	assert.Equal(t, "123.456.789-00", zoe.TaxID)
	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Alice"})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alice", list[0].Name)

	txs, err := uc.Transactions(ctx, zoe.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)

	_, err = uc.Transactions(ctx, "nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
