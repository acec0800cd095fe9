package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/infrastructure/memory"
)

func TestGetSummary_ResumenDelDia(t *testing.T) {
	ctx := context.Background()
	r := memory.New().Repos()
	now := time.Date(2026, 7, 15, 15, 0, 0, 0, time.UTC)

	for i, at := range []time.Time{
		now.Add(-time.Hour),
		now.Add(-2 * time.Hour),
		now.Add(-24 * time.Hour), // ayer
	} {
		_, err := r.Sales.Create(ctx, &entity.Sale{
			ID:        string(rune('a' + i)),
			Total:     decimal.NewFromInt(int64(10 * (i + 1))),
			CreatedAt: at,
		})
		require.NoError(t, err)
	}
	for i, s := range []entity.ItemStatus{entity.ItemStatusForSale, entity.ItemStatusForSale, entity.ItemStatusEvaluation, entity.ItemStatusSold} {
		require.NoError(t, r.Items.Create(ctx, &entity.Item{ID: string(rune('p' + i)), Status: s}))
	}
	require.NoError(t, r.Vendors.Create(ctx, &entity.Vendor{ID: "v1", Name: "A", Balance: decimal.NewFromInt(12)}))
	require.NoError(t, r.Vendors.Create(ctx, &entity.Vendor{ID: "v2", Name: "B", Balance: decimal.NewFromInt(8)}))

	uc := NewDashboardUseCase(r)
	uc.now = func() time.Time { return now }

	got, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.True(t, got.TodayRevenue.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, got.TodaySalesCount)
	assert.Equal(t, 2, got.ForSaleCount)
	assert.Equal(t, 1, got.EvaluationCount)
	assert.True(t, got.PendingPayouts.Equal(decimal.NewFromInt(20)))
	require.Len(t, got.RecentSales, 3)
	assert.Equal(t, "a", got.RecentSales[0].ID)
}
