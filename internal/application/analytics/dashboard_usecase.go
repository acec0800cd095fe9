// Package analytics contiene los casos de uso para el resumen de la pantalla inicial.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/brecho-pos/internal/application/dto"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
	"github.com/jhoicas/brecho-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardRecentSales = 5 // ventas recientes en el widget del dashboard

// DashboardUseCase genera el resumen del día: facturación, stock por estado y saldo pendiente con proveedoras.
type DashboardUseCase struct {
	sales   repository.SaleRepository
	items   repository.ItemRepository
	vendors repository.VendorRepository
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos repository.Repos) *DashboardUseCase {
	return &DashboardUseCase{sales: repos.Sales, items: repos.Items, vendors: repos.Vendors, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres lecturas en paralelo:
//  1. Sales.List    → facturación de hoy + últimas ventas
//  2. Items.List    → piezas FOR_SALE y EVALUATION
//  3. Vendors.List  → Σ saldos pendientes de pago
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)

	type salesResult struct {
		list []*entity.Sale
		err  error
	}
	type itemsResult struct {
		list []*entity.Item
		err  error
	}
	type vendorsResult struct {
		list []*entity.Vendor
		err  error
	}

	salesCh := make(chan salesResult, 1)
	itemsCh := make(chan itemsResult, 1)
	vendorsCh := make(chan vendorsResult, 1)

	go func() {
		list, err := uc.sales.List(ctx)
		salesCh <- salesResult{list, err}
	}()
	go func() {
		list, err := uc.items.List(ctx)
		itemsCh <- itemsResult{list, err}
	}()
	go func() {
		list, err := uc.vendors.List(ctx)
		vendorsCh <- vendorsResult{list, err}
	}()

	sales := <-salesCh
	items := <-itemsCh
	vendors := <-vendorsCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if items.err != nil {
		return nil, fmt.Errorf("dashboard: piezas: %w", items.err)
	}
	if vendors.err != nil {
		return nil, fmt.Errorf("dashboard: proveedoras: %w", vendors.err)
	}

	out := &dto.DashboardSummaryDTO{
		TodayRevenue:   decimal.Zero,
		PendingPayouts: decimal.Zero,
		RecentSales:    make([]*dto.SaleResponse, 0, dashboardRecentSales),
	}
	for _, s := range sales.list {
		if !s.CreatedAt.Before(todayStart) && s.CreatedAt.Before(todayEnd) {
			out.TodayRevenue = out.TodayRevenue.Add(s.Total)
			out.TodaySalesCount++
		}
		if len(out.RecentSales) < dashboardRecentSales {
			out.RecentSales = append(out.RecentSales, dto.NewSaleResponse(s))
		}
	}
	for _, it := range items.list {
		switch it.Status {
		case entity.ItemStatusForSale:
			out.ForSaleCount++
		case entity.ItemStatusEvaluation:
			out.EvaluationCount++
		}
	}
	for _, v := range vendors.list {
		out.PendingPayouts = out.PendingPayouts.Add(v.Balance)
	}
	return out, nil
}
