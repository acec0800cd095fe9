package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen del día para la pantalla inicial.
type DashboardSummaryDTO struct {
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
	TodaySalesCount int             `json:"today_sales_count"`
	ForSaleCount    int             `json:"for_sale_count"`
	EvaluationCount int             `json:"evaluation_count"`
	PendingPayouts  decimal.Decimal `json:"pending_payouts"`
	RecentSales     []*SaleResponse `json:"recent_sales"`
}

// StateResponse snapshot completo del almacén (recarga explícita).
type StateResponse struct {
	Items     []*ItemResponse     `json:"items"`
	Vendors   []*VendorResponse   `json:"vendors"`
	Customers []*CustomerResponse `json:"customers"`
	Coupons   []*CouponResponse   `json:"coupons"`
	Sales     []*SaleResponse     `json:"sales"`
	Profiles  []*ProfileResponse  `json:"profiles,omitempty"`
}
