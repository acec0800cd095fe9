package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/brecho-pos/internal/application/analytics"
	"github.com/jhoicas/brecho-pos/internal/application/auth"
	"github.com/jhoicas/brecho-pos/internal/application/consignment"
	"github.com/jhoicas/brecho-pos/internal/application/coupon"
	"github.com/jhoicas/brecho-pos/internal/application/customer"
	"github.com/jhoicas/brecho-pos/internal/application/inventory"
	"github.com/jhoicas/brecho-pos/internal/application/sales"
	"github.com/jhoicas/brecho-pos/internal/application/state"
	"github.com/jhoicas/brecho-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *inventory.ItemUseCase
	VendorUC    *consignment.VendorUseCase
	CustomerUC  *customer.CustomerUseCase
	CouponUC    *coupon.CouponUseCase
	SaleUC      *sales.SaleUseCase
	DashboardUC *analytics.DashboardUseCase
	StateUC     *state.StateUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	admin := RequireRole(string(entity.RoleAdmin))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y perfil activo)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)

	// Perfiles (solo ADMIN)
	profiles := protected.Group("/profiles", admin)
	profiles.Get("/", authHandler.ListProfiles)
	profiles.Post("/", authHandler.CreateProfile)
	profiles.Patch("/:id/toggle", authHandler.ToggleProfile)
	profiles.Delete("/:id", authHandler.DeleteProfile)

	// Piezas
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/:id/approve", itemHandler.Approve)
	items.Post("/:id/reject", itemHandler.Reject)
	items.Delete("/:id", itemHandler.Delete)

	// Proveedoras
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Get("/", vendorHandler.List)
	vendors.Post("/", vendorHandler.Create)
	vendors.Post("/:id/pay", vendorHandler.Pay)
	vendors.Get("/:id/payouts", vendorHandler.Payouts)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/transactions", customerHandler.Transactions)

	// Cupones (alta y activación solo ADMIN)
	coupons := protected.Group("/coupons")
	couponHandler := NewCouponHandler(deps.CouponUC)
	coupons.Get("/", couponHandler.List)
	coupons.Post("/", admin, couponHandler.Create)
	coupons.Patch("/:code/active", admin, couponHandler.SetActive)

	// PDV
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/quote", saleHandler.Quote)
	salesGroup.Post("/trade-in", saleHandler.TradeIn)
	salesGroup.Post("/", saleHandler.Checkout)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Dashboard y recarga de estado
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.StateUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/state", dashboardHandler.State)
}
