package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-billing-api/internal/application/auth"
	"github.com/jhoicas/pos-billing-api/internal/application/billing"
	"github.com/jhoicas/pos-billing-api/internal/application/usecase"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

// RouterDeps dependencias para el router. Caja, facturas y configuración son obligatorias;
// los casos de uso de administración en nil no registran sus rutas.
type RouterDeps struct {
	CartUC      *billing.CartUseCase
	CheckoutUC  *billing.CheckoutUseCase
	BillQuery   *billing.BillQueryUseCase
	SettingsUC  *usecase.SettingsUseCase
	ProductUC   *usecase.ProductUseCase
	StoreUC     *usecase.StoreUseCase
	CustomerUC  *billing.CustomerUseCase
	UserUC      *usecase.UserUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	HSNCodeUC   *usecase.HSNCodeUseCase
	BatchUC     *usecase.BatchUseCase
	DiscountUC  *usecase.DiscountUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Caja (público): carrito sin estado, cobro y facturas
	cartHandler := NewCartHandler(deps.CartUC)
	cart := api.Group("/cart")
	cart.Post("/totals", cartHandler.Totals)
	cart.Post("/items", cartHandler.AddItem)
	cart.Post("/quantity", cartHandler.ChangeQuantity)
	cart.Post("/back-solve", cartHandler.BackSolve)

	api.Post("/checkout", NewCheckoutHandler(deps.CheckoutUC).Checkout)

	billHandler := NewBillHandler(deps.CheckoutUC, deps.BillQuery)
	bills := api.Group("/bills")
	bills.Post("/", billHandler.Create)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)

	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	api.Get("/settings", settingsHandler.Get)
	api.Get("/settings/bill-formats/:name", settingsHandler.BillFormat)

	admin := AuthMiddleware(deps.JWTSecret)
	adminRoles := RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin)
	staffRoles := RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleBillingUser)
	api.Put("/settings", admin, adminRoles, settingsHandler.Update)

	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)
	}

	if deps.ProductUC != nil {
		productHandler := NewProductHandler(deps.ProductUC)
		products := api.Group("/products")
		products.Get("/", productHandler.List)
		products.Get("/:id", productHandler.GetByID)
		products.Post("/", admin, adminRoles, productHandler.Create)
		products.Post("/sync-mirror", admin, adminRoles, productHandler.SyncMirror)
		products.Put("/:id", admin, adminRoles, productHandler.Update)
		products.Delete("/:id", admin, adminRoles, productHandler.Delete)
	}

	if deps.StoreUC != nil {
		storeHandler := NewStoreHandler(deps.StoreUC)
		stores := api.Group("/stores", admin, adminRoles)
		stores.Post("/", storeHandler.Create)
		stores.Get("/", storeHandler.List)
		stores.Get("/:id", storeHandler.GetByID)
		stores.Put("/:id", storeHandler.Update)
	}

	if deps.CustomerUC != nil {
		customerHandler := NewCustomerHandler(deps.CustomerUC)
		customers := api.Group("/customers", admin, staffRoles)
		customers.Post("/", customerHandler.Create)
		customers.Get("/", customerHandler.List)
		customers.Get("/:id", customerHandler.GetByID)
	}

	if deps.UserUC != nil {
		userHandler := NewUserHandler(deps.UserUC)
		users := api.Group("/users", admin, adminRoles)
		users.Post("/", userHandler.Create)
		users.Get("/", userHandler.List)
		users.Get("/:id", userHandler.GetByID)
		users.Put("/:id", userHandler.Update)
	}

	if deps.AnalyticsUC != nil {
		analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
		analytics := api.Group("/analytics", admin, adminRoles)
		analytics.Get("/summary", analyticsHandler.Summary)
		analytics.Get("/top-products", analyticsHandler.TopProducts)
	}

	if deps.HSNCodeUC != nil {
		hsnHandler := NewHSNCodeHandler(deps.HSNCodeUC)
		hsn := api.Group("/hsn-codes", admin)
		hsn.Get("/", staffRoles, hsnHandler.List)
		hsn.Get("/:id", staffRoles, hsnHandler.GetByID)
		hsn.Post("/", adminRoles, hsnHandler.Create)
		hsn.Put("/:id", adminRoles, hsnHandler.Update)
		hsn.Delete("/:id", adminRoles, hsnHandler.Delete)
	}

	if deps.BatchUC != nil {
		batchHandler := NewBatchHandler(deps.BatchUC)
		batches := api.Group("/batches", admin)
		batches.Get("/", staffRoles, batchHandler.List)
		batches.Get("/:id", staffRoles, batchHandler.GetByID)
		batches.Post("/", adminRoles, batchHandler.Create)
		batches.Put("/:id", adminRoles, batchHandler.Update)
		batches.Delete("/:id", adminRoles, batchHandler.Delete)
	}

	// Descuentos: el cajero solicita, el administrador resuelve
	if deps.DiscountUC != nil {
		discountHandler := NewDiscountHandler(deps.DiscountUC)
		discounts := api.Group("/discounts", admin)
		discounts.Post("/", staffRoles, discountHandler.Create)
		discounts.Get("/", adminRoles, discountHandler.List)
		discounts.Put("/:id/status", adminRoles, discountHandler.UpdateStatus)
		discounts.Delete("/", adminRoles, discountHandler.Delete)
	}
}
