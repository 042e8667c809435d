package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-api/internal/application/catalog"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ledger"
	"github.com/jhoicas/PuntoVenta-api/internal/application/orders"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.UseCase
	CatalogUC         *catalog.UseCase
	LedgerUC          *ledger.UseCase
	WorkflowUC        *orders.WorkflowUseCase
	DraftUC           *orders.DraftUseCase
	DashboardUC       *analytics.DashboardUseCase
	PaymentMethodRepo repository.PaymentMethodRepository
	SupplierRepo      repository.SupplierRepository
	DepartmentRepo    repository.DepartmentRepository
	JWTSecret         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público: login y bootstrap del primer admin)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/check-admin", authHandler.CheckAdmin)
	authGroup.Post("/create-admin", authHandler.CreateAdmin)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios (solo admin)
	protected.Get("/users", RequireRole(entity.RoleAdmin), authHandler.ListUsers)

	// Catálogo
	productHandler := NewProductHandler(deps.CatalogUC, deps.LedgerUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Post("/quick-receive", productHandler.QuickReceive)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/adjust-stock", productHandler.AdjustStock)

	// Libro de transacciones
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	protected.Post("/sales", ledgerHandler.RecordSale)
	protected.Post("/returns", ledgerHandler.RecordReturn)
	protected.Get("/sales/:id", ledgerHandler.GetEntry)
	protected.Get("/sales/:id/receipt", ledgerHandler.GetReceipt)

	// Pedidos a proveedor (los paths fijos van antes de /:id)
	ordersHandler := NewOrdersHandler(deps.WorkflowUC, deps.DraftUC)
	so := protected.Group("/supplier-orders")
	so.Post("/create-from-drafts", ordersHandler.CreateFromDrafts)
	so.Post("/drafts", ordersHandler.AddDraft)
	so.Get("/drafts", ordersHandler.ListDrafts)
	so.Put("/drafts/:id", ordersHandler.UpdateDraft)
	so.Delete("/drafts/:id", ordersHandler.DeleteDraft)
	so.Post("/", ordersHandler.Create)
	so.Get("/", ordersHandler.List)
	so.Get("/:id", ordersHandler.Get)
	so.Delete("/:id", ordersHandler.Delete)
	so.Post("/:id/items", ordersHandler.AddItem)
	so.Put("/:id/items/:itemId", ordersHandler.UpdateItem)
	so.Delete("/:id/items/:itemId", ordersHandler.DeleteItem)
	so.Post("/:id/receive", ordersHandler.MarkReceived)
	so.Post("/:id/reactivate", ordersHandler.Reactivate)
	so.Put("/:id/status", ordersHandler.UpdateStatus)
	so.Post("/:id/duplicate", ordersHandler.Duplicate)
	so.Post("/:id/move", ordersHandler.Move)

	// Referencia
	referenceHandler := NewReferenceHandler(deps.PaymentMethodRepo, deps.SupplierRepo, deps.DepartmentRepo)
	protected.Get("/payment-methods", referenceHandler.ListPaymentMethods)
	protected.Get("/suppliers", referenceHandler.ListSuppliers)
	protected.Get("/departments", referenceHandler.ListDepartments)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/stats", dashboardHandler.Stats)
}
