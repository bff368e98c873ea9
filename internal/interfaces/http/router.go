package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-tracker/internal/application/analytics"
	"github.com/jhoicas/supply-tracker/internal/application/catalog"
	"github.com/jhoicas/supply-tracker/internal/application/inventory"
	"github.com/jhoicas/supply-tracker/internal/application/procurement"
	"github.com/jhoicas/supply-tracker/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *catalog.ProductUseCase
	StockLedger *inventory.StockLedgerUseCase
	DraftUC     *procurement.DraftUseCase
	RequestUC   *procurement.RequestUseCase
	DashboardUC *analytics.DashboardUseCase
	// Activity es nil cuando no hay base de datos; entonces no se expone /api/activity.
	Activity  activityLister
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todas las rutas requieren Bearer Token con rol
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireRole())

	storekeepers := RequireRole(jwt.RoleAdmin, jwt.RoleStorekeeper)
	approvers := RequireRole(jwt.RoleAdmin, jwt.RoleApprover)

	// Productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", storekeepers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:sku", productHandler.Get)
	products.Patch("/:sku", storekeepers, productHandler.Update)

	// Inventario: entradas, salidas y stock bajo
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedger)
	invGroup.Post("/stock-in", storekeepers, inventoryHandler.CreateStockIn)
	invGroup.Put("/stock-in/:id", storekeepers, inventoryHandler.UpdateStockIn)
	invGroup.Delete("/stock-in/:id", storekeepers, inventoryHandler.DeleteStockIn)
	invGroup.Post("/stock-out", storekeepers, inventoryHandler.CreateStockOut)
	invGroup.Put("/stock-out/:id", storekeepers, inventoryHandler.UpdateStockOut)
	invGroup.Delete("/stock-out/:id", storekeepers, inventoryHandler.DeleteStockOut)
	invGroup.Post("/low-stock/evaluate", inventoryHandler.EvaluateLowStock)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)

	// Borrador de solicitud (uno por usuario)
	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Post("/", draftHandler.Start)
	drafts.Delete("/", draftHandler.Cancel)
	drafts.Get("/current", draftHandler.Current)
	drafts.Post("/next", draftHandler.Next)
	drafts.Post("/back", draftHandler.Back)
	drafts.Post("/items", draftHandler.AddItem)
	drafts.Patch("/items/:itemId", draftHandler.UpdateItem)
	drafts.Delete("/items/:itemId", draftHandler.RemoveItem)
	drafts.Post("/finalize", draftHandler.Finalize)

	// Solicitudes; next-id y next-po-number antes de /:id
	requests := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.RequestUC)
	requests.Get("/", requestHandler.List)
	requests.Get("/next-id", requestHandler.NextID)
	requests.Get("/next-po-number", requestHandler.NextPONumber)
	requests.Get("/:id", requestHandler.Get)
	requests.Get("/:id/pdf", requestHandler.PurchaseOrderPDF)
	requests.Post("/:id/approve", approvers, requestHandler.Approve)
	requests.Post("/:id/reject", approvers, requestHandler.Reject)
	requests.Post("/:id/archive", approvers, requestHandler.Archive)
	requests.Post("/:id/transition", RequireRole(jwt.RoleAdmin, jwt.RoleApprover, jwt.RoleStorekeeper), requestHandler.Transition)
	requests.Delete("/:id", RequireRole(jwt.RoleAdmin), requestHandler.Delete)
	requests.Post("/:id/items", requestHandler.AddItem)
	requests.Patch("/:id/items/:itemId", requestHandler.UpdateItem)
	requests.Delete("/:id/items/:itemId", requestHandler.RemoveItem)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	if deps.Activity != nil {
		activity := protected.Group("/activity")
		activityHandler := NewActivityHandler(deps.Activity)
		activity.Get("/", activityHandler.List)
	}
}
