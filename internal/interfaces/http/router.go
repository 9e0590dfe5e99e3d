package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/inventory"
	"github.com/jhoicas/Reposicion-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	MovementUC *inventory.MovementUseCase
	AlertUC    *inventory.AlertUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock movements (anidados bajo el producto dueño)
	movementHandler := NewMovementHandler(deps.MovementUC)
	products.Get("/:id/movements", movementHandler.ListByProduct)
	products.Post("/:id/movements", movementHandler.Register)
	api.Delete("/movements/:id", movementHandler.Delete)

	// Inventory: reporte de stock bajo y sondeo de alertas
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AlertUC)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/alerts/poll", inventoryHandler.PollAlerts)
}
