package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/inventory"
)

// InventoryHandler maneja el reporte de stock bajo y el sondeo de alertas.
type InventoryHandler struct {
	alerts *inventory.AlertUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(alerts *inventory.AlertUseCase) *InventoryHandler {
	return &InventoryHandler{alerts: alerts}
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Productos en o bajo el umbral ROP * 1.125, mayor déficit primero. No toca el latch.
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.alerts.LowStockReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total": len(items),
		"items": items,
	})
}

// PollAlerts godoc
// @Summary      Sondeo de alertas de reposición
// @Description  Devuelve los productos recién caídos bajo su punto de reorden y enciende su latch:
//
//	un producto ya alertado no reaparece hasta recuperarse y volver a caer.
//
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/poll [get]
func (h *InventoryHandler) PollAlerts(c *fiber.Ctx) error {
	alerts, err := h.alerts.PollAndLatch(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total":  len(alerts),
		"alerts": alerts,
	})
}
