package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar un movimiento de stock.
// Para RECEIPT e ISSUE, Quantity debe ser estrictamente positiva (el signo
// lo fija el tipo); para ADJUSTMENT, Quantity lleva el signo y no puede ser 0.
type RegisterMovementRequest struct {
	Type     string          `json:"type" form:"type" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" form:"quantity" validate:"required"`
	Note     string          `json:"note" form:"note"`
	Location string          `json:"location" form:"location"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	QtyChange decimal.Decimal `json:"qty_change"`
	Note      string          `json:"note"`
	Location  string          `json:"location"`
	CreatedAt time.Time       `json:"created_at"`
}

// MovementListResponse movimientos de un producto, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
