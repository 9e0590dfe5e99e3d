package dto

import "github.com/shopspring/decimal"

// LowStockAlertDTO alerta emitida por el sondeo: producto que acaba de cruzar
// bajo su punto de reorden y aún no había sido notificado.
type LowStockAlertDTO struct {
	ProductID         string          `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	InventoryPosition decimal.Decimal `json:"inventory_position"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"`
}

// LowStockItemDTO fila del reporte de stock bajo (umbral ROP * 1.125).
type LowStockItemDTO struct {
	ProductID         string          `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	ReportThreshold   decimal.Decimal `json:"report_threshold"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"`
	Below             bool            `json:"below_reorder_point"`
}
