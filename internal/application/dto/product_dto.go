package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Code y Name son
// obligatorios; los campos numéricos ausentes se coaccionan a 0.
type CreateProductRequest struct {
	Code         string          `json:"code" form:"code" validate:"required,min=1,max=64"`
	Name         string          `json:"name" form:"name" validate:"required,min=1,max=160"`
	Description  string          `json:"description" form:"description"`
	CurrentStock decimal.Decimal `json:"current_stock" form:"current_stock"`
	DemandPerDay decimal.Decimal `json:"demand_per_day" form:"demand_per_day"`
	LeadDays     decimal.Decimal `json:"lead_days" form:"lead_days"`
	Location     string          `json:"location" form:"location"`
	SupplierName string          `json:"supplier_name" form:"supplier_name"`
}

// UpdateProductRequest entrada para editar un producto. Campo nil = conservar
// el valor almacenado; Code y Name en blanco también conservan el anterior.
type UpdateProductRequest struct {
	Code         *string          `json:"code" form:"code"`
	Name         *string          `json:"name" form:"name"`
	Description  *string          `json:"description" form:"description"`
	CurrentStock *decimal.Decimal `json:"current_stock" form:"current_stock"`
	DemandPerDay *decimal.Decimal `json:"demand_per_day" form:"demand_per_day"`
	LeadDays     *decimal.Decimal `json:"lead_days" form:"lead_days"`
	Location     *string          `json:"location" form:"location"`
	SupplierName *string          `json:"supplier_name" form:"supplier_name"`
}

// ProductResponse salida de un producto con sus métricas de reorden.
type ProductResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	DemandPerDay      decimal.Decimal `json:"demand_per_day"`
	LeadDays          decimal.Decimal `json:"lead_days"`
	Location          string          `json:"location"`
	SupplierName      string          `json:"supplier_name"`
	NotifiedLow       bool            `json:"notified_low"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"`
	Below             bool            `json:"below_reorder_point"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse listado de productos (resultado de búsqueda).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
