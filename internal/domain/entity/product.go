package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. CurrentStock es el saldo
// autoritativo: siempre igual a la suma de los QtyChange de sus movimientos
// aplicados en orden de creación. NotifiedLow es el latch de alerta de stock
// bajo: true desde que el producto cruza bajo su punto de reorden hasta que
// se recupera por encima.
type Product struct {
	ID           string
	Code         string // código único asignado por el usuario (clave de negocio)
	Name         string
	Description  string
	CurrentStock decimal.Decimal
	DemandPerDay decimal.Decimal
	LeadDays     decimal.Decimal
	Location     string
	SupplierName string
	NotifiedLow  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
