package reorder

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// Constantes de política de reposición. El factor 2.5 cubre el lead time (1x)
// más un colchón de seguridad (1.5x); no es configurable por el usuario.
// El colchón 1.125 amplía el umbral solo para el reporte de stock bajo.
var (
	reorderFactor = decimal.NewFromFloat(2.5)
	reportBuffer  = decimal.NewFromFloat(1.125)
)

// Metrics resultado del motor de reorden para un producto.
// Los campos numéricos vienen redondeados a 2 decimales para presentación;
// Below se evalúa sobre los valores sin redondear para evitar parpadeo en
// el límite exacto.
type Metrics struct {
	ReorderPoint      decimal.Decimal
	InventoryPosition decimal.Decimal
	SuggestedOrderQty decimal.Decimal
	ReportThreshold   decimal.Decimal
	Below             bool
}

// Compute calcula las métricas de reorden (servicio de dominio, sin efectos).
//
//	ROP               = DemandPerDay * LeadDays * 2.5
//	InventoryPosition = CurrentStock (no se rastrea cantidad en tránsito)
//	SuggestedOrderQty = max(ROP - InventoryPosition, 0)
//	Below             = InventoryPosition <= ROP (la igualdad cuenta como bajo)
func Compute(demandPerDay, leadDays, currentStock decimal.Decimal) Metrics {
	rop := demandPerDay.Mul(leadDays).Mul(reorderFactor)
	position := currentStock

	suggested := rop.Sub(position)
	if suggested.IsNegative() {
		suggested = decimal.Zero
	}

	return Metrics{
		ReorderPoint:      rop.Round(2),
		InventoryPosition: position.Round(2),
		SuggestedOrderQty: suggested.Round(2),
		ReportThreshold:   rop.Mul(reportBuffer).Round(2),
		Below:             position.LessThanOrEqual(rop),
	}
}

// ComputeFor calcula las métricas a partir de los atributos del producto.
func ComputeFor(p *entity.Product) Metrics {
	return Compute(p.DemandPerDay, p.LeadDays, p.CurrentStock)
}

// RefreshLatch limpia NotifiedLow si el producto recuperó stock por encima
// del punto de reorden. Nunca enciende el latch: encenderlo es responsabilidad
// exclusiva del sondeo de alertas, que emite exactamente una alerta por
// episodio bajo ROP. Devuelve true si el estado cambió y debe persistirse.
// Idempotente: una segunda llamada sin cambios de stock no altera nada.
func RefreshLatch(p *entity.Product) bool {
	m := ComputeFor(p)
	if !m.Below && p.NotifiedLow {
		p.NotifiedLow = false
		return true
	}
	return false
}
