package inventory

import (
	"context"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain/reorder"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// AlertUseCase genera el reporte de stock bajo y atiende el sondeo de alertas
// con deduplicación one-shot: exactamente una alerta por episodio bajo ROP.
type AlertUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *AlertUseCase {
	return &AlertUseCase{txRunner: txRunner, productRepo: productRepo}
}

// PollAndLatch devuelve los productos que están bajo su punto de reorden y
// aún no fueron notificados, encendiendo el latch de cada uno en la misma
// transacción. Pensado para un caller repetitivo (estilo cron): un producto
// ya alertado no vuelve a aparecer hasta recuperarse y volver a caer bajo ROP.
func (uc *AlertUseCase) PollAndLatch(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	alerts := []dto.LowStockAlertDTO{}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		// Filas bloqueadas: el sondeo compite con los movimientos en curso
		products, err := productRepo.ListBelowReorderUnnotified(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			m := reorder.ComputeFor(p)
			alerts = append(alerts, dto.LowStockAlertDTO{
				ProductID:         p.ID,
				Code:              p.Code,
				Name:              p.Name,
				InventoryPosition: m.InventoryPosition,
				ReorderPoint:      m.ReorderPoint,
				SuggestedOrderQty: m.SuggestedOrderQty,
			})
			if err := productRepo.SetNotifiedLow(ctx, p.ID, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// LowStockReport lista los productos en o bajo el umbral ROP * 1.125
// (colchón del 12.5% sobre el punto de reorden), ordenados por déficit
// descendente. Es solo un reporte: no toca el latch de notificación.
func (uc *AlertUseCase) LowStockReport(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	products, err := uc.productRepo.ListBelowReportThreshold(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		m := reorder.ComputeFor(p)
		items = append(items, dto.LowStockItemDTO{
			ProductID:         p.ID,
			Code:              p.Code,
			Name:              p.Name,
			CurrentStock:      m.InventoryPosition,
			ReorderPoint:      m.ReorderPoint,
			ReportThreshold:   m.ReportThreshold,
			SuggestedOrderQty: m.SuggestedOrderQty,
			Below:             m.Below,
		})
	}
	return items, nil
}
