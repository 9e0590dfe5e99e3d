package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/reorder"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// MovementUseCase registra y borra movimientos de stock de forma transaccional.
// Cada operación bloquea la fila del producto (SELECT FOR UPDATE), valida,
// aplica el delta al saldo y refresca el latch de notificación: todo dentro
// de la misma transacción. Así dos salidas concurrentes se serializan en vez
// de pasar ambas la validación contra un saldo desactualizado.
type MovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso. productRepo y movementRepo
// van atados al pool y solo se usan para lecturas; las mutaciones corren
// sobre los repos de la transacción.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Register crea un movimiento y aplica su delta al saldo del producto en un
// solo paso atómico (el libro de stock nunca se aplica dos veces).
//
// Validación antes de mutar nada:
//   - tipo dentro de {RECEIPT, ISSUE, ADJUSTMENT}
//   - RECEIPT e ISSUE exigen cantidad estrictamente positiva
//   - ADJUSTMENT exige cantidad distinta de cero
//   - un delta negativo no puede dejar el saldo bajo cero
func (uc *MovementUseCase) Register(ctx context.Context, productID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	movType := strings.ToUpper(strings.TrimSpace(in.Type))
	if !entity.ValidMovementType(movType) {
		return nil, domain.ErrInvalidInput
	}

	var delta decimal.Decimal
	switch movType {
	case entity.MovementTypeRECEIPT:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		delta = in.Quantity
	case entity.MovementTypeISSUE:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		delta = in.Quantity.Neg()
	case entity.MovementTypeADJUSTMENT:
		if in.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		delta = in.Quantity
	}

	var out *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Un delta negativo no puede sobregirar el saldo
		if delta.IsNegative() && delta.Abs().GreaterThan(product.CurrentStock) {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      movType,
			QtyChange: delta,
			Note:      strings.TrimSpace(in.Note),
			Location:  strings.TrimSpace(in.Location),
			CreatedAt: now,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}

		product.CurrentStock = product.CurrentStock.Add(delta)
		if err := productRepo.UpdateStock(ctx, product.ID, product.CurrentStock); err != nil {
			return err
		}
		if reorder.RefreshLatch(product) {
			if err := productRepo.SetNotifiedLow(ctx, product.ID, product.NotifiedLow); err != nil {
				return err
			}
		}

		out = toMovementResponse(mov)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete borra un movimiento revirtiendo primero su efecto sobre el saldo
// (resta el delta registrado) y refresca el latch, todo en una transacción.
// La reversión no valida saldo mínimo: el invariante del libro (suma de
// deltas == saldo) debe sobrevivir al borrado.
func (uc *MovementUseCase) Delete(ctx context.Context, movementID string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		mov, err := movementRepo.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		product.CurrentStock = product.CurrentStock.Sub(mov.QtyChange)
		if err := productRepo.UpdateStock(ctx, product.ID, product.CurrentStock); err != nil {
			return err
		}
		if err := movementRepo.Delete(ctx, mov.ID); err != nil {
			return err
		}
		if reorder.RefreshLatch(product) {
			if err := productRepo.SetNotifiedLow(ctx, product.ID, product.NotifiedLow); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByProduct devuelve los movimientos de un producto, más reciente primero.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID string) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		QtyChange: m.QtyChange,
		Note:      m.Note,
		Location:  m.Location,
		CreatedAt: m.CreatedAt,
	}
}
