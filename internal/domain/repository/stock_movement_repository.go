package repository

import (
	"context"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByProduct ordena por fecha de creación descendente.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	Delete(ctx context.Context, id string) error
	// DeleteByProduct borra todos los movimientos del producto (paso explícito
	// del borrado en cascada, dentro de la misma transacción).
	DeleteByProduct(ctx context.Context, productID string) error
}
