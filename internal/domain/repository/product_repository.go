package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los lookups devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para la
	// secuencia leer-validar-aplicar del libro de stock. Solo tiene sentido
	// dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Search filtra por subcadena (case-insensitive) sobre código o nombre;
	// q vacío lista todo. Ordena por nombre ascendente.
	Search(ctx context.Context, q string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock decimal.Decimal) error
	SetNotifiedLow(ctx context.Context, productID string, notified bool) error
	Delete(ctx context.Context, id string) error
	// ListBelowReportThreshold devuelve productos con ROP > 0 cuyo stock está
	// en o bajo ROP*1.125, ordenados por déficit descendente.
	ListBelowReportThreshold(ctx context.Context) ([]*entity.Product, error)
	// ListBelowReorderUnnotified devuelve (con bloqueo de fila) los productos
	// bajo su punto de reorden cuyo latch sigue apagado.
	ListBelowReorderUnnotified(ctx context.Context) ([]*entity.Product, error)
}
