package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, description, current_stock, demand_per_day, lead_days, location, supplier_name, notified_low, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.Description,
		product.CurrentStock, product.DemandPerDay, product.LeadDays,
		product.Location, product.SupplierName, product.NotifiedLow,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product")
}

// GetByCode obtiene un producto por su código de negocio (nil si no existe).
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, code), "get product by code")
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Serializa la secuencia leer-validar-aplicar del libro de stock.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product for update")
}

// Search filtra por subcadena case-insensitive sobre código o nombre,
// ordenado por nombre. q vacío lista todos los productos.
func (r *ProductRepo) Search(ctx context.Context, q string) ([]*entity.Product, error) {
	var (
		query string
		args  []any
	)
	if q != "" {
		query = `
			SELECT ` + productColumns + ` FROM products
			WHERE code ILIKE $1 OR name ILIKE $1
			ORDER BY name ASC`
		args = []any{"%" + q + "%"}
	} else {
		query = `SELECT ` + productColumns + ` FROM products ORDER BY name ASC`
	}
	return r.scanMany(ctx, query, args, "search products")
}

// Update actualiza los campos mutables de un producto, incluido el latch.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET code = $2, name = $3, description = $4, current_stock = $5,
		    demand_per_day = $6, lead_days = $7, location = $8,
		    supplier_name = $9, notified_low = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.Description,
		product.CurrentStock, product.DemandPerDay, product.LeadDays,
		product.Location, product.SupplierName, product.NotifiedLow,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el saldo (usado por el libro de movimientos).
func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, stock decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// SetNotifiedLow actualiza solo el latch de notificación.
func (r *ProductRepo) SetNotifiedLow(ctx context.Context, productID string, notified bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET notified_low = $2, updated_at = now() WHERE id = $1`,
		productID, notified,
	)
	if err != nil {
		return fmt.Errorf("set notified_low: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID. La FK de movimientos tiene ON DELETE
// CASCADE como red de seguridad; el caso de uso igual borra explícito.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ListBelowReportThreshold devuelve los productos con punto de reorden
// definido cuyo stock está en o bajo ROP * 1.125, mayor déficit primero.
func (r *ProductRepo) ListBelowReportThreshold(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE demand_per_day * lead_days > 0
		  AND current_stock <= demand_per_day * lead_days * 2.5 * 1.125
		ORDER BY (demand_per_day * lead_days * 2.5 - current_stock) DESC`
	return r.scanMany(ctx, query, nil, "list below report threshold")
}

// ListBelowReorderUnnotified devuelve, con bloqueo de fila, los productos en
// o bajo su punto de reorden cuyo latch sigue apagado (candidatos a alerta).
func (r *ProductRepo) ListBelowReorderUnnotified(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE current_stock <= demand_per_day * lead_days * 2.5
		  AND notified_low = false
		ORDER BY name ASC
		FOR UPDATE`
	return r.scanMany(ctx, query, nil, "list below reorder unnotified")
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description,
		&p.CurrentStock, &p.DemandPerDay, &p.LeadDays,
		&p.Location, &p.SupplierName, &p.NotifiedLow,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(ctx context.Context, query string, args []any, op string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Description,
			&p.CurrentStock, &p.DemandPerDay, &p.LeadDays,
			&p.Location, &p.SupplierName, &p.NotifiedLow,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
