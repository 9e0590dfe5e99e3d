package usecase_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/usecase"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (puertos de persistencia)
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, other := range r.products {
		if other.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) Search(_ context.Context, q string) ([]*entity.Product, error) {
	q = strings.ToLower(q)
	var list []*entity.Product
	for _, p := range r.products {
		if q == "" || strings.Contains(strings.ToLower(p.Code), q) || strings.Contains(strings.ToLower(p.Name), q) {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	r.products[id].CurrentStock = stock
	return nil
}

func (r *memProductRepo) SetNotifiedLow(_ context.Context, id string, notified bool) error {
	r.products[id].NotifiedLow = notified
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) ListBelowReportThreshold(_ context.Context) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) ListBelowReorderUnnotified(_ context.Context) ([]*entity.Product, error) {
	return nil, nil
}

type memMovementRepo struct {
	byProduct map[string]int // movimientos vivos por producto
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.byProduct[m.ProductID]++
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, _ string) (*entity.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, _ string) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *memMovementRepo) DeleteByProduct(_ context.Context, productID string) error {
	delete(r.byProduct, productID)
	return nil
}

type memTxRunner struct {
	products  *memProductRepo
	movements *memMovementRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return fn(r.products, r.movements)
}

func setup() (*usecase.ProductUseCase, *memProductRepo, *memMovementRepo) {
	productRepo := &memProductRepo{products: make(map[string]*entity.Product)}
	movementRepo := &memMovementRepo{byProduct: make(map[string]int)}
	uc := usecase.NewProductUseCase(productRepo, &memTxRunner{products: productRepo, movements: movementRepo})
	return uc, productRepo, movementRepo
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal { v := d(s); return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CodigoYNombreObligatorios(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "", Name: "Tornillo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "TOR-01", Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un nombre solo de espacios no cuenta")
}

// Numéricos ausentes quedan en cero (coacción, no error) y el latch nace apagado.
func TestCreate_NumericosAusentesEnCero(t *testing.T) {
	uc, _, _ := setup()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Code: "TOR-01", Name: "Tornillo M4"})

	require.NoError(t, err)
	assert.True(t, out.CurrentStock.IsZero())
	assert.True(t, out.DemandPerDay.IsZero())
	assert.True(t, out.ReorderPoint.IsZero())
	assert.False(t, out.NotifiedLow)
}

func TestCreate_CodigoDuplicado(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "TOR-01", Name: "Tornillo"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "TOR-01", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// La respuesta incluye las métricas de reorden calculadas.
func TestCreate_RespuestaConMetricas(t *testing.T) {
	uc, _, _ := setup()

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Code: "TOR-01", Name: "Tornillo M4",
		CurrentStock: d("50"), DemandPerDay: d("10"), LeadDays: d("3"),
	})

	require.NoError(t, err)
	assert.True(t, d("75").Equal(out.ReorderPoint))
	assert.True(t, d("25").Equal(out.SuggestedOrderQty))
	assert.True(t, out.Below)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

// Campos nil y code/name en blanco conservan el valor almacenado.
func TestUpdate_BlancoConservaAnterior(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Code: "TOR-01", Name: "Tornillo M4", Description: "galvanizado",
		CurrentStock: d("50"), DemandPerDay: d("10"), LeadDays: d("3"),
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Code:        strPtr("   "),
		Name:        strPtr(""),
		Description: strPtr("inoxidable"),
	})

	require.NoError(t, err)
	assert.Equal(t, "TOR-01", out.Code, "código en blanco conserva el anterior")
	assert.Equal(t, "Tornillo M4", out.Name, "nombre en blanco conserva el anterior")
	assert.Equal(t, "inoxidable", out.Description)
	assert.True(t, d("50").Equal(out.CurrentStock), "numérico ausente conserva el almacenado")
}

func TestUpdate_CodigoDuplicado(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Code: "TOR-01", Name: "Tornillo"})
	require.NoError(t, err)
	otro, err := uc.Create(ctx, dto.CreateProductRequest{Code: "TU-01", Name: "Tuerca"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, otro.ID, dto.UpdateProductRequest{Code: strPtr("TOR-01")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Editar demanda/lead/stock refresca el latch: si el producto queda sobre su
// nuevo ROP, el latch notificado se limpia.
func TestUpdate_EdicionRefrescaLatch(t *testing.T) {
	uc, productRepo, _ := setup()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Code: "TOR-01", Name: "Tornillo M4",
		CurrentStock: d("50"), DemandPerDay: d("10"), LeadDays: d("3"), // ROP=75, bajo
	})
	require.NoError(t, err)
	productRepo.products[created.ID].NotifiedLow = true

	// bajar la demanda deja ROP=25 < stock 50: recuperado
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{DemandPerDay: decPtr("2")})

	require.NoError(t, err)
	assert.False(t, out.Below)
	assert.False(t, out.NotifiedLow, "la edición debe limpiar el latch al recuperarse")
}

// La edición nunca enciende el latch, aunque deje al producto bajo ROP.
func TestUpdate_EdicionNoEnciendeLatch(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Code: "TOR-01", Name: "Tornillo M4",
		CurrentStock: d("100"), DemandPerDay: d("2"), LeadDays: d("3"), // ROP=15, sobrado
	})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{DemandPerDay: decPtr("50")}) // ROP=375

	require.NoError(t, err)
	assert.True(t, out.Below)
	assert.False(t, out.NotifiedLow, "encender el latch es del sondeo, no de la edición")
}

func TestUpdate_ProductoInexistente(t *testing.T) {
	uc, _, _ := setup()
	_, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / List
// ──────────────────────────────────────────────────────────────────────────────

// Borrar un producto cascadea a sus movimientos en la misma transacción.
func TestDelete_CascadeaMovimientos(t *testing.T) {
	uc, productRepo, movementRepo := setup()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{Code: "TOR-01", Name: "Tornillo"})
	require.NoError(t, err)
	movementRepo.byProduct[created.ID] = 3

	require.NoError(t, uc.Delete(ctx, created.ID))

	assert.NotContains(t, productRepo.products, created.ID)
	assert.NotContains(t, movementRepo.byProduct, created.ID, "los movimientos del producto deben borrarse")
}

func TestDelete_ProductoInexistente(t *testing.T) {
	uc, _, _ := setup()
	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Búsqueda por subcadena sobre código o nombre, ordenada por nombre.
func TestList_BuscaPorCodigoONombre(t *testing.T) {
	uc, _, _ := setup()
	ctx := context.Background()

	for _, p := range []dto.CreateProductRequest{
		{Code: "TOR-01", Name: "Tornillo M4"},
		{Code: "TU-01", Name: "Tuerca M4"},
		{Code: "AR-01", Name: "Arandela plana"},
	} {
		_, err := uc.Create(ctx, p)
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, "m4")
	require.NoError(t, err)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "Tornillo M4", out.Items[0].Name, "orden por nombre")
	assert.Equal(t, "Tuerca M4", out.Items[1].Name)

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total, "q vacío lista todo")
}
