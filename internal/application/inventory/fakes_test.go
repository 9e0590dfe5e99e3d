package inventory_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Reposicion-api/internal/application/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Sin transacciones reales:
// el fakeTxRunner ejecuta el callback directo sobre los mismos fakes, lo que
// basta para probar la semántica de los casos de uso.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Search(_ context.Context, _ string) ([]*entity.Product, error) {
	return r.sortedByName(func(*entity.Product) bool { return true }), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	r.products[id].CurrentStock = stock
	return nil
}

func (r *fakeProductRepo) SetNotifiedLow(_ context.Context, id string, notified bool) error {
	r.products[id].NotifiedLow = notified
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ListBelowReportThreshold(_ context.Context) ([]*entity.Product, error) {
	factor := decimal.NewFromFloat(2.5)
	buffer := decimal.NewFromFloat(1.125)
	return r.sortedByName(func(p *entity.Product) bool {
		rop := p.DemandPerDay.Mul(p.LeadDays).Mul(factor)
		return rop.GreaterThan(decimal.Zero) && p.CurrentStock.LessThanOrEqual(rop.Mul(buffer))
	}), nil
}

func (r *fakeProductRepo) ListBelowReorderUnnotified(_ context.Context) ([]*entity.Product, error) {
	factor := decimal.NewFromFloat(2.5)
	return r.sortedByName(func(p *entity.Product) bool {
		rop := p.DemandPerDay.Mul(p.LeadDays).Mul(factor)
		return p.CurrentStock.LessThanOrEqual(rop) && !p.NotifiedLow
	}), nil
}

func (r *fakeProductRepo) sortedByName(keep func(*entity.Product) bool) []*entity.Product {
	var list []*entity.Product
	for _, p := range r.products {
		if keep(p) {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

type fakeMovementRepo struct {
	movements map[string]*entity.StockMovement
	order     []string // ids en orden de inserción
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{movements: make(map[string]*entity.StockMovement)}
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.movements[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	return r.movements[id], nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	// más reciente primero
	for i := len(r.order) - 1; i >= 0; i-- {
		if m, ok := r.movements[r.order[i]]; ok && m.ProductID == productID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) Delete(_ context.Context, id string) error {
	delete(r.movements, id)
	return nil
}

func (r *fakeMovementRepo) DeleteByProduct(_ context.Context, productID string) error {
	for id, m := range r.movements {
		if m.ProductID == productID {
			delete(r.movements, id)
		}
	}
	return nil
}

type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return fn(r.products, r.movements)
}
