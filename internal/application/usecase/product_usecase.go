package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/application/inventory"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/reorder"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El saldo se maneja vía
// movimientos salvo edición directa, que también refresca el latch porque
// cambia los insumos del motor de reorden.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto. Code y Name son obligatorios; los numéricos
// ausentes quedan en 0 (coacción defensiva, no error de validación).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		CurrentStock: in.CurrentStock,
		DemandPerDay: in.DemandPerDay,
		LeadDays:     in.LeadDays,
		Location:     strings.TrimSpace(in.Location),
		SupplierName: strings.TrimSpace(in.SupplierName),
		NotifiedLow:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID (nil si no existe).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List busca productos por subcadena sobre código o nombre (q vacío lista
// todo), ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, q string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.Search(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Update edita un producto. Campo nil conserva el valor almacenado; Code y
// Name en blanco también conservan el anterior (coacción, no error). Como la
// edición puede cambiar stock, demanda o lead time, refresca el latch dentro
// de la misma transacción.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		if in.Code != nil {
			if code := strings.TrimSpace(*in.Code); code != "" && code != product.Code {
				other, err := productRepo.GetByCode(ctx, code)
				if err != nil {
					return err
				}
				if other != nil {
					return domain.ErrDuplicate
				}
				product.Code = code
			}
		}
		if in.Name != nil {
			if name := strings.TrimSpace(*in.Name); name != "" {
				product.Name = name
			}
		}
		if in.Description != nil {
			product.Description = strings.TrimSpace(*in.Description)
		}
		if in.CurrentStock != nil {
			product.CurrentStock = *in.CurrentStock
		}
		if in.DemandPerDay != nil {
			product.DemandPerDay = *in.DemandPerDay
		}
		if in.LeadDays != nil {
			product.LeadDays = *in.LeadDays
		}
		if in.Location != nil {
			product.Location = strings.TrimSpace(*in.Location)
		}
		if in.SupplierName != nil {
			product.SupplierName = strings.TrimSpace(*in.SupplierName)
		}

		reorder.RefreshLatch(product)
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		out = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete borra el producto y todos sus movimientos en una sola transacción
// (relación de propiedad: el borrado cascadea al libro de movimientos).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := movementRepo.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return productRepo.Delete(ctx, id)
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	m := reorder.ComputeFor(p)
	return &dto.ProductResponse{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Description:       p.Description,
		CurrentStock:      p.CurrentStock,
		DemandPerDay:      p.DemandPerDay,
		LeadDays:          p.LeadDays,
		Location:          p.Location,
		SupplierName:      p.SupplierName,
		NotifiedLow:       p.NotifiedLow,
		ReorderPoint:      m.ReorderPoint,
		SuggestedOrderQty: m.SuggestedOrderQty,
		Below:             m.Below,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
