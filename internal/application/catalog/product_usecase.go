// Package catalog registra productos fuera del flujo de movimientos: alta, edición
// descriptiva, consulta y carga inicial desde JSON.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/application/inventory"
	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. Quantity solo se fija al crear; luego cambia vía movimientos.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, now: time.Now}
}

// Create registra un producto. El SKU se normaliza y debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.newProduct(in)
	if err != nil {
		return nil, err
	}
	var out dto.ProductResponse
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		if _, exists := productRepo.Get(product.SKU); exists {
			return domain.ErrDuplicate
		}
		productRepo.Put(product)
		out = inventory.ToProductResponse(product, alertRepo.Has(product.SKU))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *ProductUseCase) newProduct(in dto.CreateProductRequest) (*entity.Product, error) {
	sku := entity.NormalizeSKU(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" || in.Quantity < 0 || in.UnitCost.IsNegative() || in.ReorderThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	p := &entity.Product{
		SKU:              sku,
		Name:             name,
		Description:      strings.TrimSpace(in.Description),
		Category:         strings.TrimSpace(in.Category),
		Unit:             strings.TrimSpace(in.Unit),
		Quantity:         in.Quantity,
		UnitCost:         in.UnitCost,
		ReorderThreshold: in.ReorderThreshold,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if p.Unit == "" {
		p.Unit = "pieza"
	}
	p.RecalculateValue()
	return p, nil
}

// Update modifica los datos descriptivos de un producto.
func (uc *ProductUseCase) Update(ctx context.Context, sku string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		p, ok := productRepo.Get(sku)
		if !ok {
			return domain.ErrProductNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			p.Name = name
		}
		if in.Description != nil {
			p.Description = strings.TrimSpace(*in.Description)
		}
		if in.Category != nil {
			p.Category = strings.TrimSpace(*in.Category)
		}
		if in.Unit != nil {
			p.Unit = strings.TrimSpace(*in.Unit)
		}
		if in.ReorderThreshold != nil {
			if *in.ReorderThreshold < 0 {
				return domain.ErrInvalidInput
			}
			p.ReorderThreshold = *in.ReorderThreshold
		}
		p.UpdatedAt = uc.now()
		productRepo.Put(p)
		out = inventory.ToProductResponse(p, alertRepo.Has(p.SKU))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get obtiene un producto por SKU.
func (uc *ProductUseCase) Get(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		p, ok := productRepo.Get(sku)
		if !ok {
			return domain.ErrProductNotFound
		}
		out = inventory.ToProductResponse(p, alertRepo.Has(p.SKU))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List lista productos ordenados por SKU con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	out := &dto.ProductListResponse{Items: []dto.ProductResponse{}}
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		list := productRepo.List()
		start, end := page.Window(len(list))
		for _, p := range list[start:end] {
			out.Items = append(out.Items, inventory.ToProductResponse(p, alertRepo.Has(p.SKU)))
		}
		out.Page = dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(list)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Seed carga un arreglo JSON de productos. Los SKUs ya registrados se omiten.
// Devuelve cuántos productos se crearon.
func (uc *ProductUseCase) Seed(ctx context.Context, r io.Reader) (int, error) {
	var in []dto.CreateProductRequest
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("decode catalog seed: %w", err)
	}
	products := make([]*entity.Product, 0, len(in))
	for i, item := range in {
		p, err := uc.newProduct(item)
		if err != nil {
			return 0, fmt.Errorf("catalog seed item %d (%q): %w", i, item.SKU, err)
		}
		products = append(products, p)
	}

	created := 0
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		for _, p := range products {
			if _, exists := productRepo.Get(p.SKU); exists {
				continue
			}
			productRepo.Put(p)
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// SeedFile abre path y llama a Seed.
func (uc *ProductUseCase) SeedFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog seed: %w", err)
	}
	defer f.Close()
	return uc.Seed(ctx, f)
}
