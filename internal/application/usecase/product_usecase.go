package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var categoryCaser = cases.Title(language.Spanish)

// NormalizeCategory lleva la etiqueta de categoría a Título ("bebidas" →
// "Bebidas") para que el filtro por categoría no dependa del casing con que
// se capturó el producto.
func NormalizeCategory(category string) string {
	return categoryCaser.String(strings.ToLower(strings.TrimSpace(category)))
}

// ProductUseCase casos de uso CRUD del catálogo. Quantity solo cambia vía
// movimientos del libro de stock, nunca por edición directa.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con su existencia inicial.
func (uc *ProductUseCase) Create(ownerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || strings.TrimSpace(in.Category) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost != nil && in.Cost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Category:    NormalizeCategory(in.Category),
		Quantity:    in.Quantity,
		Price:       in.Price,
		Cost:        in.Cost,
		Supplier:    in.Supplier,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID, verificando pertenencia.
func (uc *ProductUseCase) GetByID(ownerID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OwnerID != ownerID {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Quantity (se maneja vía
// movimientos); updated_at avanza en cada mutación.
func (uc *ProductUseCase) Update(ownerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OwnerID != ownerID {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		if strings.TrimSpace(*in.Category) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Category = NormalizeCategory(*in.Category)
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = in.Cost
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la cuenta con paginación y filtro opcional por categoría.
func (uc *ProductUseCase) List(ownerID, category string, limit, offset int) (*dto.ProductListResponse, error) {
	if category != "" {
		category = NormalizeCategory(category)
	}
	list, err := uc.repo.ListByOwner(ownerID, category, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto de la cuenta. Los movimientos históricos que lo
// referencian se conservan: el snapshot de nombre y precio los mantiene legibles.
func (uc *ProductUseCase) Delete(ownerID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil || product.OwnerID != ownerID {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Cost:        p.Cost,
		Supplier:    p.Supplier,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
