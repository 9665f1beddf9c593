// Package usecase casos de uso CRUD dos cadastros: produtos, parceiros,
// plano de contas, lançamentos financeiros e usuários.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
	pkgfiscal "github.com/gestaolivre/erp-api/pkg/fiscal"
)

// ProductUseCase CRUD de produtos. Stock nasce em zero e só muda via
// movimentos do motor de estoque.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// CreateProduct cria um produto com estoque zero. SKU duplicado devolve ErrDuplicate.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.CostPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.NCM != "" {
		if err := pkgfiscal.ValidateNCM(in.NCM); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.CFOP != "" {
		if err := pkgfiscal.ValidateCFOP(in.CFOP); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	existing, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Stock:       0,
		Price:       in.Price,
		CostPrice:   in.CostPrice,
		NCM:         in.NCM,
		CFOP:        in.CFOP,
		ICMSRate:    in.ICMSRate,
		Origin:      in.Origin,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct busca por ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// UpdateProduct atualiza os campos editáveis. Stock fica intocado.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price.GreaterThan(decimal.Zero) {
		product.Price = in.Price
	}
	if in.CostPrice.GreaterThan(decimal.Zero) {
		product.CostPrice = in.CostPrice
	}
	if in.NCM != "" {
		if err := pkgfiscal.ValidateNCM(in.NCM); err != nil {
			return nil, domain.ErrInvalidInput
		}
		product.NCM = in.NCM
	}
	if in.CFOP != "" {
		if err := pkgfiscal.ValidateCFOP(in.CFOP); err != nil {
			return nil, domain.ErrInvalidInput
		}
		product.CFOP = in.CFOP
	}
	if in.ICMSRate.GreaterThan(decimal.Zero) {
		product.ICMSRate = in.ICMSRate
	}
	if in.Origin != 0 {
		product.Origin = in.Origin
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListProducts lista produtos paginados.
func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	products, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range products {
		out.Products = append(out.Products, *toProductResponse(p))
	}
	return out, nil
}

// DeleteProduct remove um produto. Produto com movimentos devolve ErrConflict
// (a FK de stock_movements impede a remoção).
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		NCM:         p.NCM,
		CFOP:        p.CFOP,
		ICMSRate:    p.ICMSRate,
		Origin:      p.Origin,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
