package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	NCM         string          `json:"ncm" validate:"omitempty,len=8"`
	CFOP        string          `json:"cfop" validate:"omitempty,len=4"`
	ICMSRate    decimal.Decimal `json:"icms_rate"`
	Origin      int             `json:"origin" validate:"min=0,max=8"`
}

// UpdateProductRequest body para PUT /api/products/:id. Stock não é editável aqui.
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	NCM         string          `json:"ncm" validate:"omitempty,len=8"`
	CFOP        string          `json:"cfop" validate:"omitempty,len=4"`
	ICMSRate    decimal.Decimal `json:"icms_rate"`
	Origin      int             `json:"origin" validate:"min=0,max=8"`
	Active      *bool           `json:"active"`
}

// ProductResponse resposta de produto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Stock       int64           `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	NCM         string          `json:"ncm,omitempty"`
	CFOP        string          `json:"cfop,omitempty"`
	ICMSRate    decimal.Decimal `json:"icms_rate"`
	Origin      int             `json:"origin"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listagem paginada de produtos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}
