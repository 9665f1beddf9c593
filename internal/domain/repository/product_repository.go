package repository

import "github.com/gestaolivre/erp-api/internal/domain/entity"

// ProductRepository define a porta de persistência para Product (DIP).
// ApplyStockDelta e GetByIDForUpdate existem para o motor de estoque:
// nenhum outro componente escreve Product.Stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate bloqueia a linha do produto (SELECT FOR UPDATE) para
	// serializar escritores concorrentes dentro da transação ativa.
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// ApplyStockDelta soma delta (positivo ou negativo) em Product.Stock.
	ApplyStockDelta(productID string, delta int64) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
