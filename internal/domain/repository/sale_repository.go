package repository

import "github.com/gestaolivre/erp-api/internal/domain/entity"

// SaleRepository define a porta de persistência para Sale e SaleItem.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	// UpdateStatus muda o status somente se o atual for `from`; devolve
	// ErrConflict caso contrário. Serializa cancelamentos concorrentes da
	// mesma venda na linha do banco.
	UpdateStatus(id, from, to string) error
	List(limit, offset int) ([]*entity.Sale, error)
}
