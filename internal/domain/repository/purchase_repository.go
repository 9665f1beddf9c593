package repository

import "github.com/gestaolivre/erp-api/internal/domain/entity"

// PurchaseRepository define a porta de persistência para Purchase e PurchaseItem.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error)
	// UpdateStatus muda o status somente se o atual for `from`; devolve
	// ErrConflict caso contrário.
	UpdateStatus(id, from, to string) error
	List(limit, offset int) ([]*entity.Purchase, error)
}
