package repository

import (
	"time"

	"github.com/gestaolivre/erp-api/internal/domain/entity"
)

// StockMovementRepository define a porta de persistência para movimentos de estoque.
// A tabela é append-only: não há Update nem Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(referenceID string) ([]*entity.StockMovement, error)
}
