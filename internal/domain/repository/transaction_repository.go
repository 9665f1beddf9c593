package repository

import (
	"time"

	"github.com/gestaolivre/erp-api/internal/domain/entity"
)

// TransactionRepository define a porta de persistência para lançamentos financeiros.
type TransactionRepository interface {
	Create(txn *entity.FinancialTransaction) error
	GetByID(id string) (*entity.FinancialTransaction, error)
	ListByAccount(accountID string, from, to *time.Time, limit, offset int) ([]*entity.FinancialTransaction, error)
	List(limit, offset int) ([]*entity.FinancialTransaction, error)
}
