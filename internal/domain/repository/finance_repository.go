package repository

import "github.com/gestaolivre/erp-api/internal/domain/finance"

// FinanceRepository define a porta de persistência para contas a pagar/receber.
// O status armazenado nunca é OVERDUE; a derivação acontece na camada de aplicação.
type FinanceRepository interface {
	Create(entry *finance.Entry) error
	GetByID(id string) (*finance.Entry, error)
	// GetByIDForUpdate bloqueia a linha para a transição de status (pagamento/cancelamento).
	GetByIDForUpdate(id string) (*finance.Entry, error)
	Update(entry *finance.Entry) error
	GetBySaleID(saleID string) (*finance.Entry, error)
	GetByPurchaseID(purchaseID string) (*finance.Entry, error)
	// ListByKind lista contas de um tipo. Os filtros OVERDUE e PENDING são
	// resolvidos pelo vencimento (OVERDUE = PENDING vencida), de modo que
	// LIMIT/OFFSET paginam sobre o conjunto já filtrado.
	ListByKind(kind finance.Kind, status string, limit, offset int) ([]*finance.Entry, error)
}
