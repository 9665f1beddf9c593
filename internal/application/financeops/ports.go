package financeops

import (
	"context"

	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// FinanceTxRunner executa uma função dentro de uma transação com o repositório
// financeiro amarrado à tx. A transição de status acontece sob bloqueio de linha.
type FinanceTxRunner interface {
	RunFinance(ctx context.Context, fn func(financeRepo repository.FinanceRepository) error) error
}
