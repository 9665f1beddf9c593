package sales

import (
	"context"

	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// SaleTxRunner executa uma função dentro de uma transação com os repositórios
// de venda, estoque e financeiro amarrados à mesma tx (para CreateSale/CancelSale).
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		financeRepo repository.FinanceRepository,
	) error) error
}
