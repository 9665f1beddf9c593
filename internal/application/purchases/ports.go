package purchases

import (
	"context"

	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// PurchaseTxRunner executa uma função dentro de uma transação com os
// repositórios de compra, estoque e financeiro amarrados à mesma tx.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		financeRepo repository.FinanceRepository,
	) error) error
}
