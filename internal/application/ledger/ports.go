package ledger

import (
	"context"

	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios amarrados a essa tx. Garante atomicidade para o motor de estoque.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
