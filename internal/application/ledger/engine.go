package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// Engine é o motor de estoque: o único caminho de escrita de Product.Stock.
// Cada movimento acopla, na mesma transação, a verificação de saldo (com
// bloqueio de linha via SELECT FOR UPDATE), o registro imutável de auditoria
// e a mutação do contador de estoque. Commit ou rollback de tudo junto.
type Engine struct {
	txRunner TxRunner
}

// NewEngine constrói o motor de estoque.
func NewEngine(txRunner TxRunner) *Engine {
	return &Engine{txRunner: txRunner}
}

// MovementInput entrada para aplicar um movimento de estoque.
type MovementInput struct {
	ProductID   string
	Type        string // IN ou OUT
	Quantity    int64  // sempre positiva
	Reason      string
	ActorID     string
	ReferenceID string // venda/compra de origem; vazio em ajustes manuais
}

// Validate checa tipo e quantidade antes de abrir transação.
func (in MovementInput) Validate() error {
	if in.ProductID == "" || in.ActorID == "" {
		return domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyMovement abre uma transação, bloqueia a linha do produto e aplica o
// movimento. Para OUT, falha com ErrInsufficientStock se o saldo atual é menor
// que a quantidade; o saldo permanece intacto. Devolve o movimento criado.
func (e *Engine) ApplyMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	var mov *entity.StockMovement
	err := e.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		mov, err = e.ApplyInTx(movRepo, productRepo, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyInTx aplica o movimento usando repositórios da transação do chamador
// (serviços de documento chamam por item, dentro da própria tx).
// A checagem de saldo e o decremento acontecem sob o bloqueio de linha obtido
// por GetByIDForUpdate: dois OUT concorrentes no mesmo produto serializam aqui.
func (e *Engine) ApplyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
) (*entity.StockMovement, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Bloqueia a linha do produto (SELECT FOR UPDATE)
	product, err := productRepo.GetByIDForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	delta := input.Quantity
	if input.Type == entity.MovementTypeOUT {
		if product.Stock < input.Quantity {
			return nil, fmt.Errorf("%w: produto %s (saldo %d, solicitado %d)",
				domain.ErrInsufficientStock, product.SKU, product.Stock, input.Quantity)
		}
		delta = -input.Quantity
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		UserID:      input.ActorID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Reason:      input.Reason,
		ReferenceID: input.ReferenceID,
		CreatedAt:   now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := productRepo.ApplyStockDelta(input.ProductID, delta); err != nil {
		return nil, err
	}
	return mov, nil
}

// AdjustStock aplica um ajuste manual (contagem de inventário, correção),
// sem documento de origem. Mesma semântica de falha de ApplyMovement.
func (e *Engine) AdjustStock(ctx context.Context, productID, movType string, quantity int64, reason, actorID string) (*entity.StockMovement, error) {
	if reason == "" {
		reason = "Ajuste manual"
	}
	return e.ApplyMovement(ctx, MovementInput{
		ProductID: productID,
		Type:      movType,
		Quantity:  quantity,
		Reason:    reason,
		ActorID:   actorID,
	})
}
