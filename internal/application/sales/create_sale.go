package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/ledger"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/finance"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// SaleUseCase cria vendas descontando o estoque na mesma transação.
// Tudo ou nada: se qualquer item falha na checagem de saldo, cabeçalho,
// itens e movimentos já gravados nessa chamada sofrem rollback.
type SaleUseCase struct {
	txRunner    SaleTxRunner
	engine      *ledger.Engine
	productRepo repository.ProductRepository
	partnerRepo repository.PartnerRepository
	saleRepo    repository.SaleRepository
}

// NewSaleUseCase constrói o caso de uso.
func NewSaleUseCase(
	txRunner SaleTxRunner,
	engine *ledger.Engine,
	productRepo repository.ProductRepository,
	partnerRepo repository.PartnerRepository,
	saleRepo repository.SaleRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		engine:      engine,
		productRepo: productRepo,
		partnerRepo: partnerRepo,
		saleRepo:    saleRepo,
	}
}

// CreateSale valida itens, calcula o total e grava cabeçalho + itens + um
// movimento OUT por item dentro de uma única transação. Pagamento A_PRAZO
// deriva uma conta a receber na mesma tx.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if userID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Valida cliente, se informado
	if in.PartnerID != "" {
		partner, err := uc.partnerRepo.GetByID(in.PartnerID)
		if err != nil || partner == nil {
			return nil, domain.ErrNotFound
		}
		if partner.Type == entity.PartnerTypeSupplier {
			return nil, domain.ErrInvalidInput
		}
	}

	// Valida produtos e preços (fora da tx, somente leitura)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = product.Price
		}
		if !in.Items[i].UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Total = soma dos totais de linha (invariante do cabeçalho)
	total := decimal.Zero
	for _, item := range in.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}

	now := time.Now()
	saleID := uuid.New().String() // referência dos movimentos (ReferenceID)
	sale := &entity.Sale{
		ID:            saleID,
		UserID:        userID,
		PartnerID:     in.PartnerID,
		PaymentMethod: in.PaymentMethod,
		Total:         total,
		Status:        entity.SaleStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		financeRepo repository.FinanceRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range in.Items {
			saleItem := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Total:     item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
			}
			if err := saleRepo.CreateItem(saleItem); err != nil {
				return err
			}
			sale.Items = append(sale.Items, saleItem)

			// Saída de estoque do item; erro (ex: sem saldo) desfaz a venda inteira
			if _, err := uc.engine.ApplyInTx(movRepo, productRepo, ledger.MovementInput{
				ProductID:   item.ProductID,
				Type:        entity.MovementTypeOUT,
				Quantity:    item.Quantity,
				Reason:      "Venda",
				ActorID:     userID,
				ReferenceID: saleID,
			}); err != nil {
				return err
			}
		}

		// Venda a prazo deriva a conta a receber na mesma transação
		if in.PaymentMethod == entity.PaymentOnCredit {
			dueDate := now.AddDate(0, 0, 30)
			if in.DueDate != nil {
				dueDate = *in.DueDate
			}
			entry := &finance.Entry{
				ID:          uuid.New().String(),
				Kind:        finance.KindReceivable,
				Description: "Venda a prazo " + saleID,
				Amount:      total,
				DueDate:     dueDate,
				Status:      finance.StatusPending,
				PartnerID:   in.PartnerID,
				SaleID:      saleID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := financeRepo.Create(entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		sale.Items = nil
		return nil, err
	}

	return toSaleResponse(sale), nil
}

// GetSale devolve a venda com seus itens.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return toSaleResponse(sale), nil
}

// ListSales lista vendas paginadas (sem itens).
func (uc *SaleUseCase) ListSales(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Sales: make([]dto.SaleResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, s := range list {
		out.Sales = append(out.Sales, *toSaleResponse(s))
	}
	return out, nil
}

// CancelSale cancela uma venda COMPLETED devolvendo o estoque: um movimento IN
// por item, na mesma transação da mudança de status. A conta a receber
// pendente vinculada é cancelada junto; se já paga, permanece intacta.
// O flip de status é a primeira escrita da transação e é condicional ao
// status atual: dois cancelamentos concorrentes serializam na linha da venda
// e o segundo recebe ErrConflict sem movimentar estoque.
func (uc *SaleUseCase) CancelSale(ctx context.Context, saleID, actorID string) error {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusCompleted {
		return domain.ErrConflict
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return err
	}

	return uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		financeRepo repository.FinanceRepository,
	) error {
		if err := saleRepo.UpdateStatus(saleID, entity.SaleStatusCompleted, entity.SaleStatusCancelled); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := uc.engine.ApplyInTx(movRepo, productRepo, ledger.MovementInput{
				ProductID:   item.ProductID,
				Type:        entity.MovementTypeIN,
				Quantity:    item.Quantity,
				Reason:      "Cancelamento de venda",
				ActorID:     actorID,
				ReferenceID: saleID,
			}); err != nil {
				return err
			}
		}
		entry, err := financeRepo.GetBySaleID(saleID)
		if err != nil {
			return err
		}
		if entry != nil && entry.Status == finance.StatusPending {
			if err := entry.Transition(finance.StatusCancelled, time.Now()); err != nil {
				return err
			}
			if err := financeRepo.Update(entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		PartnerID:     s.PartnerID,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return resp
}
