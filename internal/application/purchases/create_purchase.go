package purchases

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

// PurchaseUseCase registra compras de fornecedor: entrada de estoque por item
// e conta a pagar derivada, tudo na mesma transação do cabeçalho.
type PurchaseUseCase struct {
	txRunner     PurchaseTxRunner
	engine       *ledger.Engine
	productRepo  repository.ProductRepository
	partnerRepo  repository.PartnerRepository
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseUseCase constrói o caso de uso.
func NewPurchaseUseCase(
	txRunner PurchaseTxRunner,
	engine *ledger.Engine,
	productRepo repository.ProductRepository,
	partnerRepo repository.PartnerRepository,
	purchaseRepo repository.PurchaseRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		engine:       engine,
		productRepo:  productRepo,
		partnerRepo:  partnerRepo,
		purchaseRepo: purchaseRepo,
	}
}

// CreatePurchase valida fornecedor e itens, grava cabeçalho + itens + um
// movimento IN por item e cria a conta a pagar, tudo em uma transação.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if userID == "" || len(in.Items) == 0 || in.PartnerID == "" || in.InvoiceNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	partner, err := uc.partnerRepo.GetByID(in.PartnerID)
	if err != nil || partner == nil {
		return nil, domain.ErrNotFound
	}
	if partner.Type == entity.PartnerTypeCustomer {
		return nil, domain.ErrInvalidInput
	}

	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || !item.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
	}

	total := decimal.Zero
	for _, item := range in.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}

	now := time.Now()
	issueDate := now
	if in.IssueDate != nil {
		issueDate = *in.IssueDate
	}
	purchaseID := uuid.New().String()
	purchase := &entity.Purchase{
		ID:            purchaseID,
		PartnerID:     in.PartnerID,
		InvoiceNumber: in.InvoiceNumber,
		InvoiceSeries: in.InvoiceSeries,
		IssueDate:     issueDate,
		Total:         total,
		Status:        entity.PurchaseStatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		financeRepo repository.FinanceRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range in.Items {
			purchaseItem := &entity.PurchaseItem{
				ID:         uuid.New().String(),
				PurchaseID: purchaseID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				Total:      item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
			}
			if err := purchaseRepo.CreateItem(purchaseItem); err != nil {
				return err
			}
			purchase.Items = append(purchase.Items, purchaseItem)

			if _, err := uc.engine.ApplyInTx(movRepo, productRepo, ledger.MovementInput{
				ProductID:   item.ProductID,
				Type:        entity.MovementTypeIN,
				Quantity:    item.Quantity,
				Reason:      "Compra",
				ActorID:     userID,
				ReferenceID: purchaseID,
			}); err != nil {
				return err
			}
		}

		// Toda compra deriva uma conta a pagar ao fornecedor
		dueDate := now.AddDate(0, 0, 30)
		if in.DueDate != nil {
			dueDate = *in.DueDate
		}
		entry := &finance.Entry{
			ID:          uuid.New().String(),
			Kind:        finance.KindPayable,
			Description: "Compra NF " + in.InvoiceNumber,
			Amount:      total,
			DueDate:     dueDate,
			Status:      finance.StatusPending,
			PartnerID:   in.PartnerID,
			PurchaseID:  purchaseID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return financeRepo.Create(entry)
	})
	if err != nil {
		purchase.Items = nil
		return nil, err
	}

	return toPurchaseResponse(purchase), nil
}

// GetPurchase devolve a compra com seus itens.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.GetItemsByPurchaseID(id)
	if err != nil {
		return nil, err
	}
	purchase.Items = items
	return toPurchaseResponse(purchase), nil
}

// ListPurchases lista compras paginadas (sem itens).
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, limit, offset int) (*dto.PurchaseListResponse, error) {
	list, err := uc.purchaseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseListResponse{
		Purchases: make([]dto.PurchaseResponse, 0, len(list)),
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range list {
		out.Purchases = append(out.Purchases, *toPurchaseResponse(p))
	}
	return out, nil
}

// CancelPurchase estorna uma compra COMPLETED: um movimento OUT por item
// (falha com ErrInsufficientStock se o estoque já foi consumido) e
// cancelamento da conta a pagar pendente, na mesma transação. O flip de
// status condicional abre a transação e serializa estornos concorrentes na
// linha da compra; o segundo recebe ErrConflict.
func (uc *PurchaseUseCase) CancelPurchase(ctx context.Context, purchaseID, actorID string) error {
	purchase, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}
	if purchase.Status != entity.PurchaseStatusCompleted {
		return domain.ErrConflict
	}
	items, err := uc.purchaseRepo.GetItemsByPurchaseID(purchaseID)
	if err != nil {
		return err
	}

	return uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
		financeRepo repository.FinanceRepository,
	) error {
		if err := purchaseRepo.UpdateStatus(purchaseID, entity.PurchaseStatusCompleted, entity.PurchaseStatusCancelled); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := uc.engine.ApplyInTx(movRepo, productRepo, ledger.MovementInput{
				ProductID:   item.ProductID,
				Type:        entity.MovementTypeOUT,
				Quantity:    item.Quantity,
				Reason:      "Cancelamento de compra",
				ActorID:     actorID,
				ReferenceID: purchaseID,
			}); err != nil {
				return err
			}
		}
		entry, err := financeRepo.GetByPurchaseID(purchaseID)
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

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:            p.ID,
		PartnerID:     p.PartnerID,
		InvoiceNumber: p.InvoiceNumber,
		InvoiceSeries: p.InvoiceSeries,
		IssueDate:     p.IssueDate,
		Total:         p.Total,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		Items:         make([]dto.PurchaseItemResponse, 0, len(p.Items)),
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return resp
}
