package financeops

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/finance"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// Service operações sobre contas a pagar e a receber: lançamento manual,
// registro de pagamento e cancelamento. O status devolvido é sempre o efetivo
// (PENDING vencida aparece como OVERDUE).
type Service struct {
	txRunner    FinanceTxRunner
	financeRepo repository.FinanceRepository
}

// NewService constrói o serviço financeiro.
func NewService(txRunner FinanceTxRunner, financeRepo repository.FinanceRepository) *Service {
	return &Service{txRunner: txRunner, financeRepo: financeRepo}
}

// CreateManualEntry lança uma conta a pagar/receber sem documento de origem
// (aluguel, tarifa bancária, serviço avulso).
func (s *Service) CreateManualEntry(ctx context.Context, kind finance.Kind, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if kind != finance.KindPayable && kind != finance.KindReceivable {
		return nil, domain.ErrInvalidInput
	}
	if in.Description == "" || !in.Amount.GreaterThan(decimal.Zero) || in.DueDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	entry := &finance.Entry{
		ID:          uuid.New().String(),
		Kind:        kind,
		Description: in.Description,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Status:      finance.StatusPending,
		PartnerID:   in.PartnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.financeRepo.Create(entry); err != nil {
		return nil, err
	}
	return toEntryResponse(entry, now), nil
}

// RegisterPayment registra o pagamento de uma conta, transicionando para PAID
// sob bloqueio de linha. Idempotência: a conta já PAID devolve ErrAlreadyPaid
// sem alterar o sub-registro de pagamento; CANCELLED devolve ErrConflict.
func (s *Service) RegisterPayment(ctx context.Context, kind finance.Kind, entryID string, in dto.RegisterPaymentRequest) (*dto.EntryResponse, error) {
	if !in.PaidAmount.GreaterThan(decimal.Zero) || in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	paidAt := time.Now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	var updated *finance.Entry
	err := s.txRunner.RunFinance(ctx, func(financeRepo repository.FinanceRepository) error {
		entry, err := financeRepo.GetByIDForUpdate(entryID)
		if err != nil {
			return err
		}
		if entry == nil || entry.Kind != kind {
			return domain.ErrNotFound
		}
		switch entry.Status {
		case finance.StatusPaid:
			return domain.ErrAlreadyPaid
		case finance.StatusCancelled:
			return domain.ErrConflict
		}
		if err := entry.RegisterPayment(in.PaidAmount, in.PaymentMethod, paidAt); err != nil {
			return domain.ErrConflict
		}
		if err := financeRepo.Update(entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(updated, time.Now()), nil
}

// CancelEntry cancela uma conta pendente. Conta paga devolve ErrConflict.
func (s *Service) CancelEntry(ctx context.Context, kind finance.Kind, entryID string) (*dto.EntryResponse, error) {
	var updated *finance.Entry
	err := s.txRunner.RunFinance(ctx, func(financeRepo repository.FinanceRepository) error {
		entry, err := financeRepo.GetByIDForUpdate(entryID)
		if err != nil {
			return err
		}
		if entry == nil || entry.Kind != kind {
			return domain.ErrNotFound
		}
		switch entry.Status {
		case finance.StatusPaid, finance.StatusCancelled:
			return domain.ErrConflict
		}
		if err := entry.Transition(finance.StatusCancelled, time.Now()); err != nil {
			return domain.ErrConflict
		}
		if err := financeRepo.Update(entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(updated, time.Now()), nil
}

// GetEntry devolve a conta com status efetivo.
func (s *Service) GetEntry(ctx context.Context, kind finance.Kind, entryID string) (*dto.EntryResponse, error) {
	entry, err := s.financeRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.Kind != kind {
		return nil, domain.ErrNotFound
	}
	return toEntryResponse(entry, time.Now()), nil
}

// ListEntries lista contas de um tipo, com filtro opcional de status.
// OVERDUE nunca é persistido: o repositório resolve o filtro pelo vencimento
// antes da paginação, e a resposta sai com o status efetivo.
func (s *Service) ListEntries(ctx context.Context, kind finance.Kind, status string, limit, offset int) (*dto.EntryListResponse, error) {
	now := time.Now()
	entries, err := s.financeRepo.ListByKind(kind, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.EntryListResponse{
		Entries: make([]dto.EntryResponse, 0, len(entries)),
		Page:    dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, *toEntryResponse(e, now))
	}
	return out, nil
}

func toEntryResponse(e *finance.Entry, now time.Time) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:            e.ID,
		Kind:          string(e.Kind),
		Description:   e.Description,
		Amount:        e.Amount,
		DueDate:       e.DueDate,
		Status:        string(e.EffectiveStatus(now)),
		PartnerID:     e.PartnerID,
		SaleID:        e.SaleID,
		PurchaseID:    e.PurchaseID,
		PaidAmount:    e.PaidAmount,
		PaymentMethod: e.PaymentMethod,
		PaidAt:        e.PaidAt,
		CreatedAt:     e.CreatedAt,
	}
}
