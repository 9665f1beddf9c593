package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// TransactionUseCase lançamentos financeiros avulsos no plano de contas.
type TransactionUseCase struct {
	txnRepo     repository.TransactionRepository
	accountRepo repository.AccountRepository
}

// NewTransactionUseCase constrói o caso de uso.
func NewTransactionUseCase(txnRepo repository.TransactionRepository, accountRepo repository.AccountRepository) *TransactionUseCase {
	return &TransactionUseCase{txnRepo: txnRepo, accountRepo: accountRepo}
}

// CreateTransaction cria um lançamento vinculado a uma conta ativa.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	account, err := uc.accountRepo.GetByID(in.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	if !account.Active {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	txn := &entity.FinancialTransaction{
		ID:          uuid.New().String(),
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		AccountID:   in.AccountID,
		Date:        date,
		UserID:      userID,
		Notes:       in.Notes,
		CreatedAt:   now,
	}
	if err := uc.txnRepo.Create(txn); err != nil {
		return nil, err
	}
	return toTransactionResponse(txn), nil
}

// GetTransaction busca por ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	txn, err := uc.txnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionResponse(txn), nil
}

// ListTransactions lista lançamentos, com filtro opcional por conta e período.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, accountID string, from, to *time.Time, limit, offset int) (*dto.TransactionListResponse, error) {
	var (
		txns []*entity.FinancialTransaction
		err  error
	)
	if accountID != "" {
		txns, err = uc.txnRepo.ListByAccount(accountID, from, to, limit, offset)
	} else {
		txns, err = uc.txnRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := &dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
		Page:         dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, t := range txns {
		out.Transactions = append(out.Transactions, *toTransactionResponse(t))
	}
	return out, nil
}

func toTransactionResponse(t *entity.FinancialTransaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		AccountID:   t.AccountID,
		Date:        t.Date,
		UserID:      t.UserID,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}
