package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// AccountUseCase CRUD do plano de contas.
type AccountUseCase struct {
	accountRepo repository.AccountRepository
}

// NewAccountUseCase constrói o caso de uso.
func NewAccountUseCase(accountRepo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// CreateAccount cria uma conta. Code duplicado devolve ErrDuplicate; ParentID
// inexistente devolve ErrNotFound.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.accountRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentID != "" {
		parent, err := uc.accountRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	account := &entity.Account{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Type:      in.Type,
		ParentID:  in.ParentID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetAccount busca por ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*dto.AccountResponse, error) {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return toAccountResponse(account), nil
}

// UpdateAccount atualiza nome e status. Code e Type são imutáveis.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		account.Name = in.Name
	}
	if in.Active != nil {
		account.Active = *in.Active
	}
	account.UpdatedAt = time.Now()

	if err := uc.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// ListAccounts lista o plano de contas.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, limit, offset int) (*dto.AccountListResponse, error) {
	accounts, err := uc.accountRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.AccountListResponse{
		Accounts: make([]dto.AccountResponse, 0, len(accounts)),
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, *toAccountResponse(a))
	}
	return out, nil
}

// DeleteAccount remove uma conta sem lançamentos nem filhas.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.ErrNotFound
	}
	return uc.accountRepo.Delete(id)
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      a.Type,
		ParentID:  a.ParentID,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
}
