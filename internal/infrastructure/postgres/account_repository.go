package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementação de AccountRepository sobre PostgreSQL (usável com pool ou tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository constrói o adaptador do plano de contas. Passar pool ou tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste uma conta. Code duplicado devolve ErrDuplicate.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, code, name, type, parent_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Code, account.Name, account.Type,
		nullable(account.ParentID), account.Active, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtém uma conta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	query := `
		SELECT id, code, name, type, parent_id, active, created_at, updated_at
		FROM accounts WHERE id = $1`
	return r.scanOne(query, id, "get account")
}

// GetByCode obtém uma conta pelo código.
func (r *AccountRepo) GetByCode(code string) (*entity.Account, error) {
	query := `
		SELECT id, code, name, type, parent_id, active, created_at, updated_at
		FROM accounts WHERE code = $1`
	return r.scanOne(query, code, "get account by code")
}

// Update atualiza nome e status.
func (r *AccountRepo) Update(account *entity.Account) error {
	query := `
		UPDATE accounts SET name = $2, active = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Name, account.Active, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// List lista o plano de contas ordenado pelo código.
func (r *AccountRepo) List(limit, offset int) ([]*entity.Account, error) {
	query := `
		SELECT id, code, name, type, parent_id, active, created_at, updated_at
		FROM accounts ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		var parentID *string
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &parentID,
			&a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if parentID != nil {
			a.ParentID = *parentID
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete remove uma conta. Conta com lançamentos ou filhas devolve ErrConflict (FK).
func (r *AccountRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (r *AccountRepo) scanOne(query, arg, op string) (*entity.Account, error) {
	var a entity.Account
	var parentID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.Code, &a.Name, &a.Type, &parentID, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if parentID != nil {
		a.ParentID = *parentID
	}
	return &a, nil
}
