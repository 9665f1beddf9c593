package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementação de TransactionRepository sobre PostgreSQL (usável com pool ou tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository constrói o adaptador de lançamentos. Passar pool ou tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste um lançamento financeiro.
func (r *TransactionRepo) Create(txn *entity.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (id, description, amount, type, account_id, date, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.Description, txn.Amount, txn.Type, txn.AccountID,
		txn.Date, txn.UserID, txn.Notes, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtém um lançamento por ID.
func (r *TransactionRepo) GetByID(id string) (*entity.FinancialTransaction, error) {
	query := `
		SELECT id, description, amount, type, account_id, date, user_id, notes, created_at
		FROM financial_transactions WHERE id = $1`
	var t entity.FinancialTransaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Description, &t.Amount, &t.Type, &t.AccountID, &t.Date, &t.UserID, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListByAccount lista lançamentos de uma conta em um intervalo de datas.
func (r *TransactionRepo) ListByAccount(accountID string, from, to *time.Time, limit, offset int) ([]*entity.FinancialTransaction, error) {
	query := `
		SELECT id, description, amount, type, account_id, date, user_id, notes, created_at
		FROM financial_transactions WHERE account_id = $1`
	args := []any{accountID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by account: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// List lista lançamentos com paginação.
func (r *TransactionRepo) List(limit, offset int) ([]*entity.FinancialTransaction, error) {
	query := `
		SELECT id, description, amount, type, account_id, date, user_id, notes, created_at
		FROM financial_transactions ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]*entity.FinancialTransaction, error) {
	var list []*entity.FinancialTransaction
	for rows.Next() {
		var t entity.FinancialTransaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.Type, &t.AccountID,
			&t.Date, &t.UserID, &t.Notes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
