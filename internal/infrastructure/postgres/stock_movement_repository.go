package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementação sobre PostgreSQL (usável com pool ou tx).
// A tabela é append-only: não há UPDATE nem DELETE aqui.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste um movimento de estoque.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, user_id, type, quantity, reason, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	referenceID := (*string)(nil)
	if movement.ReferenceID != "" {
		referenceID = &movement.ReferenceID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.UserID, movement.Type,
		movement.Quantity, movement.Reason, referenceID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtém um movimento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, user_id, type, quantity, reason, reference_id, created_at
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	var referenceID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity, &m.Reason, &referenceID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if referenceID != nil {
		m.ReferenceID = *referenceID
	}
	return &m, nil
}

// ListByProduct lista movimentos de um produto em um intervalo de datas.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, user_id, type, quantity, reason, reference_id, created_at
		FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByReference lista os movimentos gerados por um documento (venda/compra).
func (r *StockMovementRepo) ListByReference(referenceID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, user_id, type, quantity, reason, reference_id, created_at
		FROM stock_movements WHERE reference_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list by reference: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var referenceID *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.UserID, &m.Type, &m.Quantity,
			&m.Reason, &referenceID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if referenceID != nil {
			m.ReferenceID = *referenceID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
