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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação de SaleRepository sobre PostgreSQL (usável com pool ou tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de vendas. Passar pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste o cabeçalho da venda.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, user_id, partner_id, payment_method, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	partnerID := (*string)(nil)
	if sale.PartnerID != "" {
		partnerID = &sale.PartnerID
	}
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.UserID, partnerID, sale.PaymentMethod, sale.Total,
		sale.Status, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha da venda.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtém o cabeçalho da venda (sem itens).
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, user_id, partner_id, payment_method, total, status, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	var partnerID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.UserID, &partnerID, &s.PaymentMethod, &s.Total, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if partnerID != nil {
		s.PartnerID = *partnerID
	}
	return &s, nil
}

// GetItemsBySaleID lista os itens de uma venda.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, total
		FROM sale_items WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus muda o status da venda condicionado ao status atual. Zero
// linhas afetadas significa que outra transação mudou o status antes.
func (r *SaleRepo) UpdateStatus(id, from, to string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List lista vendas com paginação (sem itens).
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, user_id, partner_id, payment_method, total, status, created_at, updated_at
		FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var partnerID *string
		if err := rows.Scan(&s.ID, &s.UserID, &partnerID, &s.PaymentMethod, &s.Total,
			&s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if partnerID != nil {
			s.PartnerID = *partnerID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
