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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementação de PurchaseRepository sobre PostgreSQL (usável com pool ou tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository constrói o adaptador de compras. Passar pool ou tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste o cabeçalho da compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, partner_id, invoice_number, invoice_series, issue_date, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.PartnerID, purchase.InvoiceNumber, purchase.InvoiceSeries,
		purchase.IssueDate, purchase.Total, purchase.Status, purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert purchase: nota %s já registrada: %w", purchase.InvoiceNumber, err)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha da compra.
func (r *PurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PurchaseID, item.ProductID, item.Quantity, item.UnitPrice, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// GetByID obtém o cabeçalho da compra (sem itens).
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, partner_id, invoice_number, invoice_series, issue_date, total, status, created_at, updated_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.PartnerID, &p.InvoiceNumber, &p.InvoiceSeries, &p.IssueDate,
		&p.Total, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// GetItemsByPurchaseID lista os itens de uma compra.
func (r *PurchaseRepo) GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, product_id, quantity, unit_price, total
		FROM purchase_items WHERE purchase_id = $1`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var items []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus muda o status da compra condicionado ao status atual. Zero
// linhas afetadas significa que outra transação mudou o status antes.
func (r *PurchaseRepo) UpdateStatus(id, from, to string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List lista compras com paginação (sem itens).
func (r *PurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, partner_id, invoice_number, invoice_series, issue_date, total, status, created_at, updated_at
		FROM purchases ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.PartnerID, &p.InvoiceNumber, &p.InvoiceSeries, &p.IssueDate,
			&p.Total, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
