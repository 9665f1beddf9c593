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

var _ repository.FiscalInvoiceRepository = (*FiscalInvoiceRepo)(nil)

const invoiceColumns = "id, sale_id, number, series, access_key, xml, status, issued_at, created_at, updated_at"

// FiscalInvoiceRepo implementação de FiscalInvoiceRepository sobre PostgreSQL.
type FiscalInvoiceRepo struct {
	q Querier
}

// NewFiscalInvoiceRepository constrói o adaptador de notas fiscais. Passar pool ou tx (Querier).
func NewFiscalInvoiceRepository(q Querier) *FiscalInvoiceRepo {
	return &FiscalInvoiceRepo{q: q}
}

// Create persiste uma nota. Chave de acesso duplicada devolve ErrDuplicate.
func (r *FiscalInvoiceRepo) Create(invoice *entity.FiscalInvoice) error {
	query := `
		INSERT INTO fiscal_invoices (id, sale_id, number, series, access_key, xml, status, issued_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.SaleID, invoice.Number, invoice.Series, invoice.AccessKey,
		invoice.XML, invoice.Status, invoice.IssuedAt, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fiscal invoice: %w", err)
	}
	return nil
}

// GetByID obtém uma nota por ID.
func (r *FiscalInvoiceRepo) GetByID(id string) (*entity.FiscalInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM fiscal_invoices WHERE id = $1`
	return r.scanOne(query, id, "get fiscal invoice")
}

// GetBySaleID obtém a nota mais recente de uma venda.
func (r *FiscalInvoiceRepo) GetBySaleID(saleID string) (*entity.FiscalInvoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM fiscal_invoices
		WHERE sale_id = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(query, saleID, "get fiscal invoice by sale")
}

// Update grava status, IssuedAt e XML.
func (r *FiscalInvoiceRepo) Update(invoice *entity.FiscalInvoice) error {
	query := `
		UPDATE fiscal_invoices SET status = $2, issued_at = $3, xml = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Status, invoice.IssuedAt, invoice.XML, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fiscal invoice: %w", err)
	}
	return nil
}

// NextNumber devolve o próximo número sequencial da série (MAX+1), consultado
// no pool antes da gravação; emissões concorrentes que leem o mesmo número
// esbarram na constraint UNIQUE (series, number).
func (r *FiscalInvoiceRepo) NextNumber(series string) (int64, error) {
	var next int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(number), 0) + 1 FROM fiscal_invoices WHERE series = $1`,
		series,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return next, nil
}

// List lista notas com paginação (sem o XML, que pode ser grande).
func (r *FiscalInvoiceRepo) List(limit, offset int) ([]*entity.FiscalInvoice, error) {
	query := `
		SELECT id, sale_id, number, series, access_key, '', status, issued_at, created_at, updated_at
		FROM fiscal_invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fiscal invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.FiscalInvoice
	for rows.Next() {
		var inv entity.FiscalInvoice
		if err := rows.Scan(&inv.ID, &inv.SaleID, &inv.Number, &inv.Series, &inv.AccessKey,
			&inv.XML, &inv.Status, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fiscal invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *FiscalInvoiceRepo) scanOne(query, arg, op string) (*entity.FiscalInvoice, error) {
	var inv entity.FiscalInvoice
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&inv.ID, &inv.SaleID, &inv.Number, &inv.Series, &inv.AccessKey, &inv.XML,
		&inv.Status, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &inv, nil
}
