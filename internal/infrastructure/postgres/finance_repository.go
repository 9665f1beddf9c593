package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaolivre/erp-api/internal/domain/finance"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

var _ repository.FinanceRepository = (*FinanceRepo)(nil)

const financeColumns = "id, kind, description, amount, due_date, status, partner_id, sale_id, purchase_id, paid_amount, payment_method, paid_at, created_at, updated_at"

// FinanceRepo implementação de FinanceRepository sobre PostgreSQL (usável com pool ou tx).
// O status persistido nunca é OVERDUE: a derivação por vencimento fica na aplicação.
type FinanceRepo struct {
	q Querier
}

// NewFinanceRepository constrói o adaptador financeiro. Passar pool ou tx (Querier).
func NewFinanceRepository(q Querier) *FinanceRepo {
	return &FinanceRepo{q: q}
}

// Create persiste uma conta a pagar/receber.
func (r *FinanceRepo) Create(entry *finance.Entry) error {
	query := `
		INSERT INTO finance_entries (id, kind, description, amount, due_date, status, partner_id, sale_id, purchase_id, paid_amount, payment_method, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Kind, entry.Description, entry.Amount, entry.DueDate, entry.Status,
		nullable(entry.PartnerID), nullable(entry.SaleID), nullable(entry.PurchaseID),
		entry.PaidAmount, nullable(entry.PaymentMethod), entry.PaidAt,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert finance entry: %w", err)
	}
	return nil
}

// GetByID obtém uma conta por ID.
func (r *FinanceRepo) GetByID(id string) (*finance.Entry, error) {
	query := `SELECT ` + financeColumns + ` FROM finance_entries WHERE id = $1`
	return r.scanOne(query, id, "get finance entry")
}

// GetByIDForUpdate obtém a conta bloqueando a linha (SELECT FOR UPDATE).
// É o ponto de serialização da transição de status: dois pagamentos
// concorrentes da mesma conta enfileiram aqui, e o segundo vê PAID.
func (r *FinanceRepo) GetByIDForUpdate(id string) (*finance.Entry, error) {
	query := `SELECT ` + financeColumns + ` FROM finance_entries WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id, "get finance entry for update")
}

// Update grava status e sub-registro de pagamento.
func (r *FinanceRepo) Update(entry *finance.Entry) error {
	query := `
		UPDATE finance_entries SET status = $2, paid_amount = $3, payment_method = $4, paid_at = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Status, entry.PaidAmount, nullable(entry.PaymentMethod), entry.PaidAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update finance entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update finance entry: conta %s não encontrada", entry.ID)
	}
	return nil
}

// GetBySaleID obtém a conta derivada de uma venda.
func (r *FinanceRepo) GetBySaleID(saleID string) (*finance.Entry, error) {
	query := `SELECT ` + financeColumns + ` FROM finance_entries WHERE sale_id = $1`
	return r.scanOne(query, saleID, "get finance entry by sale")
}

// GetByPurchaseID obtém a conta derivada de uma compra.
func (r *FinanceRepo) GetByPurchaseID(purchaseID string) (*finance.Entry, error) {
	query := `SELECT ` + financeColumns + ` FROM finance_entries WHERE purchase_id = $1`
	return r.scanOne(query, purchaseID, "get finance entry by purchase")
}

// ListByKind lista contas de um tipo, com filtro opcional de status. OVERDUE
// e PENDING são traduzidos para o vencimento aqui, antes do LIMIT/OFFSET:
// páginas filtradas não podem voltar incompletas.
func (r *FinanceRepo) ListByKind(kind finance.Kind, status string, limit, offset int) ([]*finance.Entry, error) {
	query := `SELECT ` + financeColumns + ` FROM finance_entries WHERE kind = $1`
	args := []any{kind}
	pos := 2
	switch status {
	case "":
	case string(finance.StatusOverdue):
		query += " AND status = 'PENDING' AND due_date < now()"
	case string(finance.StatusPending):
		query += " AND status = 'PENDING' AND due_date >= now()"
	default:
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY due_date LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list finance entries: %w", err)
	}
	defer rows.Close()
	var list []*finance.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *FinanceRepo) scanOne(query, arg, op string) (*finance.Entry, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func scanEntry(row pgx.Row) (*finance.Entry, error) {
	var e finance.Entry
	var partnerID, saleID, purchaseID, paymentMethod *string
	err := row.Scan(
		&e.ID, &e.Kind, &e.Description, &e.Amount, &e.DueDate, &e.Status,
		&partnerID, &saleID, &purchaseID, &e.PaidAmount, &paymentMethod, &e.PaidAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if partnerID != nil {
		e.PartnerID = *partnerID
	}
	if saleID != nil {
		e.SaleID = *saleID
	}
	if purchaseID != nil {
		e.PurchaseID = *purchaseID
	}
	if paymentMethod != nil {
		e.PaymentMethod = *paymentMethod
	}
	return &e, nil
}

// nullable converte string vazia em NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
