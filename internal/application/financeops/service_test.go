package financeops_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/financeops"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/finance"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeFinanceRepo struct {
	entries map[string]*finance.Entry
}

func newFakeFinanceRepo(entries ...*finance.Entry) *fakeFinanceRepo {
	r := &fakeFinanceRepo{entries: make(map[string]*finance.Entry)}
	for _, e := range entries {
		cp := *e
		r.entries[e.ID] = &cp
	}
	return r
}

func (r *fakeFinanceRepo) Create(e *finance.Entry) error {
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakeFinanceRepo) GetByID(id string) (*finance.Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeFinanceRepo) GetByIDForUpdate(id string) (*finance.Entry, error) {
	return r.GetByID(id)
}

func (r *fakeFinanceRepo) Update(e *finance.Entry) error {
	if _, ok := r.entries[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakeFinanceRepo) GetBySaleID(saleID string) (*finance.Entry, error) { return nil, nil }

func (r *fakeFinanceRepo) GetByPurchaseID(purchaseID string) (*finance.Entry, error) {
	return nil, nil
}

// ListByKind reproduz o contrato do repositório real: OVERDUE e PENDING são
// resolvidos pelo vencimento antes de ordenar e paginar.
func (r *fakeFinanceRepo) ListByKind(kind finance.Kind, status string, limit, offset int) ([]*finance.Entry, error) {
	now := time.Now()
	var out []*finance.Entry
	for _, e := range r.entries {
		if e.Kind != kind {
			continue
		}
		switch status {
		case "":
		case string(finance.StatusOverdue):
			if e.Status != finance.StatusPending || !e.DueDate.Before(now) {
				continue
			}
		case string(finance.StatusPending):
			if e.Status != finance.StatusPending || e.DueDate.Before(now) {
				continue
			}
		default:
			if string(e.Status) != status {
				continue
			}
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeFinanceTxRunner struct {
	repo *fakeFinanceRepo
}

func (r *fakeFinanceTxRunner) RunFinance(ctx context.Context, fn func(financeRepo repository.FinanceRepository) error) error {
	snap := make(map[string]*finance.Entry, len(r.repo.entries))
	for id, e := range r.repo.entries {
		cp := *e
		snap[id] = &cp
	}
	if err := fn(r.repo); err != nil {
		r.repo.entries = snap
		return err
	}
	return nil
}

const entryID = "00000000-0000-0000-0000-0000000000f1"

func pendingEntry(kind finance.Kind, due time.Time) *finance.Entry {
	now := time.Now()
	return &finance.Entry{
		ID:          entryID,
		Kind:        kind,
		Description: "Aluguel do galpão",
		Amount:      decimal.NewFromInt(1200),
		DueDate:     due,
		Status:      finance.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func buildService(entries ...*finance.Entry) (*financeops.Service, *fakeFinanceRepo) {
	repo := newFakeFinanceRepo(entries...)
	svc := financeops.NewService(&fakeFinanceTxRunner{repo: repo}, repo)
	return svc, repo
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterPayment
// ──────────────────────────────────────────────────────────────────────────────

// Conta pendente: pagamento transiciona para PAID e grava o sub-registro.
func TestRegisterPayment_PendenteVaiParaPaga(t *testing.T) {
	svc, repo := buildService(pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, 10)))

	resp, err := svc.RegisterPayment(context.Background(), finance.KindPayable, entryID, dto.RegisterPaymentRequest{
		PaidAmount:    decimal.NewFromInt(1200),
		PaymentMethod: entity.PaymentPix,
	})
	require.NoError(t, err)
	assert.Equal(t, string(finance.StatusPaid), resp.Status)
	assert.True(t, resp.PaidAmount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, entity.PaymentPix, resp.PaymentMethod)
	require.NotNil(t, resp.PaidAt)

	stored, _ := repo.GetByID(entryID)
	assert.Equal(t, finance.StatusPaid, stored.Status)
}

// Conta vencida (OVERDUE derivado) também aceita pagamento.
func TestRegisterPayment_VencidaAceitaPagamento(t *testing.T) {
	svc, _ := buildService(pendingEntry(finance.KindReceivable, time.Now().AddDate(0, 0, -5)))

	resp, err := svc.RegisterPayment(context.Background(), finance.KindReceivable, entryID, dto.RegisterPaymentRequest{
		PaidAmount:    decimal.NewFromInt(1250), // principal + juros
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, string(finance.StatusPaid), resp.Status)
}

// Idempotência: o segundo pagamento devolve ErrAlreadyPaid e o sub-registro
// original permanece intacto.
func TestRegisterPayment_SegundaVezNaoAlteraRegistro(t *testing.T) {
	svc, repo := buildService(pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, 10)))

	first := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	_, err := svc.RegisterPayment(context.Background(), finance.KindPayable, entryID, dto.RegisterPaymentRequest{
		PaidAmount:    decimal.NewFromInt(1200),
		PaymentMethod: entity.PaymentPix,
		PaidAt:        &first,
	})
	require.NoError(t, err)

	_, err = svc.RegisterPayment(context.Background(), finance.KindPayable, entryID, dto.RegisterPaymentRequest{
		PaidAmount:    decimal.NewFromInt(999),
		PaymentMethod: entity.PaymentCash,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAlreadyPaid))

	stored, _ := repo.GetByID(entryID)
	assert.True(t, stored.PaidAmount.Equal(decimal.NewFromInt(1200)),
		"o valor pago original não pode ser sobrescrito")
	assert.Equal(t, entity.PaymentPix, stored.PaymentMethod)
	require.NotNil(t, stored.PaidAt)
	assert.True(t, stored.PaidAt.Equal(first))
}

// Conta cancelada não aceita pagamento.
func TestRegisterPayment_CanceladaConflito(t *testing.T) {
	e := pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, 10))
	e.Status = finance.StatusCancelled
	svc, _ := buildService(e)

	_, err := svc.RegisterPayment(context.Background(), finance.KindPayable, entryID, dto.RegisterPaymentRequest{
		PaidAmount:    decimal.NewFromInt(1200),
		PaymentMethod: entity.PaymentPix,
	})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// Pagar um payable pela rota de receivables: o kind não bate, 404.
func TestRegisterPayment_KindErradoNotFound(t *testing.T) {
	svc, _ := buildService(pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, 10)))

	_, err := svc.RegisterPayment(context.Background(), finance.KindReceivable, entryID, dto.RegisterPaymentRequest{
		PaidAmount:    decimal.NewFromInt(1200),
		PaymentMethod: entity.PaymentPix,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelEntry
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelEntry_PendenteCancelada(t *testing.T) {
	svc, repo := buildService(pendingEntry(finance.KindReceivable, time.Now().AddDate(0, 0, 10)))

	resp, err := svc.CancelEntry(context.Background(), finance.KindReceivable, entryID)
	require.NoError(t, err)
	assert.Equal(t, string(finance.StatusCancelled), resp.Status)

	stored, _ := repo.GetByID(entryID)
	assert.Equal(t, finance.StatusCancelled, stored.Status)
}

// Conta paga não pode ser cancelada (PAID é terminal).
func TestCancelEntry_PagaConflito(t *testing.T) {
	svc, _ := buildService(pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, 10)))

	_, err := svc.RegisterPayment(context.Background(), finance.KindPayable, entryID, dto.RegisterPaymentRequest{
		PaidAmount:    decimal.NewFromInt(1200),
		PaymentMethod: entity.PaymentPix,
	})
	require.NoError(t, err)

	_, err = svc.CancelEntry(context.Background(), finance.KindPayable, entryID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// ──────────────────────────────────────────────────────────────────────────────
// Listagem com status derivado
// ──────────────────────────────────────────────────────────────────────────────

// O filtro OVERDUE devolve apenas as pendentes vencidas, já com o status
// derivado na resposta.
func TestListEntries_FiltroOverdue(t *testing.T) {
	vencida := pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, -3))
	emDia := pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, 15))
	emDia.ID = "00000000-0000-0000-0000-0000000000f2"
	svc, _ := buildService(vencida, emDia)

	list, err := svc.ListEntries(context.Background(), finance.KindPayable, string(finance.StatusOverdue), 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Entries, 1, "só a conta vencida deve aparecer")
	assert.Equal(t, vencida.ID, list.Entries[0].ID)
	assert.Equal(t, string(finance.StatusOverdue), list.Entries[0].Status)
}

// Sem filtro, cada conta sai com o próprio status efetivo.
func TestListEntries_StatusEfetivoNaResposta(t *testing.T) {
	vencida := pendingEntry(finance.KindReceivable, time.Now().AddDate(0, 0, -1))
	emDia := pendingEntry(finance.KindReceivable, time.Now().AddDate(0, 0, 1))
	emDia.ID = "00000000-0000-0000-0000-0000000000f2"
	svc, _ := buildService(vencida, emDia)

	list, err := svc.ListEntries(context.Background(), finance.KindReceivable, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Entries, 2)

	byID := map[string]string{}
	for _, e := range list.Entries {
		byID[e.ID] = e.Status
	}
	assert.Equal(t, string(finance.StatusOverdue), byID[vencida.ID])
	assert.Equal(t, string(finance.StatusPending), byID[emDia.ID])
}

// O filtro derivado é resolvido antes do LIMIT/OFFSET: uma página de PENDING
// não volta vazia só porque as vencidas ordenam primeiro por vencimento, e o
// filtro OVERDUE pagina dentro do conjunto vencido.
func TestListEntries_FiltroDerivadoAntesDaPaginacao(t *testing.T) {
	vencida1 := pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, -10))
	vencida2 := pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, -5))
	vencida2.ID = "00000000-0000-0000-0000-0000000000f2"
	emDia := pendingEntry(finance.KindPayable, time.Now().AddDate(0, 0, 5))
	emDia.ID = "00000000-0000-0000-0000-0000000000f3"
	svc, _ := buildService(vencida1, vencida2, emDia)

	pendentes, err := svc.ListEntries(context.Background(), finance.KindPayable, string(finance.StatusPending), 2, 0)
	require.NoError(t, err)
	require.Len(t, pendentes.Entries, 1, "as vencidas não podem consumir a página de PENDING")
	assert.Equal(t, emDia.ID, pendentes.Entries[0].ID)

	pagina1, err := svc.ListEntries(context.Background(), finance.KindPayable, string(finance.StatusOverdue), 1, 0)
	require.NoError(t, err)
	require.Len(t, pagina1.Entries, 1)
	assert.Equal(t, vencida1.ID, pagina1.Entries[0].ID)

	pagina2, err := svc.ListEntries(context.Background(), finance.KindPayable, string(finance.StatusOverdue), 1, 1)
	require.NoError(t, err)
	require.Len(t, pagina2.Entries, 1, "o offset atua sobre o conjunto vencido, não sobre todas as PENDING")
	assert.Equal(t, vencida2.ID, pagina2.Entries[0].ID)
}
