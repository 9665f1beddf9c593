package finance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/erp-api/internal/domain/finance"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func entryWith(status finance.Status, due time.Time) *finance.Entry {
	return &finance.Entry{
		ID:          "f1",
		Kind:        finance.KindPayable,
		Description: "Energia elétrica",
		Amount:      decimal.NewFromInt(350),
		DueDate:     due,
		Status:      status,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Status efetivo
// ──────────────────────────────────────────────────────────────────────────────

func TestEffectiveStatus(t *testing.T) {
	cases := []struct {
		name   string
		status finance.Status
		due    time.Time
		want   finance.Status
	}{
		{"pendente em dia", finance.StatusPending, now.AddDate(0, 0, 5), finance.StatusPending},
		{"pendente vencida vira OVERDUE", finance.StatusPending, now.AddDate(0, 0, -1), finance.StatusOverdue},
		{"paga vencida continua PAID", finance.StatusPaid, now.AddDate(0, 0, -10), finance.StatusPaid},
		{"cancelada vencida continua CANCELLED", finance.StatusCancelled, now.AddDate(0, 0, -10), finance.StatusCancelled},
		{"vencendo exatamente agora ainda é PENDING", finance.StatusPending, now, finance.StatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := entryWith(tc.status, tc.due)
			assert.Equal(t, tc.want, e.EffectiveStatus(now))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to finance.Status
		want     bool
	}{
		{finance.StatusPending, finance.StatusPaid, true},
		{finance.StatusPending, finance.StatusCancelled, true},
		{finance.StatusOverdue, finance.StatusPaid, true},
		{finance.StatusOverdue, finance.StatusCancelled, true},
		{finance.StatusPaid, finance.StatusPending, false},
		{finance.StatusPaid, finance.StatusCancelled, false},
		{finance.StatusCancelled, finance.StatusPaid, false},
		{finance.StatusCancelled, finance.StatusPending, false},
		{finance.StatusPending, finance.StatusOverdue, false}, // OVERDUE é derivado, nunca destino
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, finance.CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

// Transition considera o status efetivo: uma PENDING vencida transiciona como OVERDUE.
func TestTransition_VencidaAindaTransiciona(t *testing.T) {
	e := entryWith(finance.StatusPending, now.AddDate(0, 0, -3))
	require.NoError(t, e.Transition(finance.StatusPaid, now))
	assert.Equal(t, finance.StatusPaid, e.Status)
	assert.Equal(t, now, e.UpdatedAt)
}

func TestTransition_TerminalFalha(t *testing.T) {
	e := entryWith(finance.StatusPaid, now.AddDate(0, 0, 5))
	err := e.Transition(finance.StatusCancelled, now)
	assert.Error(t, err, "PAID é terminal")
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de pagamento
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPayment_GravaSubRegistro(t *testing.T) {
	e := entryWith(finance.StatusPending, now.AddDate(0, 0, 5))
	paidAt := now.AddDate(0, 0, 1)

	require.NoError(t, e.RegisterPayment(decimal.NewFromInt(350), "PIX", paidAt))

	assert.Equal(t, finance.StatusPaid, e.Status)
	assert.True(t, e.PaidAmount.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, "PIX", e.PaymentMethod)
	require.NotNil(t, e.PaidAt)
	assert.Equal(t, paidAt, *e.PaidAt)
}

// O segundo RegisterPayment falha e não toca no sub-registro original.
func TestRegisterPayment_SegundaVezFalha(t *testing.T) {
	e := entryWith(finance.StatusPending, now.AddDate(0, 0, 5))
	first := now.AddDate(0, 0, 1)
	require.NoError(t, e.RegisterPayment(decimal.NewFromInt(350), "PIX", first))

	err := e.RegisterPayment(decimal.NewFromInt(999), "DINHEIRO", now.AddDate(0, 0, 2))
	require.Error(t, err)
	assert.True(t, e.PaidAmount.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, "PIX", e.PaymentMethod)
	assert.Equal(t, first, *e.PaidAt)
}

// Pagamento parcial ou com juros: o valor pago pode divergir do valor da conta.
func TestRegisterPayment_ValorDiferenteDoDevido(t *testing.T) {
	e := entryWith(finance.StatusPending, now.AddDate(0, 0, -2)) // vencida
	require.NoError(t, e.RegisterPayment(decimal.NewFromFloat(362.25), "CARTAO", now))
	assert.True(t, e.PaidAmount.Equal(decimal.NewFromFloat(362.25)))
}
