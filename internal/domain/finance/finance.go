// Package finance modela contas a pagar e a receber com uma máquina de estados
// explícita. OVERDUE é um status derivado (comparação de DueDate com o relógio
// no momento da leitura), nunca persistido; no banco a conta permanece PENDING.
package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status de uma conta a pagar/receber.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusOverdue   Status = "OVERDUE" // derivado na leitura, não persistido
	StatusCancelled Status = "CANCELLED"
)

// Kind distingue contas a pagar de contas a receber.
type Kind string

const (
	KindPayable    Kind = "PAYABLE"
	KindReceivable Kind = "RECEIVABLE"
)

// transitions lista as transições permitidas. PAID e CANCELLED são terminais.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusOverdue: {StatusPaid, StatusCancelled},
}

// CanTransition informa se a mudança from -> to é permitida.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Entry é uma obrigação monetária derivada de uma compra (a pagar) ou de uma
// venda (a receber), ou lançada manualmente. O sub-registro de pagamento
// (PaidAmount, PaymentMethod, PaidAt) é escrito uma única vez, na transição
// para PAID.
type Entry struct {
	ID            string
	Kind          Kind
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time
	Status        Status // status persistido: PENDING, PAID ou CANCELLED
	PartnerID     string
	SaleID        string // referência opcional ao documento de origem
	PurchaseID    string
	PaidAmount    decimal.Decimal
	PaymentMethod string
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveStatus devolve o status visível: PENDING vencida vira OVERDUE.
func (e *Entry) EffectiveStatus(now time.Time) Status {
	if e.Status == StatusPending && e.DueDate.Before(now) {
		return StatusOverdue
	}
	return e.Status
}

// Transition aplica a mudança de status validando a máquina de estados.
// O status de origem considerado é o efetivo (PENDING vencida conta como OVERDUE).
func (e *Entry) Transition(to Status, now time.Time) error {
	from := e.EffectiveStatus(now)
	if !CanTransition(from, to) {
		return fmt.Errorf("finance: transição inválida %s -> %s", from, to)
	}
	e.Status = to
	e.UpdatedAt = now
	return nil
}

// RegisterPayment transiciona para PAID gravando o sub-registro de pagamento.
func (e *Entry) RegisterPayment(paidAmount decimal.Decimal, paymentMethod string, paidAt time.Time) error {
	if err := e.Transition(StatusPaid, paidAt); err != nil {
		return err
	}
	e.PaidAmount = paidAmount
	e.PaymentMethod = paymentMethod
	e.PaidAt = &paidAt
	return nil
}
