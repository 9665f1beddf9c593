package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lançamento financeiro.
const (
	TransactionTypeIncome  = "INCOME"
	TransactionTypeExpense = "EXPENSE"
)

// FinancialTransaction é um lançamento financeiro avulso vinculado a uma conta
// do plano de contas. Não há partidas dobradas (fora de escopo).
type FinancialTransaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Type        string
	AccountID   string
	Date        time.Time
	UserID      string
	Notes       string
	CreatedAt   time.Time
}
