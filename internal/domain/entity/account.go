package entity

import "time"

// Tipos de conta do plano de contas.
const (
	AccountTypeAsset     = "ASSET"
	AccountTypeLiability = "LIABILITY"
	AccountTypeEquity    = "EQUITY"
	AccountTypeRevenue   = "REVENUE"
	AccountTypeExpense   = "EXPENSE"
)

// Account é uma conta do plano de contas. Code é único; ParentID permite hierarquia.
type Account struct {
	ID        string
	Code      string // ex: "1.1.01"
	Name      string
	Type      string
	ParentID  string // vazio para contas raiz
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
