package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest body para POST /api/accounts (plano de contas).
type CreateAccountRequest struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID string `json:"parent_id"`
}

// UpdateAccountRequest body para PUT /api/accounts/:id.
type UpdateAccountRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active"`
}

// AccountResponse resposta de conta do plano de contas.
type AccountResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  string    `json:"parent_id,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountListResponse listagem do plano de contas.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Page     PageResponse      `json:"page"`
}

// CreateTransactionRequest body para POST /api/transactions.
type CreateTransactionRequest struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	AccountID   string          `json:"account_id" validate:"required"`
	Date        *time.Time      `json:"date"`
	Notes       string          `json:"notes"`
}

// TransactionResponse resposta de lançamento financeiro.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	AccountID   string          `json:"account_id"`
	Date        time.Time       `json:"date"`
	UserID      string          `json:"user_id"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionListResponse listagem de lançamentos.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         PageResponse          `json:"page"`
}
