package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de uma compra.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusCompleted = "COMPLETED"
	PurchaseStatusCancelled = "CANCELLED"
)

// Purchase é o cabeçalho de uma compra de fornecedor.
type Purchase struct {
	ID            string
	PartnerID     string // fornecedor
	InvoiceNumber string // número da nota do fornecedor
	InvoiceSeries string
	IssueDate     time.Time
	Total         decimal.Decimal
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []*PurchaseItem
}

// PurchaseItem é uma linha da compra. Total = Quantity × UnitPrice.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
}
