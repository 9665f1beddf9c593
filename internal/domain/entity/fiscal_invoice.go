package entity

import "time"

// Status da nota fiscal.
const (
	FiscalStatusDraft      = "DRAFT"      // gerada, ainda não transmitida
	FiscalStatusAuthorized = "AUTHORIZED" // "transmitida" (transmissão real fora de escopo)
	FiscalStatusCancelled  = "CANCELLED"
	FiscalStatusError      = "ERROR"
)

// FiscalInvoice é o registro da nota fiscal emitida para uma venda.
// A transmissão é um stub: Transmit apenas muda o status e carimba IssuedAt.
type FiscalInvoice struct {
	ID        string
	SaleID    string
	Number    int64  // sequencial por série
	Series    string
	AccessKey string // chave de acesso, 44 dígitos
	XML       string // documento gerado (sem assinatura)
	Status    string
	IssuedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
