package fiscal

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceDocument dados consolidados da nota para geração de XML e DANFE.
type InvoiceDocument struct {
	AccessKey string
	Number    int64
	Series    string
	IssuedAt  time.Time

	EmitterCNPJ string
	EmitterName string
	EmitterUF   string

	CustomerName     string
	CustomerDocument string

	PaymentMethod string
	Total         decimal.Decimal
	Items         []InvoiceItem
}

// InvoiceItem linha da nota com os campos fiscais do produto.
type InvoiceItem struct {
	SKU       string
	Name      string
	NCM       string
	CFOP      string
	Origin    int
	ICMSRate  decimal.Decimal
	Quantity  int64
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// XMLBuilder monta o XML da NF-e (modelo 55, sem assinatura).
type XMLBuilder interface {
	Build(doc InvoiceDocument) (string, error)
}

// DANFEGenerator gera a representação em PDF da nota (estilo DANFE simplificado).
type DANFEGenerator interface {
	Generate(doc InvoiceDocument) ([]byte, error)
}
