package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origem da mercadoria (tabela do ICMS): 0 = nacional, 1 = importação direta, 2 = adquirida no mercado interno.
const (
	OriginNacional         = 0
	OriginImportacaoDireta = 1
	OriginMercadoInterno   = 2
)

// Product representa um produto/SKU do catálogo.
// Stock é mutado exclusivamente pelo motor de estoque (ledger) via movimentos;
// nenhum serviço de documento escreve Stock diretamente.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Stock       int64           // quantidade atual, nunca negativa
	Price       decimal.Decimal // preço de venda
	CostPrice   decimal.Decimal // preço de custo
	NCM         string          // Nomenclatura Comum do Mercosul, 8 dígitos
	CFOP        string          // Código Fiscal de Operações e Prestações, 4 dígitos
	ICMSRate    decimal.Decimal // alíquota de ICMS (ex: 0.18)
	Origin      int             // origem da mercadoria (tabela ICMS)
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
