// Package pdf gera o DANFE simplificado (Documento Auxiliar da NF-e) em A4:
// cabeçalho com emitente e número/série, chave de acesso com código de barras
// implícito no QR, destinatário, tabela de itens e totais.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appfiscal "github.com/gestaolivre/erp-api/internal/application/fiscal"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// DANFEGenerator implementa fiscal.DANFEGenerator usando Maroto v2.
type DANFEGenerator struct{}

// NewDANFEGenerator constrói o gerador.
func NewDANFEGenerator() *DANFEGenerator { return &DANFEGenerator{} }

// Generate gera o PDF e devolve seus bytes.
func (g *DANFEGenerator) Generate(doc appfiscal.InvoiceDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("DANFE", true).
		WithAuthor(doc.EmitterName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(accessKeyRow(doc))
	m.AddRows(customerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(doc.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(qrRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// headerRow: razão social + CNPJ (esq) e número/série + data de emissão (dir).
func headerRow(doc appfiscal.InvoiceDocument) core.Row {
	numero := fmt.Sprintf("Nº %d  Série %s", doc.Number, doc.Series)
	data := doc.IssuedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(doc.EmitterName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+doc.EmitterCNPJ, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DANFE — NOTA FISCAL ELETRÔNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emissão: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// accessKeyRow: chave de acesso em grupos de 4 dígitos.
func accessKeyRow(doc appfiscal.InvoiceDocument) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("CHAVE DE ACESSO", props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
			}),
			text.New(groupDigits(doc.AccessKey, 4), props.Text{
				Size: 8, Top: 5, Color: colorGray,
			}),
		),
	)
}

// customerRow: dados do destinatário (ou consumidor não identificado).
func customerRow(doc appfiscal.InvoiceDocument) core.Row {
	name := doc.CustomerName
	document := doc.CustomerDocument
	if name == "" {
		name = "Consumidor não identificado"
		document = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DESTINATÁRIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   CPF/CNPJ: %s", name, document), props.Text{
				Size: 9, Top: 7,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de itens.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtde", 1, align.Center),
		h("Descrição", 4, align.Left),
		h("NCM", 2, align.Center),
		h("CFOP", 1, align.Center),
		h("Vlr. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: uma linha por item da nota.
func tableItemRows(items []appfiscal.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.NCM,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.CFOP,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"R$ "+it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"R$ "+it.Total.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: valor total da nota e forma de pagamento.
func totalsRow(doc appfiscal.InvoiceDocument) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("Forma de pagamento: "+doc.PaymentMethod, props.Text{
				Size: 9, Top: 4, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("VALOR TOTAL DA NOTA", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1, Right: 1,
			}),
			text.New("R$ "+doc.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 7, Right: 1,
			}),
		),
	)
}

// qrRow: QR com a chave de acesso para consulta no portal da NF-e.
func qrRow(doc appfiscal.InvoiceDocument) core.Row {
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(doc.AccessKey, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Consulte pela chave de acesso no portal nacional da NF-e:\nwww.nfe.fazenda.gov.br", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Documento auxiliar da\nNOTA FISCAL ELETRÔNICA", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 20,
				Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// groupDigits insere espaços a cada n dígitos (formato de impressão da chave).
func groupDigits(s string, n int) string {
	buf := make([]byte, 0, len(s)+len(s)/n)
	for i := 0; i < len(s); i++ {
		if i > 0 && i%n == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}
