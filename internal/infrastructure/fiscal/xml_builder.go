// Package fiscal implementa a geração de documentos fiscais: XML da NF-e via
// etree e DANFE simplificado em PDF (pacote irmão pdf).
package fiscal

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	appfiscal "github.com/gestaolivre/erp-api/internal/application/fiscal"
	pkgfiscal "github.com/gestaolivre/erp-api/pkg/fiscal"
)

// Namespace do layout da NF-e.
const nfeNamespace = "http://www.portalfiscal.inf.br/nfe"

var hundred = decimal.NewFromInt(100)

// NFeXMLBuilder monta o XML da NF-e modelo 55 (estrutura simplificada, sem
// assinatura digital).
type NFeXMLBuilder struct {
	environment string // "1" produção, "2" homologação
}

// NewNFeXMLBuilder constrói o gerador de XML.
func NewNFeXMLBuilder(environment string) *NFeXMLBuilder {
	if environment != "1" && environment != "2" {
		environment = "2"
	}
	return &NFeXMLBuilder{environment: environment}
}

// Build gera o documento XML da nota.
func (b *NFeXMLBuilder) Build(doc appfiscal.InvoiceDocument) (string, error) {
	if err := pkgfiscal.ValidateAccessKey(doc.AccessKey); err != nil {
		return "", err
	}
	if len(doc.Items) == 0 {
		return "", fmt.Errorf("fiscal: nota sem itens")
	}

	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	nfe := xml.CreateElement("NFe")
	nfe.CreateAttr("xmlns", nfeNamespace)

	infNFe := nfe.CreateElement("infNFe")
	infNFe.CreateAttr("Id", "NFe"+doc.AccessKey)
	infNFe.CreateAttr("versao", "4.00")

	ide := infNFe.CreateElement("ide")
	ide.CreateElement("cUF").SetText(doc.EmitterUF)
	ide.CreateElement("mod").SetText(pkgfiscal.ModeloNFe)
	ide.CreateElement("serie").SetText(doc.Series)
	ide.CreateElement("nNF").SetText(fmt.Sprintf("%d", doc.Number))
	ide.CreateElement("dhEmi").SetText(doc.IssuedAt.Format("2006-01-02T15:04:05-07:00"))
	ide.CreateElement("tpAmb").SetText(b.environment)

	emit := infNFe.CreateElement("emit")
	emit.CreateElement("CNPJ").SetText(doc.EmitterCNPJ)
	emit.CreateElement("xNome").SetText(doc.EmitterName)

	if doc.CustomerDocument != "" || doc.CustomerName != "" {
		dest := infNFe.CreateElement("dest")
		if doc.CustomerDocument != "" {
			tag := "CPF"
			if len(doc.CustomerDocument) == 14 {
				tag = "CNPJ"
			}
			dest.CreateElement(tag).SetText(doc.CustomerDocument)
		}
		if doc.CustomerName != "" {
			dest.CreateElement("xNome").SetText(doc.CustomerName)
		}
	}

	for i, item := range doc.Items {
		det := infNFe.CreateElement("det")
		det.CreateAttr("nItem", fmt.Sprintf("%d", i+1))

		prod := det.CreateElement("prod")
		prod.CreateElement("cProd").SetText(item.SKU)
		prod.CreateElement("xProd").SetText(item.Name)
		prod.CreateElement("NCM").SetText(item.NCM)
		prod.CreateElement("CFOP").SetText(item.CFOP)
		prod.CreateElement("qCom").SetText(fmt.Sprintf("%d", item.Quantity))
		prod.CreateElement("vUnCom").SetText(item.UnitPrice.StringFixed(2))
		prod.CreateElement("vProd").SetText(item.Total.StringFixed(2))

		imposto := det.CreateElement("imposto")
		icms := imposto.CreateElement("ICMS").CreateElement("ICMS00")
		icms.CreateElement("orig").SetText(fmt.Sprintf("%d", item.Origin))
		icms.CreateElement("pICMS").SetText(item.ICMSRate.Mul(hundred).StringFixed(2))
		icms.CreateElement("vICMS").SetText(item.Total.Mul(item.ICMSRate).StringFixed(2))
	}

	total := infNFe.CreateElement("total").CreateElement("ICMSTot")
	total.CreateElement("vNF").SetText(doc.Total.StringFixed(2))

	pag := infNFe.CreateElement("pag").CreateElement("detPag")
	pag.CreateElement("tPag").SetText(paymentCode(doc.PaymentMethod))
	pag.CreateElement("vPag").SetText(doc.Total.StringFixed(2))

	xml.Indent(2)
	return xml.WriteToString()
}

// paymentCode mapeia a forma de pagamento para o código tPag do layout.
func paymentCode(method string) string {
	switch method {
	case "DINHEIRO":
		return "01"
	case "CARTAO":
		return "03" // cartão de crédito
	case "PIX":
		return "17"
	case "A_PRAZO":
		return "15" // boleto bancário
	default:
		return "99"
	}
}
