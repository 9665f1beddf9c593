package fiscal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	appfiscal "github.com/gestaolivre/erp-api/internal/application/fiscal"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	pkgconfig "github.com/gestaolivre/erp-api/pkg/config"
	pkgfiscal "github.com/gestaolivre/erp-api/pkg/fiscal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.FiscalInvoice
}

func (r *fakeInvoiceRepo) Create(inv *entity.FiscalInvoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.FiscalInvoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetBySaleID(saleID string) (*entity.FiscalInvoice, error) {
	var latest *entity.FiscalInvoice
	for _, inv := range r.invoices {
		if inv.SaleID != saleID {
			continue
		}
		if latest == nil || inv.CreatedAt.After(latest.CreatedAt) {
			cp := *inv
			latest = &cp
		}
	}
	return latest, nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.FiscalInvoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) NextNumber(series string) (int64, error) {
	var max int64
	for _, inv := range r.invoices {
		if inv.Series == series && inv.Number > max {
			max = inv.Number
		}
	}
	return max + 1, nil
}

func (r *fakeInvoiceRepo) List(limit, offset int) ([]*entity.FiscalInvoice, error) {
	out := make([]*entity.FiscalInvoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	items []*entity.SaleItem
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error { return nil }

func (r *fakeSaleRepo) CreateItem(i *entity.SaleItem) error { return nil }

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, item := range r.items {
		if item.SaleID == saleID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(id, from, to string) error { return nil }

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return nil, nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) ApplyStockDelta(productID string, delta int64) error { return nil }

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Delete(id string) error { return nil }

type fakePartnerRepo struct {
	partners map[string]*entity.Partner
}

func (r *fakePartnerRepo) Create(p *entity.Partner) error { return nil }

func (r *fakePartnerRepo) GetByID(id string) (*entity.Partner, error) {
	p, ok := r.partners[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePartnerRepo) GetByDocument(document string) (*entity.Partner, error) { return nil, nil }

func (r *fakePartnerRepo) Update(p *entity.Partner) error { return nil }

func (r *fakePartnerRepo) SearchByName(normalizedName string, limit, offset int) ([]*entity.Partner, error) {
	return nil, nil
}

func (r *fakePartnerRepo) List(partnerType string, limit, offset int) ([]*entity.Partner, error) {
	return nil, nil
}

func (r *fakePartnerRepo) Delete(id string) error { return nil }

// stubXMLBuilder devolve um XML fixo registrando o documento recebido.
type stubXMLBuilder struct {
	lastDoc appfiscal.InvoiceDocument
}

func (b *stubXMLBuilder) Build(doc appfiscal.InvoiceDocument) (string, error) {
	b.lastDoc = doc
	return "<NFe/>", nil
}

type stubPDFGenerator struct{}

func (stubPDFGenerator) Generate(doc appfiscal.InvoiceDocument) ([]byte, error) {
	return []byte("%PDF-1.7"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	saleID     = "00000000-0000-0000-0000-0000000000e1"
	customerID = "00000000-0000-0000-0000-000000000002"
	prodID     = "00000000-0000-0000-0000-00000000000a"
)

var fiscalCfg = pkgconfig.FiscalConfig{
	UFCode:      "35",
	CNPJ:        "11222333000181",
	CompanyName: "Gestão Livre Comércio LTDA",
	Environment: "2",
	Series:      "1",
}

type fixture struct {
	svc         *appfiscal.Service
	invoiceRepo *fakeInvoiceRepo
	saleRepo    *fakeSaleRepo
	xmlBuilder  *stubXMLBuilder
}

func newFixture(saleStatus string) *fixture {
	saleRepo := &fakeSaleRepo{
		sales: map[string]*entity.Sale{
			saleID: {
				ID:            saleID,
				UserID:        "u1",
				PartnerID:     customerID,
				PaymentMethod: entity.PaymentPix,
				Total:         decimal.NewFromInt(50),
				Status:        saleStatus,
			},
		},
		items: []*entity.SaleItem{
			{ID: "i1", SaleID: saleID, ProductID: prodID, Quantity: 2,
				UnitPrice: decimal.NewFromInt(25), Total: decimal.NewFromInt(50)},
		},
	}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		prodID: {
			ID: prodID, SKU: "CAFE-500", Name: "Café 500g",
			NCM: "09012100", CFOP: "5102", ICMSRate: decimal.NewFromFloat(0.18),
		},
	}}
	partnerRepo := &fakePartnerRepo{partners: map[string]*entity.Partner{
		customerID: {ID: customerID, Name: "Mercado São José", Document: "12345678000190", Type: entity.PartnerTypeCustomer},
	}}
	invoiceRepo := &fakeInvoiceRepo{invoices: map[string]*entity.FiscalInvoice{}}
	xmlBuilder := &stubXMLBuilder{}
	svc := appfiscal.NewService(fiscalCfg, invoiceRepo, saleRepo, productRepo, partnerRepo, xmlBuilder, stubPDFGenerator{})
	return &fixture{svc: svc, invoiceRepo: invoiceRepo, saleRepo: saleRepo, xmlBuilder: xmlBuilder}
}

// ──────────────────────────────────────────────────────────────────────────────
// EmitForSale
// ──────────────────────────────────────────────────────────────────────────────

// Emissão: nota DRAFT com número sequencial da série e chave de acesso válida.
func TestEmitForSale_NotaDraftComChaveValida(t *testing.T) {
	f := newFixture(entity.SaleStatusCompleted)

	resp, err := f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	require.NoError(t, err)

	assert.Equal(t, entity.FiscalStatusDraft, resp.Status)
	assert.Equal(t, int64(1), resp.Number, "primeira nota da série")
	assert.Equal(t, "1", resp.Series, "série padrão da configuração")
	assert.NoError(t, pkgfiscal.ValidateAccessKey(resp.AccessKey))
	assert.Nil(t, resp.IssuedAt, "IssuedAt só é carimbado na transmissão")

	// O documento entregue ao builder carrega emitente, cliente e itens fiscais
	doc := f.xmlBuilder.lastDoc
	assert.Equal(t, "11222333000181", doc.EmitterCNPJ)
	assert.Equal(t, "Mercado São José", doc.CustomerName)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "09012100", doc.Items[0].NCM)
	assert.Equal(t, "5102", doc.Items[0].CFOP)
}

// Venda cancelada não pode ter nota.
func TestEmitForSale_VendaCanceladaConflito(t *testing.T) {
	f := newFixture(entity.SaleStatusCancelled)

	_, err := f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// Segunda emissão para a mesma venda: duplicada.
func TestEmitForSale_SegundaNotaDuplicada(t *testing.T) {
	f := newFixture(entity.SaleStatusCompleted)

	_, err := f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	require.NoError(t, err)

	_, err = f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

// Nota cancelada libera a venda para reemissão, com número novo.
func TestEmitForSale_ReemissaoAposCancelamento(t *testing.T) {
	f := newFixture(entity.SaleStatusCompleted)

	first, err := f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	require.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), first.ID)
	require.NoError(t, err)

	second, err := f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Number, "o número nunca é reaproveitado")
	assert.NotEqual(t, first.AccessKey, second.AccessKey)
}

// Produto sem NCM válido bloqueia a emissão.
func TestEmitForSale_ProdutoSemNCMFalha(t *testing.T) {
	f := newFixture(entity.SaleStatusCompleted)
	f.saleRepo.items[0].ProductID = prodID
	svcSemNCM := appfiscal.NewService(fiscalCfg, f.invoiceRepo, f.saleRepo,
		&fakeProductRepo{products: map[string]*entity.Product{
			prodID: {ID: prodID, SKU: "CAFE-500", Name: "Café 500g", NCM: "", CFOP: "5102"},
		}},
		&fakePartnerRepo{partners: map[string]*entity.Partner{}}, f.xmlBuilder, stubPDFGenerator{})

	_, err := svcSemNCM.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transmissão e ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestTransmit_DraftViraAuthorized(t *testing.T) {
	f := newFixture(entity.SaleStatusCompleted)
	draft, err := f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	require.NoError(t, err)

	resp, err := f.svc.Transmit(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FiscalStatusAuthorized, resp.Status)
	require.NotNil(t, resp.IssuedAt)
}

func TestTransmit_SegundaVezConflito(t *testing.T) {
	f := newFixture(entity.SaleStatusCompleted)
	draft, err := f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	require.NoError(t, err)

	_, err = f.svc.Transmit(context.Background(), draft.ID)
	require.NoError(t, err)
	_, err = f.svc.Transmit(context.Background(), draft.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCancel_NotaJaCanceladaConflito(t *testing.T) {
	f := newFixture(entity.SaleStatusCompleted)
	draft, err := f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), draft.ID)
	require.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), draft.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestGetInvoiceXML_DevolveXMLGerado(t *testing.T) {
	f := newFixture(entity.SaleStatusCompleted)
	draft, err := f.svc.EmitForSale(context.Background(), dto.EmitInvoiceRequest{SaleID: saleID})
	require.NoError(t, err)

	xml, err := f.svc.GetInvoiceXML(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "<NFe/>", xml)
}
