package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/ledger"
	"github.com/gestaolivre/erp-api/internal/application/sales"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/finance"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) ApplyStockDelta(productID string, delta int64) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                            { return nil }

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByReference(referenceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ReferenceID == referenceID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	items []*entity.SaleItem
	// staleStatus, quando definido, substitui o status devolvido por GetByID,
	// simulando uma leitura feita antes de outra transação commitar.
	staleStatus string
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	cp.Items = nil
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	if r.staleStatus != "" {
		cp.Status = r.staleStatus
	}
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

func (r *fakeSaleRepo) UpdateStatus(id, from, to string) error {
	s, ok := r.sales[id]
	if !ok || s.Status != from {
		return domain.ErrConflict
	}
	s.Status = to
	return nil
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return nil, nil }

type fakeFinanceRepo struct {
	entries map[string]*finance.Entry
}

func (r *fakeFinanceRepo) Create(e *finance.Entry) error {
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakeFinanceRepo) GetByID(id string) (*finance.Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeFinanceRepo) GetByIDForUpdate(id string) (*finance.Entry, error) {
	return r.GetByID(id)
}

func (r *fakeFinanceRepo) Update(e *finance.Entry) error {
	if _, ok := r.entries[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakeFinanceRepo) GetBySaleID(saleID string) (*finance.Entry, error) {
	for _, e := range r.entries {
		if e.SaleID == saleID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFinanceRepo) GetByPurchaseID(purchaseID string) (*finance.Entry, error) {
	return nil, nil
}

func (r *fakeFinanceRepo) ListByKind(kind finance.Kind, status string, limit, offset int) ([]*finance.Entry, error) {
	return nil, nil
}

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

// fakeSaleTxRunner restaura o estado dos fakes quando fn devolve erro,
// reproduzindo o rollback da transação real.
type fakeSaleTxRunner struct {
	productRepo  *fakeProductRepo
	movementRepo *fakeMovementRepo
	saleRepo     *fakeSaleRepo
	financeRepo  *fakeFinanceRepo
}

func (r *fakeSaleTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	financeRepo repository.FinanceRepository,
) error) error {
	productSnap := make(map[string]*entity.Product, len(r.productRepo.products))
	for id, p := range r.productRepo.products {
		cp := *p
		productSnap[id] = &cp
	}
	saleSnap := make(map[string]*entity.Sale, len(r.saleRepo.sales))
	for id, s := range r.saleRepo.sales {
		cp := *s
		saleSnap[id] = &cp
	}
	financeSnap := make(map[string]*finance.Entry, len(r.financeRepo.entries))
	for id, e := range r.financeRepo.entries {
		cp := *e
		financeSnap[id] = &cp
	}
	movLen := len(r.movementRepo.movements)
	itemLen := len(r.saleRepo.items)

	if err := fn(r.movementRepo, r.productRepo, r.saleRepo, r.financeRepo); err != nil {
		r.productRepo.products = productSnap
		r.saleRepo.sales = saleSnap
		r.financeRepo.entries = financeSnap
		r.movementRepo.movements = r.movementRepo.movements[:movLen]
		r.saleRepo.items = r.saleRepo.items[:itemLen]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	userID     = "00000000-0000-0000-0000-000000000001"
	customerID = "00000000-0000-0000-0000-000000000002"
	prodAID    = "00000000-0000-0000-0000-00000000000a"
	prodBID    = "00000000-0000-0000-0000-00000000000b"
)

type fixture struct {
	uc           *sales.SaleUseCase
	productRepo  *fakeProductRepo
	movementRepo *fakeMovementRepo
	saleRepo     *fakeSaleRepo
	financeRepo  *fakeFinanceRepo
}

func newFixture() *fixture {
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		prodAID: {ID: prodAID, SKU: "CAFE-500", Name: "Café 500g", Stock: 10, Price: decimal.NewFromInt(25)},
		prodBID: {ID: prodBID, SKU: "ACUCAR-1K", Name: "Açúcar 1kg", Stock: 2, Price: decimal.NewFromInt(8)},
	}}
	partnerRepo := &fakePartnerRepo{partners: map[string]*entity.Partner{
		customerID: {ID: customerID, Name: "Mercado São José", Type: entity.PartnerTypeCustomer, Active: true},
	}}
	movementRepo := &fakeMovementRepo{}
	saleRepo := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	financeRepo := &fakeFinanceRepo{entries: map[string]*finance.Entry{}}
	runner := &fakeSaleTxRunner{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		financeRepo:  financeRepo,
	}
	engine := ledger.NewEngine(nil)
	uc := sales.NewSaleUseCase(runner, engine, productRepo, partnerRepo, saleRepo)
	return &fixture{
		uc:           uc,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		financeRepo:  financeRepo,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

// Venda à vista: desconta estoque, grava um movimento OUT por item e
// não gera conta a receber.
func TestCreateSale_DescontaEstoqueEGravaMovimentos(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.CreateSale(context.Background(), userID, dto.CreateSaleRequest{
		PartnerID:     customerID,
		PaymentMethod: entity.PaymentPix,
		Items: []dto.SaleItemInput{
			{ProductID: prodAID, Quantity: 3},
			{ProductID: prodBID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, entity.SaleStatusCompleted, resp.Status)
	// 3×25 + 1×8 = 83 (preço unitário zero usa o preço do catálogo)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(83)),
		"total deve ser 83, veio %s", resp.Total)

	pa, _ := f.productRepo.GetByID(prodAID)
	pb, _ := f.productRepo.GetByID(prodBID)
	assert.Equal(t, int64(7), pa.Stock)
	assert.Equal(t, int64(1), pb.Stock)

	movs, _ := f.movementRepo.ListByReference(resp.ID)
	require.Len(t, movs, 2, "um movimento OUT por item, referenciando a venda")
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
		assert.Equal(t, "Venda", m.Reason)
	}

	entry, _ := f.financeRepo.GetBySaleID(resp.ID)
	assert.Nil(t, entry, "venda à vista não gera conta a receber")
}

// Estoque insuficiente em um item: a venda inteira é desfeita — sem cabeçalho,
// sem itens, sem movimentos e sem mutação de saldo em nenhum produto.
func TestCreateSale_SemSaldoDesfazTudo(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateSale(context.Background(), userID, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemInput{
			{ProductID: prodAID, Quantity: 3}, // ok: saldo 10
			{ProductID: prodBID, Quantity: 5}, // falha: saldo 2
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	pa, _ := f.productRepo.GetByID(prodAID)
	pb, _ := f.productRepo.GetByID(prodBID)
	assert.Equal(t, int64(10), pa.Stock, "saldo do primeiro item deve voltar")
	assert.Equal(t, int64(2), pb.Stock)
	assert.Empty(t, f.saleRepo.sales, "cabeçalho da venda não deve persistir")
	assert.Empty(t, f.saleRepo.items)
	assert.Empty(t, f.movementRepo.movements)
}

// Venda a prazo: gera a conta a receber PENDING com o total e o vencimento
// informados, vinculada à venda.
func TestCreateSale_APrazoGeraContaAReceber(t *testing.T) {
	f := newFixture()
	due := time.Now().AddDate(0, 1, 0)

	resp, err := f.uc.CreateSale(context.Background(), userID, dto.CreateSaleRequest{
		PartnerID:     customerID,
		PaymentMethod: entity.PaymentOnCredit,
		DueDate:       &due,
		Items: []dto.SaleItemInput{
			{ProductID: prodAID, Quantity: 2, UnitPrice: decimal.NewFromInt(30)},
		},
	})
	require.NoError(t, err)

	entry, err := f.financeRepo.GetBySaleID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, entry, "A_PRAZO deve criar a conta a receber na mesma transação")
	assert.Equal(t, finance.KindReceivable, entry.Kind)
	assert.Equal(t, finance.StatusPending, entry.Status)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, customerID, entry.PartnerID)
	assert.True(t, entry.DueDate.Equal(due))
}

// Cliente tipo SUPPLIER não pode comprar.
func TestCreateSale_FornecedorComoClienteFalha(t *testing.T) {
	f := newFixture()
	supplierID := "00000000-0000-0000-0000-000000000009"
	fr := &fakePartnerRepo{partners: map[string]*entity.Partner{
		supplierID: {ID: supplierID, Name: "Distribuidora", Type: entity.PartnerTypeSupplier, Active: true},
	}}
	f.uc = sales.NewSaleUseCase(
		&fakeSaleTxRunner{productRepo: f.productRepo, movementRepo: f.movementRepo, saleRepo: f.saleRepo, financeRepo: f.financeRepo},
		ledger.NewEngine(nil), f.productRepo, fr, f.saleRepo,
	)

	_, err := f.uc.CreateSale(context.Background(), userID, dto.CreateSaleRequest{
		PartnerID:     supplierID,
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemInput{{ProductID: prodAID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelSale
// ──────────────────────────────────────────────────────────────────────────────

// Cancelamento devolve o estoque com movimentos IN e cancela a conta a
// receber pendente vinculada.
func TestCancelSale_DevolveEstoqueECancelaConta(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.CreateSale(context.Background(), userID, dto.CreateSaleRequest{
		PartnerID:     customerID,
		PaymentMethod: entity.PaymentOnCredit,
		Items:         []dto.SaleItemInput{{ProductID: prodAID, Quantity: 4}},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.CancelSale(context.Background(), resp.ID, userID))

	sale, _ := f.saleRepo.GetByID(resp.ID)
	assert.Equal(t, entity.SaleStatusCancelled, sale.Status)

	pa, _ := f.productRepo.GetByID(prodAID)
	assert.Equal(t, int64(10), pa.Stock, "estoque deve voltar ao saldo original")

	movs, _ := f.movementRepo.ListByReference(resp.ID)
	require.Len(t, movs, 2, "o OUT da venda e o IN do cancelamento permanecem no histórico")
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, entity.MovementTypeIN, movs[1].Type)
	assert.Equal(t, "Cancelamento de venda", movs[1].Reason)

	entry, _ := f.financeRepo.GetBySaleID(resp.ID)
	require.NotNil(t, entry)
	assert.Equal(t, finance.StatusCancelled, entry.Status)
}

// Cancelar duas vezes: a segunda chamada falha com conflito e não gera
// movimentos extras.
func TestCancelSale_SegundaVezConflito(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.CreateSale(context.Background(), userID, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemInput{{ProductID: prodAID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.CancelSale(context.Background(), resp.ID, userID))
	movsBefore := len(f.movementRepo.movements)

	err = f.uc.CancelSale(context.Background(), resp.ID, userID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Len(t, f.movementRepo.movements, movsBefore, "cancelamento repetido não movimenta estoque")
}

// Dois cancelamentos concorrentes: o segundo passa pela pré-checagem com uma
// leitura desatualizada (ainda vê COMPLETED), mas o flip condicional de status
// dentro da transação falha e o estoque não é devolvido em dobro.
func TestCancelSale_LeituraDesatualizadaNaoDuplicaEstorno(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.CreateSale(context.Background(), userID, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemInput{{ProductID: prodAID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.CancelSale(context.Background(), resp.ID, userID))
	movsBefore := len(f.movementRepo.movements)

	f.saleRepo.staleStatus = entity.SaleStatusCompleted
	err = f.uc.CancelSale(context.Background(), resp.ID, userID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	pa, _ := f.productRepo.GetByID(prodAID)
	assert.Equal(t, int64(10), pa.Stock, "o estoque não pode ser devolvido duas vezes")
	assert.Len(t, f.movementRepo.movements, movsBefore)
	assert.Equal(t, entity.SaleStatusCancelled, f.saleRepo.sales[resp.ID].Status)
}
