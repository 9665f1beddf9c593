// Package fiscal emite notas fiscais (NF-e modelo 55, simplificada) para vendas
// concluídas: numeração sequencial por série, chave de acesso com dígito
// verificador e XML gerado. A transmissão à SEFAZ é um stub que apenas
// transiciona o status.
package fiscal

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
	"github.com/gestaolivre/erp-api/pkg/config"
	pkgfiscal "github.com/gestaolivre/erp-api/pkg/fiscal"
)

// Service emissão e ciclo de vida das notas fiscais.
type Service struct {
	cfg         config.FiscalConfig
	invoiceRepo repository.FiscalInvoiceRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	partnerRepo repository.PartnerRepository
	xmlBuilder  XMLBuilder
	pdfGen      DANFEGenerator
}

// NewService constrói o serviço fiscal.
func NewService(
	cfg config.FiscalConfig,
	invoiceRepo repository.FiscalInvoiceRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	partnerRepo repository.PartnerRepository,
	xmlBuilder XMLBuilder,
	pdfGen DANFEGenerator,
) *Service {
	return &Service{
		cfg:         cfg,
		invoiceRepo: invoiceRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		partnerRepo: partnerRepo,
		xmlBuilder:  xmlBuilder,
		pdfGen:      pdfGen,
	}
}

// EmitForSale gera a nota (DRAFT) para uma venda COMPLETED: próximo número da
// série, chave de acesso e XML. Venda já com nota devolve ErrDuplicate.
func (s *Service) EmitForSale(ctx context.Context, in dto.EmitInvoiceRequest) (*dto.FiscalInvoiceResponse, error) {
	sale, err := s.saleRepo.GetByID(in.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusCompleted {
		return nil, domain.ErrConflict
	}
	if existing, err := s.invoiceRepo.GetBySaleID(in.SaleID); err != nil {
		return nil, err
	} else if existing != nil && existing.Status != entity.FiscalStatusCancelled {
		return nil, domain.ErrDuplicate
	}

	series := in.Series
	if series == "" {
		series = s.cfg.Series
	}

	doc, err := s.buildDocument(sale, series)
	if err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.NextNumber(series)
	if err != nil {
		return nil, err
	}
	doc.Number = number

	now := time.Now()
	doc.IssuedAt = now
	accessKey, err := pkgfiscal.BuildAccessKey(pkgfiscal.ChaveParams{
		UFCode:   s.cfg.UFCode,
		CNPJ:     s.cfg.CNPJ,
		Series:   series,
		Number:   number,
		IssuedAt: now,
		Code:     rand.Int64N(100000000), // cNF
	})
	if err != nil {
		return nil, err
	}
	doc.AccessKey = accessKey

	xml, err := s.xmlBuilder.Build(*doc)
	if err != nil {
		return nil, err
	}

	invoice := &entity.FiscalInvoice{
		ID:        uuid.New().String(),
		SaleID:    in.SaleID,
		Number:    number,
		Series:    series,
		AccessKey: accessKey,
		XML:       xml,
		Status:    entity.FiscalStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Transmit "transmite" a nota: DRAFT vira AUTHORIZED e IssuedAt é carimbado.
// A integração real com a SEFAZ fica atrás desta fronteira.
func (s *Service) Transmit(ctx context.Context, invoiceID string) (*dto.FiscalInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status != entity.FiscalStatusDraft {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	invoice.Status = entity.FiscalStatusAuthorized
	invoice.IssuedAt = &now
	invoice.UpdatedAt = now
	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// Cancel cancela uma nota DRAFT ou AUTHORIZED.
func (s *Service) Cancel(ctx context.Context, invoiceID string) (*dto.FiscalInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status == entity.FiscalStatusCancelled {
		return nil, domain.ErrConflict
	}
	invoice.Status = entity.FiscalStatusCancelled
	invoice.UpdatedAt = time.Now()
	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// GetInvoice devolve os metadados da nota.
func (s *Service) GetInvoice(ctx context.Context, invoiceID string) (*dto.FiscalInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(invoice), nil
}

// GetInvoiceXML devolve o XML gerado da nota.
func (s *Service) GetInvoiceXML(ctx context.Context, invoiceID string) (string, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return "", err
	}
	if invoice == nil {
		return "", domain.ErrNotFound
	}
	return invoice.XML, nil
}

// GetInvoicePDF gera o DANFE simplificado da nota em PDF.
func (s *Service) GetInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	sale, err := s.saleRepo.GetByID(invoice.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	doc, err := s.buildDocument(sale, invoice.Series)
	if err != nil {
		return nil, err
	}
	doc.Number = invoice.Number
	doc.AccessKey = invoice.AccessKey
	if invoice.IssuedAt != nil {
		doc.IssuedAt = *invoice.IssuedAt
	} else {
		doc.IssuedAt = invoice.CreatedAt
	}
	return s.pdfGen.Generate(*doc)
}

// ListInvoices lista notas paginadas.
func (s *Service) ListInvoices(ctx context.Context, limit, offset int) (*dto.FiscalInvoiceListResponse, error) {
	list, err := s.invoiceRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.FiscalInvoiceListResponse{
		Invoices: make([]dto.FiscalInvoiceResponse, 0, len(list)),
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, inv := range list {
		out.Invoices = append(out.Invoices, *toInvoiceResponse(inv))
	}
	return out, nil
}

// buildDocument carrega itens, produtos e cliente da venda e valida os campos
// fiscais dos produtos (NCM e CFOP) antes da emissão.
func (s *Service) buildDocument(sale *entity.Sale, series string) (*InvoiceDocument, error) {
	items, err := s.saleRepo.GetItemsBySaleID(sale.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	doc := &InvoiceDocument{
		Series:        series,
		EmitterCNPJ:   s.cfg.CNPJ,
		EmitterName:   s.cfg.CompanyName,
		EmitterUF:     s.cfg.UFCode,
		PaymentMethod: sale.PaymentMethod,
		Total:         sale.Total,
	}

	if sale.PartnerID != "" {
		partner, err := s.partnerRepo.GetByID(sale.PartnerID)
		if err != nil {
			return nil, err
		}
		if partner != nil {
			doc.CustomerName = partner.Name
			doc.CustomerDocument = partner.Document
		}
	}

	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if err := pkgfiscal.ValidateNCM(product.NCM); err != nil {
			return nil, err
		}
		if err := pkgfiscal.ValidateCFOP(product.CFOP); err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, InvoiceItem{
			SKU:       product.SKU,
			Name:      product.Name,
			NCM:       product.NCM,
			CFOP:      product.CFOP,
			Origin:    product.Origin,
			ICMSRate:  product.ICMSRate,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		})
	}
	return doc, nil
}

func toInvoiceResponse(inv *entity.FiscalInvoice) *dto.FiscalInvoiceResponse {
	return &dto.FiscalInvoiceResponse{
		ID:        inv.ID,
		SaleID:    inv.SaleID,
		Number:    inv.Number,
		Series:    inv.Series,
		AccessKey: inv.AccessKey,
		Status:    inv.Status,
		IssuedAt:  inv.IssuedAt,
		CreatedAt: inv.CreatedAt,
	}
}
