package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/fiscal"
)

// FiscalHandler emissão e ciclo de vida de notas fiscais (protegido).
type FiscalHandler struct {
	svc *fiscal.Service
}

// NewFiscalHandler constrói o handler.
func NewFiscalHandler(svc *fiscal.Service) *FiscalHandler {
	return &FiscalHandler{svc: svc}
}

// Emit godoc
// @Summary      Emitir nota fiscal para uma venda (DRAFT)
// @Tags         fiscal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmitInvoiceRequest  true  "sale_id, series (opcional)"
// @Success      201   {object}  dto.FiscalInvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "venda já tem nota ou não está COMPLETED"
// @Router       /api/fiscal/invoices [post]
func (h *FiscalHandler) Emit(c *fiber.Ctx) error {
	var in dto.EmitInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	}
	invoice, err := h.svc.EmitForSale(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// Transmit godoc
// @Summary      Transmitir nota (DRAFT -> AUTHORIZED)
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  dto.FiscalInvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fiscal/invoices/{id}/transmit [post]
func (h *FiscalHandler) Transmit(c *fiber.Ctx) error {
	invoice, err := h.svc.Transmit(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(invoice)
}

// Cancel godoc
// @Summary      Cancelar nota fiscal
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  dto.FiscalInvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fiscal/invoices/{id}/cancel [post]
func (h *FiscalHandler) Cancel(c *fiber.Ctx) error {
	invoice, err := h.svc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(invoice)
}

// GetByID godoc
// @Summary      Buscar nota por ID
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  dto.FiscalInvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fiscal/invoices/{id} [get]
func (h *FiscalHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.svc.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(invoice)
}

// GetXML godoc
// @Summary      XML da nota
// @Tags         fiscal
// @Security     Bearer
// @Produce      xml
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {string}  string
// @Router       /api/fiscal/invoices/{id}/xml [get]
func (h *FiscalHandler) GetXML(c *fiber.Ctx) error {
	xml, err := h.svc.GetInvoiceXML(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.SendString(xml)
}

// GetPDF godoc
// @Summary      DANFE simplificado em PDF
// @Tags         fiscal
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {file}  file
// @Router       /api/fiscal/invoices/{id}/pdf [get]
func (h *FiscalHandler) GetPDF(c *fiber.Ctx) error {
	pdf, err := h.svc.GetInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

// List godoc
// @Summary      Listar notas fiscais
// @Tags         fiscal
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. 100, padrão 20"
// @Param        offset  query  int  false  "padrão 0"
// @Success      200  {object}  dto.FiscalInvoiceListResponse
// @Router       /api/fiscal/invoices [get]
func (h *FiscalHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	list, err := h.svc.ListInvoices(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}
