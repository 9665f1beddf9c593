package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/financeops"
	"github.com/gestaolivre/erp-api/internal/domain/finance"
)

// FinanceHandler contas a pagar e a receber. O mesmo handler serve as duas
// rotas; o Kind vem fixado no registro da rota.
type FinanceHandler struct {
	svc  *financeops.Service
	kind finance.Kind
}

// NewPayablesHandler constrói o handler de contas a pagar.
func NewPayablesHandler(svc *financeops.Service) *FinanceHandler {
	return &FinanceHandler{svc: svc, kind: finance.KindPayable}
}

// NewReceivablesHandler constrói o handler de contas a receber.
func NewReceivablesHandler(svc *financeops.Service) *FinanceHandler {
	return &FinanceHandler{svc: svc, kind: finance.KindReceivable}
}

// Create godoc
// @Summary      Lançar conta manual (a pagar ou a receber)
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "description, amount, due_date, partner_id (opcional)"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payables [post]
func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	}
	entry, err := h.svc.CreateManualEntry(c.Context(), h.kind, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// RegisterPayment godoc
// @Summary      Registrar pagamento de uma conta
// @Description  Transição PENDING/OVERDUE -> PAID. Conta já paga devolve 409
//
//	ALREADY_PAID sem alterar o registro de pagamento original.
//
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID da conta"
// @Param        body  body  dto.RegisterPaymentRequest  true  "paid_amount, payment_method, paid_at (opcional)"
// @Success      200   {object}  dto.EntryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payables/{id}/payments [post]
func (h *FinanceHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	}
	entry, err := h.svc.RegisterPayment(c.Context(), h.kind, c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(entry)
}

// Cancel godoc
// @Summary      Cancelar conta pendente
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da conta"
// @Success      200  {object}  dto.EntryResponse
// @Failure      409  {object}  dto.ErrorResponse  "conta paga não pode ser cancelada"
// @Router       /api/payables/{id}/cancel [post]
func (h *FinanceHandler) Cancel(c *fiber.Ctx) error {
	entry, err := h.svc.CancelEntry(c.Context(), h.kind, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(entry)
}

// GetByID godoc
// @Summary      Buscar conta por ID (status efetivo)
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da conta"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payables/{id} [get]
func (h *FinanceHandler) GetByID(c *fiber.Ctx) error {
	entry, err := h.svc.GetEntry(c.Context(), h.kind, c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(entry)
}

// List godoc
// @Summary      Listar contas (OVERDUE derivado do vencimento)
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING, OVERDUE, PAID ou CANCELLED"
// @Param        limit   query  int     false  "máx. 100, padrão 20"
// @Param        offset  query  int     false  "padrão 0"
// @Success      200  {object}  dto.EntryListResponse
// @Router       /api/payables [get]
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	list, err := h.svc.ListEntries(c.Context(), h.kind, c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}
