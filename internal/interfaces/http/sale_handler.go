package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/sales"
)

// SaleHandler vendas (protegido).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler constrói o handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Criar venda (desconta o estoque na mesma transação)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items, payment_method, partner_id (opcional), due_date (A_PRAZO)"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "estoque insuficiente"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	}
	sale, err := h.uc.CreateSale(c.Context(), userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GetByID godoc
// @Summary      Buscar venda por ID (com itens)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(sale)
}

// List godoc
// @Summary      Listar vendas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. 100, padrão 20"
// @Param        offset  query  int  false  "padrão 0"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	list, err := h.uc.ListSales(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}

// Cancel godoc
// @Summary      Cancelar venda (devolve o estoque)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "venda já cancelada"
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.CancelSale(c.Context(), c.Params("id"), userID); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venda cancelada"})
}
