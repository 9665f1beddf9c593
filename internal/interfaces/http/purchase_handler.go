package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/purchases"
)

// PurchaseHandler compras de fornecedor (protegido).
type PurchaseHandler struct {
	uc *purchases.PurchaseUseCase
}

// NewPurchaseHandler constrói o handler.
func NewPurchaseHandler(uc *purchases.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra (entrada de estoque + conta a pagar)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "partner_id, invoice_number, items, due_date (opcional)"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	}
	purchase, err := h.uc.CreatePurchase(c.Context(), userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// GetByID godoc
// @Summary      Buscar compra por ID (com itens)
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	purchase, err := h.uc.GetPurchase(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(purchase)
}

// List godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. 100, padrão 20"
// @Param        offset  query  int  false  "padrão 0"
// @Success      200  {object}  dto.PurchaseListResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	list, err := h.uc.ListPurchases(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}

// Cancel godoc
// @Summary      Cancelar compra (estorna a entrada de estoque)
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da compra"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse  "estoque já consumido ou compra cancelada"
// @Router       /api/purchases/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.CancelPurchase(c.Context(), c.Params("id"), userID); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "compra cancelada"})
}
