package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/ledger"
)

// InventoryHandler ajustes manuais de estoque e consulta do histórico de movimentos.
type InventoryHandler struct {
	engine *ledger.Engine
	query  *ledger.QueryService
}

// NewInventoryHandler constrói o handler.
func NewInventoryHandler(engine *ledger.Engine, query *ledger.QueryService) *InventoryHandler {
	return &InventoryHandler{engine: engine, query: query}
}

// AdjustStock godoc
// @Summary      Ajuste manual de estoque (contagem, correção)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, type (IN|OUT), quantity, reason"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	}
	mov, err := h.engine.AdjustStock(c.Context(), in.ProductID, in.Type, in.Quantity, in.Reason, userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockMovementResponse{
		ID:          mov.ID,
		ProductID:   mov.ProductID,
		UserID:      mov.UserID,
		Type:        mov.Type,
		Quantity:    mov.Quantity,
		Reason:      mov.Reason,
		ReferenceID: mov.ReferenceID,
		CreatedAt:   mov.CreatedAt,
	})
}

// ListMovements godoc
// @Summary      Histórico de movimentos de um produto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID do produto"
// @Param        from        query  string  false  "RFC 3339"
// @Param        to          query  string  false  "RFC 3339"
// @Param        limit       query  int     false  "máx. 100, padrão 20"
// @Param        offset      query  int     false  "padrão 0"
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id obrigatório"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}
	page := parsePage(c)
	list, err := h.query.ListByProduct(c.Context(), productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
