package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/usecase"
)

// PartnerHandler CRUD de parceiros (clientes/fornecedores, protegido).
type PartnerHandler struct {
	uc *usecase.PartnerUseCase
}

// NewPartnerHandler constrói o handler.
func NewPartnerHandler(uc *usecase.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// Create godoc
// @Summary      Criar parceiro
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartnerRequest  true  "name, document, type"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/partners [post]
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	partner, err := h.uc.CreatePartner(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(partner)
}

// GetByID godoc
// @Summary      Buscar parceiro por ID
// @Tags         partners
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do parceiro"
// @Success      200  {object}  dto.PartnerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partners/{id} [get]
func (h *PartnerHandler) GetByID(c *fiber.Ctx) error {
	partner, err := h.uc.GetPartner(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(partner)
}

// Update godoc
// @Summary      Atualizar parceiro (document é imutável)
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID do parceiro"
// @Param        body  body  dto.UpdatePartnerRequest  true  "campos editáveis"
// @Success      200   {object}  dto.PartnerResponse
// @Router       /api/partners/{id} [put]
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	partner, err := h.uc.UpdatePartner(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(partner)
}

// List godoc
// @Summary      Listar parceiros
// @Tags         partners
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "CUSTOMER, SUPPLIER ou BOTH"
// @Param        name    query  string  false  "busca por nome (sem acentos, caixa baixa)"
// @Param        limit   query  int     false  "máx. 100, padrão 20"
// @Param        offset  query  int     false  "padrão 0"
// @Success      200  {object}  dto.PartnerListResponse
// @Router       /api/partners [get]
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	if name := c.Query("name"); name != "" {
		list, err := h.uc.SearchPartners(c.Context(), name, page.Limit, page.Offset)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(list)
	}
	list, err := h.uc.ListPartners(c.Context(), c.Query("type"), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Remover parceiro (sem documentos vinculados)
// @Tags         partners
// @Security     Bearer
// @Param        id  path  string  true  "ID do parceiro"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/partners/{id} [delete]
func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeletePartner(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
