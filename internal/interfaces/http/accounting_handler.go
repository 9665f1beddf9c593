package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/application/usecase"
)

// AccountingHandler plano de contas e lançamentos financeiros (protegido).
type AccountingHandler struct {
	accountUC *usecase.AccountUseCase
	txnUC     *usecase.TransactionUseCase
}

// NewAccountingHandler constrói o handler.
func NewAccountingHandler(accountUC *usecase.AccountUseCase, txnUC *usecase.TransactionUseCase) *AccountingHandler {
	return &AccountingHandler{accountUC: accountUC, txnUC: txnUC}
}

// CreateAccount godoc
// @Summary      Criar conta do plano de contas
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "code, name, type, parent_id (opcional)"
// @Success      201   {object}  dto.AccountResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountingHandler) CreateAccount(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	account, err := h.accountUC.CreateAccount(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

// GetAccount godoc
// @Summary      Buscar conta por ID
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da conta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [get]
func (h *AccountingHandler) GetAccount(c *fiber.Ctx) error {
	account, err := h.accountUC.GetAccount(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(account)
}

// UpdateAccount godoc
// @Summary      Atualizar conta (code e type são imutáveis)
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID da conta"
// @Param        body  body  dto.UpdateAccountRequest  true  "name, active"
// @Success      200   {object}  dto.AccountResponse
// @Router       /api/accounts/{id} [put]
func (h *AccountingHandler) UpdateAccount(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	account, err := h.accountUC.UpdateAccount(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(account)
}

// ListAccounts godoc
// @Summary      Listar plano de contas
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. 100, padrão 20"
// @Param        offset  query  int  false  "padrão 0"
// @Success      200  {object}  dto.AccountListResponse
// @Router       /api/accounts [get]
func (h *AccountingHandler) ListAccounts(c *fiber.Ctx) error {
	page := parsePage(c)
	list, err := h.accountUC.ListAccounts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}

// DeleteAccount godoc
// @Summary      Remover conta (sem lançamentos nem filhas)
// @Tags         accounting
// @Security     Bearer
// @Param        id  path  string  true  "ID da conta"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [delete]
func (h *AccountingHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.accountUC.DeleteAccount(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateTransaction godoc
// @Summary      Criar lançamento financeiro
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "description, amount, type, account_id"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *AccountingHandler) CreateTransaction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	txn, err := h.txnUC.CreateTransaction(c.Context(), userID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// GetTransaction godoc
// @Summary      Buscar lançamento por ID
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do lançamento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *AccountingHandler) GetTransaction(c *fiber.Ctx) error {
	txn, err := h.txnUC.GetTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(txn)
}

// ListTransactions godoc
// @Summary      Listar lançamentos
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        account_id  query  string  false  "filtrar por conta"
// @Param        from        query  string  false  "RFC 3339"
// @Param        to          query  string  false  "RFC 3339"
// @Param        limit       query  int     false  "máx. 100, padrão 20"
// @Param        offset      query  int     false  "padrão 0"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *AccountingHandler) ListTransactions(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}
	page := parsePage(c)
	list, err := h.txnUC.ListTransactions(c.Context(), c.Query("account_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(list)
}
