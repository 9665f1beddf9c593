package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/erp-api/internal/application/auth"
	"github.com/gestaolivre/erp-api/internal/application/financeops"
	"github.com/gestaolivre/erp-api/internal/application/fiscal"
	"github.com/gestaolivre/erp-api/internal/application/ledger"
	"github.com/gestaolivre/erp-api/internal/application/purchases"
	"github.com/gestaolivre/erp-api/internal/application/sales"
	"github.com/gestaolivre/erp-api/internal/application/usecase"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	PartnerUC   *usecase.PartnerUseCase
	AccountUC   *usecase.AccountUseCase
	TxnUC       *usecase.TransactionUseCase
	UserUC      *usecase.UserUseCase
	Engine      *ledger.Engine
	LedgerQuery *ledger.QueryService
	SaleUC      *sales.SaleUseCase
	PurchaseUC  *purchases.PurchaseUseCase
	FinanceSvc  *financeops.Service
	FiscalSvc   *fiscal.Service
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Produtos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequirePermission("products.create"), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequirePermission("products.update"), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Delete)

	// Parceiros (clientes/fornecedores)
	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Post("/", RequirePermission("partners.create"), partnerHandler.Create)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Put("/:id", RequirePermission("partners.update"), partnerHandler.Update)
	partners.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), partnerHandler.Delete)

	// Estoque: ajustes manuais e histórico de movimentos
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Engine, deps.LedgerQuery)
	inventory.Post("/adjustments", RequirePermission("inventory.adjust"), inventoryHandler.AdjustStock)
	inventory.Get("/movements", inventoryHandler.ListMovements)

	// Vendas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", RequirePermission("sales.create"), saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", RequireRole(entity.RoleAdmin, entity.RoleManager), saleHandler.Cancel)

	// Compras
	purchasesGroup := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Post("/", RequirePermission("purchases.create"), purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Post("/:id/cancel", RequireRole(entity.RoleAdmin, entity.RoleManager), purchaseHandler.Cancel)

	// Contas a pagar
	payables := protected.Group("/payables")
	payablesHandler := NewPayablesHandler(deps.FinanceSvc)
	payables.Post("/", RequirePermission("finance.create"), payablesHandler.Create)
	payables.Get("/", payablesHandler.List)
	payables.Get("/:id", payablesHandler.GetByID)
	payables.Post("/:id/payments", RequirePermission("finance.pay"), payablesHandler.RegisterPayment)
	payables.Post("/:id/cancel", RequireRole(entity.RoleAdmin, entity.RoleManager), payablesHandler.Cancel)

	// Contas a receber
	receivables := protected.Group("/receivables")
	receivablesHandler := NewReceivablesHandler(deps.FinanceSvc)
	receivables.Post("/", RequirePermission("finance.create"), receivablesHandler.Create)
	receivables.Get("/", receivablesHandler.List)
	receivables.Get("/:id", receivablesHandler.GetByID)
	receivables.Post("/:id/payments", RequirePermission("finance.pay"), receivablesHandler.RegisterPayment)
	receivables.Post("/:id/cancel", RequireRole(entity.RoleAdmin, entity.RoleManager), receivablesHandler.Cancel)

	// Plano de contas e lançamentos
	accountingHandler := NewAccountingHandler(deps.AccountUC, deps.TxnUC)
	accounts := protected.Group("/accounts", RequireRole(entity.RoleAdmin, entity.RoleManager))
	accounts.Post("/", accountingHandler.CreateAccount)
	accounts.Get("/", accountingHandler.ListAccounts)
	accounts.Get("/:id", accountingHandler.GetAccount)
	accounts.Put("/:id", accountingHandler.UpdateAccount)
	accounts.Delete("/:id", accountingHandler.DeleteAccount)

	transactions := protected.Group("/transactions")
	transactions.Post("/", RequirePermission("transactions.create"), accountingHandler.CreateTransaction)
	transactions.Get("/", accountingHandler.ListTransactions)
	transactions.Get("/:id", accountingHandler.GetTransaction)

	// Notas fiscais
	fiscalGroup := protected.Group("/fiscal/invoices")
	fiscalHandler := NewFiscalHandler(deps.FiscalSvc)
	fiscalGroup.Post("/", RequirePermission("fiscal.emit"), fiscalHandler.Emit)
	fiscalGroup.Get("/", fiscalHandler.List)
	fiscalGroup.Get("/:id", fiscalHandler.GetByID)
	fiscalGroup.Get("/:id/xml", fiscalHandler.GetXML)
	fiscalGroup.Get("/:id/pdf", fiscalHandler.GetPDF)
	fiscalGroup.Post("/:id/transmit", RequirePermission("fiscal.emit"), fiscalHandler.Transmit)
	fiscalGroup.Post("/:id/cancel", RequireRole(entity.RoleAdmin, entity.RoleManager), fiscalHandler.Cancel)

	// Usuários (só ADMIN)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
}
