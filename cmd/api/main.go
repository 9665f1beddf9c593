package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	migrate "github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/gestaolivre/erp-api/internal/application/auth"
	"github.com/gestaolivre/erp-api/internal/application/financeops"
	appfiscal "github.com/gestaolivre/erp-api/internal/application/fiscal"
	"github.com/gestaolivre/erp-api/internal/application/ledger"
	"github.com/gestaolivre/erp-api/internal/application/purchases"
	"github.com/gestaolivre/erp-api/internal/application/sales"
	"github.com/gestaolivre/erp-api/internal/application/usecase"
	infrafiscal "github.com/gestaolivre/erp-api/internal/infrastructure/fiscal"
	infrapdf "github.com/gestaolivre/erp-api/internal/infrastructure/pdf"
	"github.com/gestaolivre/erp-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestaolivre/erp-api/internal/interfaces/http"
	"github.com/gestaolivre/erp-api/pkg/config"
	"github.com/gestaolivre/erp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migrações do banco")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	financeRepo := postgres.NewFinanceRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	invoiceRepo := postgres.NewFiscalInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := ledger.NewEngine(txRunner)
	ledgerQuery := ledger.NewQueryService(movementRepo)
	saleUC := sales.NewSaleUseCase(txRunner, engine, productRepo, partnerRepo, saleRepo)
	purchaseUC := purchases.NewPurchaseUseCase(txRunner, engine, productRepo, partnerRepo, purchaseRepo)
	financeSvc := financeops.NewService(txRunner, financeRepo)

	// Fiscal: XML NF-e via etree e DANFE simplificado via maroto
	xmlBuilder := infrafiscal.NewNFeXMLBuilder(cfg.Fiscal.Environment)
	pdfGen := infrapdf.NewDANFEGenerator()
	fiscalSvc := appfiscal.NewService(cfg.Fiscal, invoiceRepo, saleRepo, productRepo, partnerRepo, xmlBuilder, pdfGen)

	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	productUC := usecase.NewProductUseCase(productRepo)
	partnerUC := usecase.NewPartnerUseCase(partnerRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	txnUC := usecase.NewTransactionUseCase(txnRepo, accountRepo)
	userUC := usecase.NewUserUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ERP Gestão API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		PartnerUC:   partnerUC,
		AccountUC:   accountUC,
		TxnUC:       txnUC,
		UserUC:      userUC,
		Engine:      engine,
		LedgerQuery: ledgerQuery,
		SaleUC:      saleUC,
		PurchaseUC:  purchaseUC,
		FinanceSvc:  financeSvc,
		FiscalSvc:   fiscalSvc,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

// runMigrations aplica as migrações pendentes no startup. Usa uma conexão
// database/sql separada (driver pgx stdlib) porque o golang-migrate não fala
// pgxpool diretamente.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
