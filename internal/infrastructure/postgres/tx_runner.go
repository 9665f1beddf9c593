package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaolivre/erp-api/internal/application/financeops"
	"github.com/gestaolivre/erp-api/internal/application/ledger"
	"github.com/gestaolivre/erp-api/internal/application/purchases"
	"github.com/gestaolivre/erp-api/internal/application/sales"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

var (
	_ ledger.TxRunner            = (*TxRunner)(nil)
	_ sales.SaleTxRunner         = (*TxRunner)(nil)
	_ purchases.PurchaseTxRunner = (*TxRunner)(nil)
	_ financeops.FinanceTxRunner = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repos amarrados à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMovementRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia uma transação com os repos de venda (para CreateSale/CancelSale).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	financeRepo repository.FinanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockMovementRepository(tx),
		NewProductRepository(tx),
		NewSaleRepository(tx),
		NewFinanceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchase inicia uma transação com os repos de compra.
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	financeRepo repository.FinanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockMovementRepository(tx),
		NewProductRepository(tx),
		NewPurchaseRepository(tx),
		NewFinanceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFinance inicia uma transação com o repo financeiro (transições de status).
func (r *TxRunner) RunFinance(ctx context.Context, fn func(
	financeRepo repository.FinanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewFinanceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
