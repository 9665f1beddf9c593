package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, sku, name, description, stock, price, cost_price, ncm, cfop, icms_rate, origin, active, created_at, updated_at"

// ProductRepo implementação de ProductRepository sobre PostgreSQL (usável com pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de produtos. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste um novo produto. Stock nasce no valor informado (zero via caso de uso).
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, stock, price, cost_price, ncm, cfop, icms_rate, origin, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.Stock,
		product.Price, product.CostPrice, product.NCM, product.CFOP, product.ICMSRate,
		product.Origin, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(query, id, "get product")
}

// GetByIDForUpdate obtém o produto bloqueando a linha (SELECT FOR UPDATE).
// Só faz sentido dentro de uma transação: é o ponto de serialização do estoque.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id, "get product for update")
}

// GetBySKU obtém um produto pelo SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(query, sku, "get product by sku")
}

// Update atualiza um produto existente. Stock não é tocado aqui: o CHECK da
// tabela e o motor de estoque são os únicos donos dessa coluna.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, cost_price = $5, ncm = $6, cfop = $7, icms_rate = $8, origin = $9, active = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.CostPrice,
		product.NCM, product.CFOP, product.ICMSRate, product.Origin, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ApplyStockDelta soma delta em stock. O CHECK (stock >= 0) da tabela é a
// última linha de defesa contra saldo negativo.
func (r *ProductRepo) ApplyStockDelta(productID string, delta int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		productID, delta,
	)
	if err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista produtos com paginação.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Stock, &p.Price, &p.CostPrice,
			&p.NCM, &p.CFOP, &p.ICMSRate, &p.Origin, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete remove um produto por ID. Produto com movimentos devolve ErrConflict (FK).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(query, arg, op string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Stock, &p.Price, &p.CostPrice,
		&p.NCM, &p.CFOP, &p.ICMSRate, &p.Origin, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
