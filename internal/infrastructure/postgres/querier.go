// Package postgres implementa os adaptadores de persistência sobre PostgreSQL
// (pgx/v5). Todos os repositórios aceitam um Querier, então funcionam tanto
// com o pool quanto com uma transação.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier é o subconjunto comum de *pgxpool.Pool e pgx.Tx usado pelos repositórios.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)
