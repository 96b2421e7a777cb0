// Package querier выполняет запросы pgx либо в транзакции из контекста,
// либо напрямую на пуле.
package querier

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Querier struct {
	db     pgxv5.Tr
	getter *pgxv5.CtxGetter
}

// New: db - пул или соединение, на котором идут запросы вне транзакции.
func New(db pgxv5.Tr) *Querier {
	return &Querier{
		db:     db,
		getter: pgxv5.DefaultCtxGetter,
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return q.executor(ctx).Exec(ctx, sql, args...)
}

func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.executor(ctx).Query(ctx, sql, args...)
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.executor(ctx).QueryRow(ctx, sql, args...)
}

func (q *Querier) executor(ctx context.Context) pgxv5.Tr {
	return q.getter.DefaultTrOrDB(ctx, q.db)
}
