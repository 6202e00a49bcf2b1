package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/serviceregistry-backend/internal/domain"
)

// Querier is the common interface implemented by *pgxpool.Pool, pgx.Tx and pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Builder is the squirrel statement builder for PostgreSQL placeholders.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type txCtxKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// QuerierFromCtx returns the transaction carried by ctx, so lookups made
// during one validation pass share its snapshot. Without one it returns
// fallback.
func QuerierFromCtx(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}

// Exists runs b, a SELECT 1 ... LIMIT 1 built with Builder, and reports
// whether it returned a row. what names the lookup in errors.
func Exists(ctx context.Context, db Querier, what string, b sq.SelectBuilder) (bool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("build %s lookup: %w", what, err)
	}

	var one int
	err = QuerierFromCtx(ctx, db).QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if IsTransient(err) {
		return false, fmt.Errorf("lookup %s: %w: %w", what, domain.ErrUnavailable, err)
	}
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", what, err)
	}
	return true, nil
}
