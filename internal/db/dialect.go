package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavor spoken by a database.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Querier runs SQL written with ? placeholders against a pool or a transaction.
// Repositories depend on it so the same code serves both.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// boundQuerier rewrites placeholders for its dialect before delegating.
type boundQuerier struct {
	q       Querier
	dialect Dialect
}

func (b *boundQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return b.q.ExecContext(ctx, Rebind(b.dialect, query), args...)
}

func (b *boundQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return b.q.QueryContext(ctx, Rebind(b.dialect, query), args...)
}

func (b *boundQuerier) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return b.q.QueryRowContext(ctx, Rebind(b.dialect, query), args...)
}

// Rebind converts ? placeholders to $1, $2, ... for PostgreSQL.
// Queries never contain literal question marks.
func Rebind(d Dialect, query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NullString maps an empty string to SQL NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
