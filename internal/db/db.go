// Package db provides database initialization and access for SQLite and PostgreSQL.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned (wrapped) by repositories when no row matches an id.
var ErrNotFound = errors.New("not found")

// DB is an open database together with the SQL dialect it speaks.
type DB struct {
	*sql.DB
	dialect Dialect
}

// DefaultPath returns the default database path: ~/.rent-ledger/ledger.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".rent-ledger", "ledger.db"), nil
}

// IsPostgresDSN reports whether dsn names a PostgreSQL database rather than a SQLite file.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open opens the database named by dsn and brings its schema up to date.
// A postgres:// URL selects PostgreSQL; anything else is a SQLite file path.
func Open(dsn string) (*DB, error) {
	if IsPostgresDSN(dsn) {
		return openPostgres(dsn)
	}
	return openSQLite(dsn)
}

// openSQLite opens (or creates) a SQLite database at the given path,
// enables WAL mode, and runs migrations.
func openSQLite(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	sqlDB, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := configure(sqlDB); err != nil {
		closeErr := sqlDB.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
		}
		return nil, err
	}

	if err := runMigrations(sqlDB); err != nil {
		closeErr := sqlDB.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("running migrations: %w (also failed to close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &DB{DB: sqlDB, dialect: SQLite}, nil
}

// openPostgres connects to PostgreSQL through the pgx stdlib driver and
// applies pending migrations.
func openPostgres(dsn string) (*DB, error) {
	if _, err := MigratePostgres(dsn, MigrateUp); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		closeErr := sqlDB.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("pinging database: %w (also failed to close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{DB: sqlDB, dialect: Postgres}, nil
}

// configure sets SQLite pragmas. Foreign keys stay off: records reference
// each other by id only and orphans are allowed.
func configure(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}
	}

	return nil
}

// Dialect returns the SQL dialect of the database.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Querier returns a Querier running directly against the connection pool.
func (d *DB) Querier() Querier {
	return &boundQuerier{q: d.DB, dialect: d.dialect}
}

// InTx runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back otherwise.
func (d *DB) InTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(&boundQuerier{q: tx, dialect: d.dialect}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (also failed to roll back: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
