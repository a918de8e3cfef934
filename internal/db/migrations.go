package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run against SQLite.
// PostgreSQL uses the versioned files under migrations/postgres instead.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id           TEXT     PRIMARY KEY,
		name         TEXT     NOT NULL,
		address      TEXT     NOT NULL,
		type         TEXT     NOT NULL,
		monthly_rent TEXT     NOT NULL DEFAULT '0',
		status       TEXT     NOT NULL DEFAULT 'Vacant',
		created_at   DATETIME NOT NULL,
		updated_at   DATETIME
	)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id            TEXT     PRIMARY KEY,
		name          TEXT     NOT NULL,
		email         TEXT     NOT NULL,
		phone         TEXT     NOT NULL,
		property_id   TEXT,
		property_name TEXT     NOT NULL DEFAULT '',
		monthly_rent  TEXT     NOT NULL DEFAULT '0',
		lease_start   TEXT     NOT NULL,
		lease_end     TEXT     NOT NULL,
		rent_status   TEXT     NOT NULL DEFAULT 'Pending',
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME
	)`,
	`CREATE INDEX IF NOT EXISTS tenants_property_id ON tenants (property_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id            TEXT     PRIMARY KEY,
		tenant_id     TEXT     NOT NULL,
		tenant_name   TEXT     NOT NULL DEFAULT '',
		property_id   TEXT,
		property_name TEXT     NOT NULL DEFAULT '',
		amount        TEXT     NOT NULL,
		date          TEXT     NOT NULL,
		status        TEXT     NOT NULL DEFAULT 'Paid',
		created_at    DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id            TEXT     PRIMARY KEY,
		property_id   TEXT,
		property_name TEXT     NOT NULL DEFAULT '',
		description   TEXT     NOT NULL,
		amount        TEXT     NOT NULL,
		date          TEXT     NOT NULL,
		category      TEXT     NOT NULL,
		created_at    DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id            TEXT     PRIMARY KEY,
		type          TEXT     NOT NULL UNIQUE,
		currency      TEXT     NOT NULL,
		notifications INTEGER  NOT NULL DEFAULT 1,
		created_at    DATETIME NOT NULL
	)`,
}

// runMigrations runs all SQLite migrations in order.
func runMigrations(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	// Column additions (idempotent, checks if column exists first)
	columnMigrations := []struct {
		table, column, definition string
	}{
		{"settings", "updated_at", "DATETIME"},
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(db, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(db *sql.DB, table, column, definition string) error {
	exists, err := columnExists(db, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

// columnExists reports whether table has a column with the given name.
func columnExists(db *sql.DB, table, column string) (found bool, err error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("checking table info: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterating columns: %w", err)
	}

	return false, nil
}
