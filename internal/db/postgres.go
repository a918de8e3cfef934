package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	gomigrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql
var postgresMigrations embed.FS

// MigrateCommand selects what MigratePostgres does.
type MigrateCommand string

const (
	MigrateUp      MigrateCommand = "up"
	MigrateDown    MigrateCommand = "down"
	MigrateVersion MigrateCommand = "version"
)

// MigrationStatus reports the schema version after a migration command.
type MigrationStatus struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// MigratePostgres runs a golang-migrate command against the PostgreSQL
// database at dsn using the embedded migration files.
func MigratePostgres(dsn string, cmd MigrateCommand) (status MigrationStatus, err error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return status, fmt.Errorf("opening database: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{})
	if err != nil {
		closeErr := sqlDB.Close()
		if closeErr != nil {
			return status, fmt.Errorf("creating migration driver: %w (also failed to close: %v)", err, closeErr)
		}
		return status, fmt.Errorf("creating migration driver: %w", err)
	}

	src, err := iofs.New(postgresMigrations, "migrations/postgres")
	if err != nil {
		return status, closeDriver(driver, fmt.Errorf("loading migrations: %w", err))
	}

	m, err := gomigrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return status, closeDriver(driver, fmt.Errorf("creating migrator: %w", err))
	}
	// Closing the migrator also closes sqlDB.
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil && srcErr != nil {
			err = fmt.Errorf("closing migration source: %w", srcErr)
		}
		if err == nil && dbErr != nil {
			err = fmt.Errorf("closing migration database: %w", dbErr)
		}
	}()

	switch cmd {
	case MigrateUp:
		if err := m.Up(); err != nil && !errors.Is(err, gomigrate.ErrNoChange) {
			return status, fmt.Errorf("applying migrations: %w", err)
		}
	case MigrateDown:
		if err := m.Down(); err != nil && !errors.Is(err, gomigrate.ErrNoChange) {
			return status, fmt.Errorf("reverting migrations: %w", err)
		}
	case MigrateVersion:
	default:
		return status, fmt.Errorf("unknown migrate command: %s", cmd)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, gomigrate.ErrNilVersion) {
		return MigrationStatus{}, nil
	}
	if err != nil {
		return status, fmt.Errorf("reading schema version: %w", err)
	}

	return MigrationStatus{Version: version, Dirty: dirty}, nil
}

// closeDriver closes a migration driver after a setup failure and returns err.
func closeDriver(driver database.Driver, err error) error {
	if closeErr := driver.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}
