package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evcraddock/rent-ledger/internal/db"
)

// Repository reads and writes the settings record.
type Repository struct {
	q db.Querier
}

// NewRepository creates a settings repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

// Get returns the settings record, or an error wrapping db.ErrNotFound
// if none has been created yet.
func (r *Repository) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	var updatedAt sql.NullTime
	err := r.q.QueryRowContext(ctx,
		"SELECT id, type, currency, notifications, created_at, updated_at FROM settings WHERE type = ?",
		AppType,
	).Scan(&s.ID, &s.Type, &s.Currency, &s.Notifications, &s.CreatedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settings: %w", db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}

	s.CreatedAt = s.CreatedAt.UTC()
	if updatedAt.Valid {
		u := updatedAt.Time.UTC()
		s.UpdatedAt = &u
	}
	return &s, nil
}

// Insert stores the settings record. The type column is unique, so a
// second insert fails.
func (r *Repository) Insert(ctx context.Context, s *Settings) error {
	_, err := r.q.ExecContext(ctx,
		"INSERT INTO settings (id, type, currency, notifications, created_at) VALUES (?, ?, ?, ?, ?)",
		s.ID, AppType, s.Currency, s.Notifications, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting settings: %w", err)
	}
	return nil
}

// Update overwrites currency and notifications.
func (r *Repository) Update(ctx context.Context, s *Settings) error {
	result, err := r.q.ExecContext(ctx,
		"UPDATE settings SET currency = ?, notifications = ?, updated_at = ? WHERE type = ?",
		s.Currency, s.Notifications, s.UpdatedAt, AppType,
	)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("settings: %w", db.ErrNotFound)
	}
	return nil
}
