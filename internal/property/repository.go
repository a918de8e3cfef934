package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evcraddock/rent-ledger/internal/db"
)

// Repository provides CRUD operations for properties.
type Repository struct {
	q db.Querier
}

// NewRepository creates a property repository on top of q, which may be
// the connection pool or a transaction.
func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

const selectColumns = `id, name, address, type, monthly_rent, status, created_at, updated_at`

// Insert stores a new property. The caller assigns ID and CreatedAt.
func (r *Repository) Insert(ctx context.Context, p *Property) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO properties (id, name, address, type, monthly_rent, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Address, string(p.Type), p.MonthlyRent, string(p.Status), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}
	return nil
}

// GetByID returns a property by its ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = ?", selectColumns)
	p, err := scanProperty(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("property %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying property %s: %w", id, err)
	}
	return p, nil
}

// List returns all properties, newest first.
func (r *Repository) List(ctx context.Context) (properties []*Property, err error) {
	query := fmt.Sprintf("SELECT %s FROM properties ORDER BY created_at DESC, id", selectColumns)
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	properties = []*Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}

	return properties, nil
}

// Update overwrites the mutable fields of an existing property.
func (r *Repository) Update(ctx context.Context, p *Property) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE properties SET name = ?, address = ?, type = ?, monthly_rent = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Address, string(p.Type), p.MonthlyRent, string(p.Status), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}
	return expectRow(result, p.ID)
}

// UpdateStatus sets the occupancy status of a property.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error {
	if !ValidStatus(string(status)) {
		return fmt.Errorf("invalid property status: %s", status)
	}

	result, err := r.q.ExecContext(ctx,
		"UPDATE properties SET status = ?, updated_at = ? WHERE id = ?",
		string(status), at, id,
	)
	if err != nil {
		return fmt.Errorf("updating property status: %w", err)
	}
	return expectRow(result, id)
}

// Delete removes a property by ID. Deleting an unknown ID is not an error
// and tenants that reference the property are left in place.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}
	return nil
}

func expectRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %s: %w", id, db.ErrNotFound)
	}
	return nil
}
