package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/evcraddock/rent-ledger/internal/db"
)

// Repository provides CRUD operations for tenants.
type Repository struct {
	q db.Querier
}

// NewRepository creates a tenant repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

const selectColumns = `id, name, email, phone, property_id, property_name, monthly_rent, lease_start, lease_end, rent_status, created_at, updated_at`

// Insert stores a new tenant. The caller assigns ID and CreatedAt.
func (r *Repository) Insert(ctx context.Context, t *Tenant) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO tenants
		(id, name, email, phone, property_id, property_name, monthly_rent, lease_start, lease_end, rent_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Email, t.Phone, db.NullString(t.PropertyID), t.PropertyName,
		t.MonthlyRent, t.LeaseStart, t.LeaseEnd, string(t.RentStatus), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting tenant: %w", err)
	}
	return nil
}

// GetByID returns a tenant by its ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Tenant, error) {
	query := fmt.Sprintf("SELECT %s FROM tenants WHERE id = ?", selectColumns)
	t, err := scanTenant(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tenant %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying tenant %s: %w", id, err)
	}
	return t, nil
}

// List returns all tenants, newest first.
func (r *Repository) List(ctx context.Context) ([]*Tenant, error) {
	return r.list(ctx, fmt.Sprintf("SELECT %s FROM tenants ORDER BY created_at DESC, id", selectColumns))
}

// ListByProperty returns the tenants that reference a property, newest first.
func (r *Repository) ListByProperty(ctx context.Context, propertyID string) ([]*Tenant, error) {
	return r.list(ctx,
		fmt.Sprintf("SELECT %s FROM tenants WHERE property_id = ? ORDER BY created_at DESC, id", selectColumns),
		propertyID,
	)
}

// CountByProperty returns how many tenants reference a property.
func (r *Repository) CountByProperty(ctx context.Context, propertyID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM tenants WHERE property_id = ?", propertyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting tenants of property %s: %w", propertyID, err)
	}
	return n, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) (tenants []*Tenant, err error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	tenants = []*Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tenants: %w", err)
	}

	return tenants, nil
}

// Update overwrites the mutable fields of an existing tenant.
func (r *Repository) Update(ctx context.Context, t *Tenant) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE tenants SET name = ?, email = ?, phone = ?, property_id = ?, property_name = ?,
		monthly_rent = ?, lease_start = ?, lease_end = ?, rent_status = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, t.Email, t.Phone, db.NullString(t.PropertyID), t.PropertyName,
		t.MonthlyRent, t.LeaseStart, t.LeaseEnd, string(t.RentStatus), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating tenant: %w", err)
	}
	return expectRow(result, t.ID)
}

// UpdateRentStatus sets the rent status of a tenant.
func (r *Repository) UpdateRentStatus(ctx context.Context, id string, status RentStatus, at time.Time) error {
	if !ValidRentStatus(string(status)) {
		return fmt.Errorf("invalid rent status: %q", status)
	}

	result, err := r.q.ExecContext(ctx,
		"UPDATE tenants SET rent_status = ?, updated_at = ? WHERE id = ?",
		string(status), at, id,
	)
	if err != nil {
		return fmt.Errorf("updating rent status: %w", err)
	}
	return expectRow(result, id)
}

// Delete removes a tenant by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, "DELETE FROM tenants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tenant: %w", err)
	}
	return expectRow(result, id)
}

func expectRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tenant %s: %w", id, db.ErrNotFound)
	}
	return nil
}
