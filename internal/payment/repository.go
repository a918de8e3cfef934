package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evcraddock/rent-ledger/internal/db"
)

// Repository provides access to recorded payments. Payments are never
// updated or deleted.
type Repository struct {
	q db.Querier
}

// NewRepository creates a payment repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

const selectColumns = `id, tenant_id, tenant_name, property_id, property_name, amount, date, status, created_at`

// Insert records a new payment.
func (r *Repository) Insert(ctx context.Context, p *Payment) error {
	if !ValidStatus(string(p.Status)) {
		return fmt.Errorf("invalid payment status: %q", p.Status)
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO payments (id, tenant_id, tenant_name, property_id, property_name, amount, date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.TenantName, db.NullString(p.PropertyID), p.PropertyName,
		p.Amount, p.Date, string(p.Status), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

// GetByID returns a payment by its ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE id = ?", selectColumns)
	p, err := scanPayment(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying payment %s: %w", id, err)
	}
	return p, nil
}

// List returns all payments, most recent payment date first.
func (r *Repository) List(ctx context.Context) (payments []*Payment, err error) {
	query := fmt.Sprintf("SELECT %s FROM payments ORDER BY date DESC, created_at DESC, id", selectColumns)
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	payments = []*Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}
