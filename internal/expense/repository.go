package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/evcraddock/rent-ledger/internal/db"
)

// Repository provides CRUD operations for expenses.
type Repository struct {
	q db.Querier
}

// NewRepository creates an expense repository.
func NewRepository(q db.Querier) *Repository {
	return &Repository{q: q}
}

const selectColumns = `id, property_id, property_name, description, amount, date, category, created_at`

// Insert records a new expense.
func (r *Repository) Insert(ctx context.Context, e *Expense) error {
	if !ValidCategory(string(e.Category)) {
		return fmt.Errorf("invalid expense category: %q", e.Category)
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO expenses (id, property_id, property_name, description, amount, date, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, db.NullString(e.PropertyID), e.PropertyName, e.Description,
		e.Amount, e.Date, string(e.Category), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

// GetByID returns an expense by its ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Expense, error) {
	query := fmt.Sprintf("SELECT %s FROM expenses WHERE id = ?", selectColumns)
	e, err := scanExpense(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying expense %s: %w", id, err)
	}
	return e, nil
}

// List returns all expenses, most recent expense date first.
func (r *Repository) List(ctx context.Context) (expenses []*Expense, err error) {
	query := fmt.Sprintf("SELECT %s FROM expenses ORDER BY date DESC, created_at DESC, id", selectColumns)
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	expenses = []*Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, nil
}

// Delete removes an expense by ID. Deleting an unknown ID is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return nil
}
