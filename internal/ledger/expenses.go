package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/evcraddock/rent-ledger/internal/db"
	"github.com/evcraddock/rent-ledger/internal/expense"
)

// ListExpenses returns every expense, latest expense date first.
func (s *Service) ListExpenses(ctx context.Context) (_ []*expense.Expense, err error) {
	defer s.record("list_expenses", &err)

	list, err := s.store.Expenses().List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "listing expenses", Err: err}
	}
	return list, nil
}

// CreateExpense records an expense against a property, or against the
// portfolio in general when no property is given.
func (s *Service) CreateExpense(ctx context.Context, in ExpenseInput) (_ *expense.Expense, err error) {
	defer s.record("create_expense", &err)

	e, err := in.validate()
	if err != nil {
		return nil, err
	}

	e.PropertyName = expense.GeneralPropertyName
	if e.PropertyID != "" {
		p, err := s.store.Properties().GetByID(ctx, e.PropertyID)
		if errors.Is(err, db.ErrNotFound) {
			return nil, invalid("propertyId", "refers to unknown property %s", e.PropertyID)
		}
		if err != nil {
			return nil, &StorageError{Op: "reading property", Err: err}
		}
		e.PropertyName = p.Name
	}

	e.ID = s.newID()
	e.CreatedAt = s.timestamp()
	if err := s.store.Expenses().Insert(ctx, e); err != nil {
		return nil, &StorageError{Op: "creating expense", Err: err}
	}
	return e, nil
}

// DeleteExpense removes an expense. Unknown ids succeed.
func (s *Service) DeleteExpense(ctx context.Context, id string) (err error) {
	defer s.record("delete_expense", &err)

	if err := s.store.Expenses().Delete(ctx, id); err != nil {
		return &StorageError{Op: "deleting expense", Err: err}
	}
	return nil
}

func (in ExpenseInput) validate() (*expense.Expense, error) {
	description, err := required("description", in.Description)
	if err != nil {
		return nil, err
	}
	amount, err := in.Amount.parse("amount", false)
	if err != nil {
		return nil, err
	}
	date, err := requiredDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	category := expense.Category(in.Category)
	if !expense.ValidCategory(in.Category) {
		return nil, invalid("category", "must be one of Maintenance, Repair, Utilities, Insurance, Tax, Other")
	}

	return &expense.Expense{
		PropertyID:  strings.TrimSpace(in.PropertyID),
		Description: description,
		Amount:      amount,
		Date:        date,
		Category:    category,
	}, nil
}
