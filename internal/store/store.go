// Package store binds the entity repositories to one database.
package store

import (
	"context"

	"github.com/evcraddock/rent-ledger/internal/db"
	"github.com/evcraddock/rent-ledger/internal/expense"
	"github.com/evcraddock/rent-ledger/internal/ledger"
	"github.com/evcraddock/rent-ledger/internal/payment"
	"github.com/evcraddock/rent-ledger/internal/property"
	"github.com/evcraddock/rent-ledger/internal/settings"
	"github.com/evcraddock/rent-ledger/internal/tenant"
)

// Store implements ledger.Store on a *db.DB.
type Store struct {
	db   *db.DB
	q    db.Querier
	inTx bool
}

// New creates a store backed by d.
func New(d *db.DB) *Store {
	return &Store{db: d, q: d.Querier()}
}

func (s *Store) Properties() ledger.PropertyRepository { return property.NewRepository(s.q) }
func (s *Store) Tenants() ledger.TenantRepository       { return tenant.NewRepository(s.q) }
func (s *Store) Payments() ledger.PaymentRepository     { return payment.NewRepository(s.q) }
func (s *Store) Expenses() ledger.ExpenseRepository     { return expense.NewRepository(s.q) }
func (s *Store) Settings() ledger.SettingsRepository    { return settings.NewRepository(s.q) }

// InTx runs fn with a Store whose repositories share one transaction.
// Calls made inside a transaction join it.
func (s *Store) InTx(ctx context.Context, fn func(ledger.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.InTx(ctx, func(q db.Querier) error {
		return fn(&Store{db: s.db, q: q, inTx: true})
	})
}
