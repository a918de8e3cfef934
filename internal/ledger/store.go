package ledger

import (
	"context"
	"time"

	"github.com/evcraddock/rent-ledger/internal/expense"
	"github.com/evcraddock/rent-ledger/internal/payment"
	"github.com/evcraddock/rent-ledger/internal/property"
	"github.com/evcraddock/rent-ledger/internal/settings"
	"github.com/evcraddock/rent-ledger/internal/tenant"
)

// PropertyRepository persists properties.
type PropertyRepository interface {
	Insert(ctx context.Context, p *property.Property) error
	GetByID(ctx context.Context, id string) (*property.Property, error)
	List(ctx context.Context) ([]*property.Property, error)
	Update(ctx context.Context, p *property.Property) error
	UpdateStatus(ctx context.Context, id string, status property.Status, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// TenantRepository persists tenants.
type TenantRepository interface {
	Insert(ctx context.Context, t *tenant.Tenant) error
	GetByID(ctx context.Context, id string) (*tenant.Tenant, error)
	List(ctx context.Context) ([]*tenant.Tenant, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*tenant.Tenant, error)
	CountByProperty(ctx context.Context, propertyID string) (int, error)
	Update(ctx context.Context, t *tenant.Tenant) error
	UpdateRentStatus(ctx context.Context, id string, status tenant.RentStatus, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// PaymentRepository persists payments.
type PaymentRepository interface {
	Insert(ctx context.Context, p *payment.Payment) error
	GetByID(ctx context.Context, id string) (*payment.Payment, error)
	List(ctx context.Context) ([]*payment.Payment, error)
}

// ExpenseRepository persists expenses.
type ExpenseRepository interface {
	Insert(ctx context.Context, e *expense.Expense) error
	GetByID(ctx context.Context, id string) (*expense.Expense, error)
	List(ctx context.Context) ([]*expense.Expense, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository persists the settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*settings.Settings, error)
	Insert(ctx context.Context, s *settings.Settings) error
	Update(ctx context.Context, s *settings.Settings) error
}

// Store gives the service access to every repository. Repositories handed
// out by the Store passed to an InTx callback share that transaction.
type Store interface {
	Properties() PropertyRepository
	Tenants() TenantRepository
	Payments() PaymentRepository
	Expenses() ExpenseRepository
	Settings() SettingsRepository
	InTx(ctx context.Context, fn func(Store) error) error
}
