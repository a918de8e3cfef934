// Package ledger implements the rental ledger: validation, id and timestamp
// assignment, and the rules that keep property occupancy and tenant rent
// status consistent with the tenant and payment records.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/evcraddock/rent-ledger/internal/property"
)

// OperationRecorder counts ledger operations by outcome.
type OperationRecorder interface {
	RecordOperation(operation, result string)
}

// Service provides the ledger operations.
type Service struct {
	store    Store
	recorder OperationRecorder
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets the function that assigns record ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithRecorder reports every operation outcome to r.
func WithRecorder(r OperationRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// NewService creates a ledger service backed by store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp returns the current time in UTC at the precision every
// supported database keeps.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Service) record(op string, err *error) {
	if s.recorder != nil {
		s.recorder.RecordOperation(op, resultOf(*err))
	}
}

// syncOccupancy derives a property's status from its tenants and writes it
// when it differs. Unknown properties are skipped: tenants may reference a
// property that has since been deleted.
func (s *Service) syncOccupancy(ctx context.Context, st Store, propertyID string, at time.Time) (*property.Property, bool, error) {
	p, err := st.Properties().GetByID(ctx, propertyID)
	if err != nil {
		return nil, false, notFoundOr("reading property", "property", propertyID, err)
	}

	n, err := st.Tenants().CountByProperty(ctx, propertyID)
	if err != nil {
		return nil, false, &StorageError{Op: "counting tenants", Err: err}
	}

	want := property.StatusVacant
	if n > 0 {
		want = property.StatusOccupied
	}
	if p.Status == want {
		return p, false, nil
	}

	if err := st.Properties().UpdateStatus(ctx, propertyID, want, at); err != nil {
		return nil, false, &StorageError{Op: "updating property status", Err: err}
	}
	p.Status = want
	p.UpdatedAt = &at
	return p, true, nil
}

// followTenant re-derives occupancy after a tenant write. A failure here is
// a side-effect failure and is logged as such before being returned.
func (s *Service) followTenant(ctx context.Context, st Store, tenantID, propertyID string, at time.Time) error {
	if propertyID == "" {
		return nil
	}
	_, _, err := s.syncOccupancy(ctx, st, propertyID, at)
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nil
	}
	if err != nil {
		log.Error().Err(err).
			Str("tenant_id", tenantID).
			Str("property_id", propertyID).
			Msg("side effect failed: property occupancy")
	}
	return err
}
