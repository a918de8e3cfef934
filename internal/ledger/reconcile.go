package ledger

import (
	"context"

	"github.com/evcraddock/rent-ledger/internal/property"
)

// ReconcilePropertyOccupancy recomputes a property's status from its
// tenants: Occupied when at least one tenant references it, else Vacant.
// Running it again changes nothing.
func (s *Service) ReconcilePropertyOccupancy(ctx context.Context, id string) (_ *property.Property, err error) {
	defer s.record("reconcile_property", &err)

	var p *property.Property
	err = s.store.InTx(ctx, func(st Store) error {
		var err error
		p, _, err = s.syncOccupancy(ctx, st, id, s.timestamp())
		return err
	})
	if err != nil {
		return nil, classify("reconciling property", err)
	}
	return p, nil
}

// ReconcileAll reconciles every property and returns how many changed.
func (s *Service) ReconcileAll(ctx context.Context) (updated int, err error) {
	defer s.record("reconcile_all", &err)

	err = s.store.InTx(ctx, func(st Store) error {
		list, err := st.Properties().List(ctx)
		if err != nil {
			return &StorageError{Op: "listing properties", Err: err}
		}

		now := s.timestamp()
		for _, p := range list {
			_, changed, err := s.syncOccupancy(ctx, st, p.ID, now)
			if err != nil {
				return err
			}
			if changed {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, classify("reconciling properties", err)
	}
	return updated, nil
}
