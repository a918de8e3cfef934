package ledger

import (
	"context"

	"github.com/evcraddock/rent-ledger/internal/property"
)

// ListProperties returns every property, newest first.
func (s *Service) ListProperties(ctx context.Context) (_ []*property.Property, err error) {
	defer s.record("list_properties", &err)

	list, err := s.store.Properties().List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "listing properties", Err: err}
	}
	return list, nil
}

// GetProperty returns one property.
func (s *Service) GetProperty(ctx context.Context, id string) (_ *property.Property, err error) {
	defer s.record("get_property", &err)

	p, err := s.store.Properties().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("reading property", "property", id, err)
	}
	return p, nil
}

// CreateProperty validates in and stores a new property.
func (s *Service) CreateProperty(ctx context.Context, in PropertyInput) (_ *property.Property, err error) {
	defer s.record("create_property", &err)

	p, err := in.validate()
	if err != nil {
		return nil, err
	}
	if p.Status == "" {
		p.Status = property.StatusVacant
	}
	p.ID = s.newID()
	p.CreatedAt = s.timestamp()

	if err := s.store.Properties().Insert(ctx, p); err != nil {
		return nil, &StorageError{Op: "creating property", Err: err}
	}
	return p, nil
}

// UpdateProperty overwrites a property's fields. An omitted status keeps the
// stored one, and a property with tenants stays Occupied whatever status
// is requested.
func (s *Service) UpdateProperty(ctx context.Context, id string, in PropertyInput) (_ *property.Property, err error) {
	defer s.record("update_property", &err)

	p, err := in.validate()
	if err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(st Store) error {
		existing, err := st.Properties().GetByID(ctx, id)
		if err != nil {
			return notFoundOr("reading property", "property", id, err)
		}

		n, err := st.Tenants().CountByProperty(ctx, id)
		if err != nil {
			return &StorageError{Op: "counting tenants", Err: err}
		}

		switch {
		case n > 0:
			p.Status = property.StatusOccupied
		case p.Status == "":
			p.Status = existing.Status
		}

		now := s.timestamp()
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = &now
		if err := st.Properties().Update(ctx, p); err != nil {
			return notFoundOr("updating property", "property", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, classify("updating property", err)
	}
	return p, nil
}

// DeleteProperty removes a property. Unknown ids succeed and tenants that
// reference the property are left alone.
func (s *Service) DeleteProperty(ctx context.Context, id string) (err error) {
	defer s.record("delete_property", &err)

	if err := s.store.Properties().Delete(ctx, id); err != nil {
		return &StorageError{Op: "deleting property", Err: err}
	}
	return nil
}

func (in PropertyInput) validate() (*property.Property, error) {
	name, err := required("name", in.Name)
	if err != nil {
		return nil, err
	}
	address, err := required("address", in.Address)
	if err != nil {
		return nil, err
	}
	if !property.ValidType(in.Type) {
		return nil, invalid("type", "must be one of Apartment, House, Commercial, Studio")
	}
	rent, err := in.MonthlyRent.parse("monthlyRent", true)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && !property.ValidStatus(in.Status) {
		return nil, invalid("status", "must be Vacant or Occupied")
	}

	return &property.Property{
		Name:        name,
		Address:     address,
		Type:        property.Type(in.Type),
		MonthlyRent: rent,
		Status:      property.Status(in.Status),
	}, nil
}
