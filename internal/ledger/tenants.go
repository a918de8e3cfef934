package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/evcraddock/rent-ledger/internal/db"
	"github.com/evcraddock/rent-ledger/internal/report"
	"github.com/evcraddock/rent-ledger/internal/tenant"
)

// ListTenants returns every tenant, newest first.
func (s *Service) ListTenants(ctx context.Context) (_ []*tenant.Tenant, err error) {
	defer s.record("list_tenants", &err)

	list, err := s.store.Tenants().List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "listing tenants", Err: err}
	}
	return list, nil
}

// ListPropertyTenants returns the tenants renting a property, newest first.
func (s *Service) ListPropertyTenants(ctx context.Context, propertyID string) (_ []*tenant.Tenant, err error) {
	defer s.record("list_property_tenants", &err)

	if _, err := s.store.Properties().GetByID(ctx, propertyID); err != nil {
		return nil, notFoundOr("reading property", "property", propertyID, err)
	}
	list, err := s.store.Tenants().ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, &StorageError{Op: "listing tenants", Err: err}
	}
	return list, nil
}

// GetTenant returns one tenant.
func (s *Service) GetTenant(ctx context.Context, id string) (_ *tenant.Tenant, err error) {
	defer s.record("get_tenant", &err)

	t, err := s.store.Tenants().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("reading tenant", "tenant", id, err)
	}
	return t, nil
}

// CreateTenant stores a new tenant and marks its property Occupied.
func (s *Service) CreateTenant(ctx context.Context, in TenantInput) (_ *tenant.Tenant, err error) {
	defer s.record("create_tenant", &err)

	t, err := in.validate()
	if err != nil {
		return nil, err
	}
	if t.RentStatus == "" {
		t.RentStatus = tenant.RentStatusPending
	}

	err = s.store.InTx(ctx, func(st Store) error {
		if err := s.resolveProperty(ctx, st, t, nil, in.PropertyName); err != nil {
			return err
		}

		t.ID = s.newID()
		t.CreatedAt = s.timestamp()
		if err := st.Tenants().Insert(ctx, t); err != nil {
			return &StorageError{Op: "creating tenant", Err: err}
		}

		return s.followTenant(ctx, st, t.ID, t.PropertyID, t.CreatedAt)
	})
	if err != nil {
		return nil, classify("creating tenant", err)
	}
	return t, nil
}

// UpdateTenant overwrites a tenant's fields and re-derives occupancy of
// both the property it now references and the one it left.
func (s *Service) UpdateTenant(ctx context.Context, id string, in TenantInput) (_ *tenant.Tenant, err error) {
	defer s.record("update_tenant", &err)

	t, err := in.validate()
	if err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(st Store) error {
		existing, err := st.Tenants().GetByID(ctx, id)
		if err != nil {
			return notFoundOr("reading tenant", "tenant", id, err)
		}
		if err := s.resolveProperty(ctx, st, t, existing, in.PropertyName); err != nil {
			return err
		}
		if t.RentStatus == "" {
			t.RentStatus = existing.RentStatus
		}

		now := s.timestamp()
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
		t.UpdatedAt = &now
		if err := st.Tenants().Update(ctx, t); err != nil {
			return notFoundOr("updating tenant", "tenant", id, err)
		}

		if err := s.followTenant(ctx, st, t.ID, t.PropertyID, now); err != nil {
			return err
		}
		if existing.PropertyID != t.PropertyID {
			return s.followTenant(ctx, st, t.ID, existing.PropertyID, now)
		}
		return nil
	})
	if err != nil {
		return nil, classify("updating tenant", err)
	}
	return t, nil
}

// DeleteTenant removes a tenant and marks its property Vacant when no other
// tenant references it.
func (s *Service) DeleteTenant(ctx context.Context, id string) (err error) {
	defer s.record("delete_tenant", &err)

	err = s.store.InTx(ctx, func(st Store) error {
		existing, err := st.Tenants().GetByID(ctx, id)
		if err != nil {
			return notFoundOr("reading tenant", "tenant", id, err)
		}
		if err := st.Tenants().Delete(ctx, id); err != nil {
			return notFoundOr("deleting tenant", "tenant", id, err)
		}
		return s.followTenant(ctx, st, id, existing.PropertyID, s.timestamp())
	})
	return classify("deleting tenant", err)
}

// resolveProperty copies the referenced property's name onto t. Without a
// property the caller-supplied name is kept. A reference to a deleted
// property is accepted only when it is unchanged from existing, in which
// case the stored name is kept.
func (s *Service) resolveProperty(ctx context.Context, st Store, t, existing *tenant.Tenant, fallbackName string) error {
	if t.PropertyID == "" {
		t.PropertyName = fallbackName
		return nil
	}

	p, err := st.Properties().GetByID(ctx, t.PropertyID)
	if errors.Is(err, db.ErrNotFound) {
		if existing != nil && existing.PropertyID == t.PropertyID {
			t.PropertyName = existing.PropertyName
			return nil
		}
		return invalid("propertyId", "refers to unknown property %s", t.PropertyID)
	}
	if err != nil {
		return &StorageError{Op: "reading property", Err: err}
	}
	t.PropertyName = p.Name
	return nil
}

func (in TenantInput) validate() (*tenant.Tenant, error) {
	name, err := required("name", in.Name)
	if err != nil {
		return nil, err
	}
	email, err := required("email", in.Email)
	if err != nil {
		return nil, err
	}
	phone, err := required("phone", in.Phone)
	if err != nil {
		return nil, err
	}
	rent, err := in.MonthlyRent.parse("monthlyRent", true)
	if err != nil {
		return nil, err
	}
	start, err := requiredDate("leaseStart", in.LeaseStart)
	if err != nil {
		return nil, err
	}
	end, err := requiredDate("leaseEnd", in.LeaseEnd)
	if err != nil {
		return nil, err
	}
	startAt, _ := report.ParseDate(start)
	endAt, _ := report.ParseDate(end)
	if endAt.Before(startAt) {
		return nil, invalid("leaseEnd", "must not be before leaseStart")
	}
	status := tenant.RentStatus(in.RentStatus)
	if status != "" && !tenant.ValidRentStatus(in.RentStatus) {
		return nil, invalid("rentStatus", "must be Pending or Paid")
	}

	return &tenant.Tenant{
		Name:        name,
		Email:       email,
		Phone:       phone,
		PropertyID:  strings.TrimSpace(in.PropertyID),
		MonthlyRent: rent,
		LeaseStart:  start,
		LeaseEnd:    end,
		RentStatus:  status,
	}, nil
}
