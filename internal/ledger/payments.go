package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/evcraddock/rent-ledger/internal/db"
	"github.com/evcraddock/rent-ledger/internal/payment"
	"github.com/evcraddock/rent-ledger/internal/tenant"
)

// ListPayments returns every payment, latest payment date first.
func (s *Service) ListPayments(ctx context.Context) (_ []*payment.Payment, err error) {
	defer s.record("list_payments", &err)

	list, err := s.store.Payments().List(ctx)
	if err != nil {
		return nil, &StorageError{Op: "listing payments", Err: err}
	}
	return list, nil
}

// GetPayment returns one payment.
func (s *Service) GetPayment(ctx context.Context, id string) (_ *payment.Payment, err error) {
	defer s.record("get_payment", &err)

	p, err := s.store.Payments().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("reading payment", "payment", id, err)
	}
	return p, nil
}

// CreatePayment records a payment and marks the tenant's rent Paid. The
// amount is not checked against the tenant's rent and repeated payments
// in the same period are allowed.
func (s *Service) CreatePayment(ctx context.Context, in PaymentInput) (_ *payment.Payment, err error) {
	defer s.record("create_payment", &err)

	p, err := in.validate()
	if err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(st Store) error {
		t, err := st.Tenants().GetByID(ctx, p.TenantID)
		if errors.Is(err, db.ErrNotFound) {
			return invalid("tenantId", "refers to unknown tenant %s", p.TenantID)
		}
		if err != nil {
			return &StorageError{Op: "reading tenant", Err: err}
		}

		p.ID = s.newID()
		p.TenantName = t.Name
		p.PropertyID = t.PropertyID
		p.PropertyName = t.PropertyName
		p.CreatedAt = s.timestamp()
		if err := st.Payments().Insert(ctx, p); err != nil {
			return &StorageError{Op: "creating payment", Err: err}
		}

		if err := st.Tenants().UpdateRentStatus(ctx, t.ID, tenant.RentStatusPaid, p.CreatedAt); err != nil {
			log.Error().Err(err).
				Str("payment_id", p.ID).
				Str("tenant_id", t.ID).
				Msg("side effect failed: tenant rent status")
			return &StorageError{Op: "updating rent status", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, classify("creating payment", err)
	}
	return p, nil
}

func (in PaymentInput) validate() (*payment.Payment, error) {
	tenantID, err := required("tenantId", in.TenantID)
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
	status := payment.StatusPaid
	if in.Status != "" {
		status = payment.Status(in.Status)
		if !payment.ValidStatus(in.Status) {
			return nil, invalid("status", "must be one of Paid, Pending, Partial")
		}
	}

	return &payment.Payment{
		TenantID: strings.TrimSpace(tenantID),
		Amount:   amount,
		Date:     date,
		Status:   status,
	}, nil
}
