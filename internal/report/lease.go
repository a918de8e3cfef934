// Package report derives display metrics from ledger records: lease
// expiry, monthly income and expense totals, the dashboard summary, and
// the expense breakdown chart. Nothing here is persisted.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/evcraddock/rent-ledger/internal/tenant"
)

// ExpiringWindowDays is how close a lease end must be to count as expiring.
const ExpiringWindowDays = 30

// LeaseState classifies a lease relative to now.
type LeaseState string

const (
	LeaseActive   LeaseState = "active"
	LeaseExpiring LeaseState = "expiring"
	LeaseExpired  LeaseState = "expired"
)

// Expiry is a lease classification. Days counts days remaining for active
// and expiring leases and days overdue for expired ones.
type Expiry struct {
	State LeaseState `json:"state"`
	Days  int        `json:"days"`
}

// LeaseExpiry classifies a lease ending at leaseEnd. Days remaining is
// the difference rounded up to whole days.
func LeaseExpiry(leaseEnd, now time.Time) Expiry {
	days := int(math.Ceil(leaseEnd.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return Expiry{State: LeaseExpired, Days: -days}
	case days <= ExpiringWindowDays:
		return Expiry{State: LeaseExpiring, Days: days}
	default:
		return Expiry{State: LeaseActive, Days: days}
	}
}

// Lease is one tenant's lease classification.
type Lease struct {
	TenantID     string `json:"tenantId"`
	TenantName   string `json:"tenantName"`
	PropertyID   string `json:"propertyId"`
	PropertyName string `json:"propertyName"`
	LeaseEnd     string `json:"leaseEnd"`
	Expiry
}

// Leases classifies every tenant's lease, soonest end first. Tenants whose
// lease end does not parse are left out.
func Leases(tenants []*tenant.Tenant, now time.Time) []Lease {
	type dated struct {
		lease Lease
		end   time.Time
	}

	var rows []dated
	for _, t := range tenants {
		end, err := ParseDate(t.LeaseEnd)
		if err != nil {
			continue
		}
		rows = append(rows, dated{
			lease: Lease{
				TenantID:     t.ID,
				TenantName:   t.Name,
				PropertyID:   t.PropertyID,
				PropertyName: t.PropertyName,
				LeaseEnd:     t.LeaseEnd,
				Expiry:       LeaseExpiry(end, now),
			},
			end: end,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].end.Before(rows[j].end) })

	leases := make([]Lease, 0, len(rows))
	for _, r := range rows {
		leases = append(leases, r.lease)
	}
	return leases
}
