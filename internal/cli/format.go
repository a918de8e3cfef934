package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/rent-ledger/internal/expense"
	"github.com/evcraddock/rent-ledger/internal/money"
	"github.com/evcraddock/rent-ledger/internal/payment"
	"github.com/evcraddock/rent-ledger/internal/property"
	"github.com/evcraddock/rent-ledger/internal/report"
	"github.com/evcraddock/rent-ledger/internal/settings"
	"github.com/evcraddock/rent-ledger/internal/tenant"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes a header, a separator and rows through a tabwriter.
func printTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	line := func(cells []string) error {
		for i, c := range cells {
			sep := "\t"
			if i == len(cells)-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprint(tw, c+sep); err != nil {
				return err
			}
		}
		return nil
	}

	if err := line(header); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	dashes := make([]string, len(header))
	for i, h := range header {
		dashes[i] = strings.Repeat("-", len(h))
	}
	if err := line(dashes); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}
	for _, r := range rows {
		if err := line(r); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

func printPropertyTable(w io.Writer, props []*property.Property, symbol string) error {
	if len(props) == 0 {
		_, err := fmt.Fprintln(w, "No properties found.")
		return err
	}

	rows := make([][]string, 0, len(props))
	for _, p := range props {
		rows = append(rows, []string{
			p.ID, truncate(p.Name, 30), string(p.Type), money.Format(p.MonthlyRent, symbol), string(p.Status),
		})
	}
	if err := printTable(w, []string{"ID", "NAME", "TYPE", "RENT", "STATUS"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d properties\n", len(props))
	return err
}

func printPropertySummary(w io.Writer, p *property.Property, symbol string) error {
	_, err := fmt.Fprintf(w, "Property %s\n  Name:     %s\n  Address:  %s\n  Type:     %s\n  Rent:     %s\n  Status:   %s\n",
		p.ID, p.Name, p.Address, p.Type, money.Format(p.MonthlyRent, symbol), p.Status)
	return err
}

// printPropertyTenants lists the tenants of one property under its summary.
func printPropertyTenants(w io.Writer, tenants []*tenant.Tenant, symbol string) error {
	if len(tenants) == 0 {
		_, err := fmt.Fprintln(w, "  Tenants:  none")
		return err
	}
	if _, err := fmt.Fprintln(w, "  Tenants:"); err != nil {
		return err
	}
	for _, t := range tenants {
		if _, err := fmt.Fprintf(w, "    - %s (%s, lease ends %s, %s)\n",
			t.Name, money.Format(t.MonthlyRent, symbol), t.LeaseEnd, t.RentStatus); err != nil {
			return err
		}
	}
	return nil
}

func printTenantTable(w io.Writer, tenants []*tenant.Tenant, symbol string) error {
	if len(tenants) == 0 {
		_, err := fmt.Fprintln(w, "No tenants found.")
		return err
	}

	rows := make([][]string, 0, len(tenants))
	for _, t := range tenants {
		prop := t.PropertyName
		if prop == "" {
			prop = "-"
		}
		rows = append(rows, []string{
			t.ID, truncate(t.Name, 24), truncate(prop, 24), money.Format(t.MonthlyRent, symbol), t.LeaseEnd, string(t.RentStatus),
		})
	}
	if err := printTable(w, []string{"ID", "NAME", "PROPERTY", "RENT", "LEASE END", "RENT STATUS"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d tenants\n", len(tenants))
	return err
}

func printTenantSummary(w io.Writer, t *tenant.Tenant, symbol string) error {
	_, err := fmt.Fprintf(w, "Tenant %s\n  Name:     %s\n  Email:    %s\n  Phone:    %s\n  Property: %s\n  Rent:     %s\n  Lease:    %s to %s\n  Status:   %s\n",
		t.ID, t.Name, t.Email, t.Phone, t.PropertyName, money.Format(t.MonthlyRent, symbol), t.LeaseStart, t.LeaseEnd, t.RentStatus)
	return err
}

func printPaymentTable(w io.Writer, payments []*payment.Payment, symbol string) error {
	if len(payments) == 0 {
		_, err := fmt.Fprintln(w, "No payments recorded.")
		return err
	}

	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			p.Date, truncate(p.TenantName, 24), truncate(p.PropertyName, 24), money.Format(p.Amount, symbol), string(p.Status),
		})
	}
	return printTable(w, []string{"DATE", "TENANT", "PROPERTY", "AMOUNT", "STATUS"}, rows)
}

func printExpenseTable(w io.Writer, expenses []*expense.Expense, symbol string) error {
	if len(expenses) == 0 {
		_, err := fmt.Fprintln(w, "No expenses recorded.")
		return err
	}

	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.ID, e.Date, truncate(e.Description, 30), truncate(e.PropertyName, 24), string(e.Category), money.Format(e.Amount, symbol),
		})
	}
	return printTable(w, []string{"ID", "DATE", "DESCRIPTION", "PROPERTY", "CATEGORY", "AMOUNT"}, rows)
}

func printSettings(w io.Writer, s *settings.Settings) error {
	notify := "off"
	if s.Notifications {
		notify = "on"
	}
	_, err := fmt.Fprintf(w, "Currency:       %s\nNotifications:  %s\n", s.Currency, notify)
	return err
}

func printLeaseTable(w io.Writer, leases []report.Lease) error {
	if len(leases) == 0 {
		_, err := fmt.Fprintln(w, "No leases found.")
		return err
	}

	rows := make([][]string, 0, len(leases))
	for _, l := range leases {
		rows = append(rows, []string{
			truncate(l.TenantName, 24), truncate(l.PropertyName, 24), l.LeaseEnd, string(l.State), describeExpiry(l.Expiry),
		})
	}
	return printTable(w, []string{"TENANT", "PROPERTY", "LEASE END", "STATE", "DAYS"}, rows)
}

// describeExpiry renders days remaining or overdue.
func describeExpiry(e report.Expiry) string {
	if e.State == report.LeaseExpired {
		return fmt.Sprintf("%d overdue", e.Days)
	}
	return fmt.Sprintf("%d left", e.Days)
}

func printMonthlyTable(w io.Writer, year int, months []report.MonthTotal, symbol string) error {
	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{
			m.Label, money.Format(m.Income, symbol), money.Format(m.Expenses, symbol), money.Format(m.Net, symbol),
		})
	}
	if _, err := fmt.Fprintf(w, "Monthly totals for %d\n\n", year); err != nil {
		return err
	}
	return printTable(w, []string{"MONTH", "INCOME", "EXPENSES", "NET"}, rows)
}

func printDashboard(w io.Writer, s *report.Summary) error {
	_, err := fmt.Fprintf(w,
		"Properties:       %d (%d occupied, %d vacant)\n"+
			"Tenants:          %d (%d pending rent)\n"+
			"Monthly income:   %s\n"+
			"Rent due:         %s\n"+
			"Expenses (month): %s\n"+
			"Net income:       %s\n"+
			"Leases:           %d expiring, %d expired\n",
		s.TotalProperties, s.OccupiedProperties, s.VacantProperties,
		s.TotalTenants, s.PendingTenants,
		money.Format(s.MonthlyIncome, s.Currency),
		money.Format(s.RentDue, s.Currency),
		money.Format(s.MonthlyExpenses, s.Currency),
		money.Format(s.NetIncome, s.Currency),
		s.ExpiringLeases, s.ExpiredLeases,
	)
	return err
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
