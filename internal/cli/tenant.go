package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rent-ledger/internal/ledger"
	"github.com/evcraddock/rent-ledger/internal/tenant"
)

func newTenantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tenant",
		Aliases: []string{"tenants"},
		Short:   "Manage tenants",
	}

	cmd.AddCommand(
		newTenantListCmd(),
		newTenantShowCmd(),
		newTenantAddCmd(),
		newTenantUpdateCmd(),
		newTenantRemoveCmd(),
	)
	return cmd
}

func newTenantListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			tenants, err := c.ListTenants(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing tenants: %w", err)
			}
			return output(cmd.OutOrStdout(), tenants, func() error {
				return printTenantTable(cmd.OutOrStdout(), tenants, currencySymbol(cmd.Context(), c))
			})
		},
	}
}

func newTenantShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			t, err := c.GetTenant(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), t, func() error {
				return printTenantSummary(cmd.OutOrStdout(), t, currencySymbol(cmd.Context(), c))
			})
		},
	}
}

func tenantFlags(cmd *cobra.Command, in *ledger.TenantInput, rent *string) {
	cmd.Flags().StringVar(&in.Name, "name", "", "tenant name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.PropertyID, "property", "", "id of the rented property")
	cmd.Flags().StringVar(&in.PropertyName, "property-name", "", "property label when no property id is given")
	cmd.Flags().StringVar(rent, "rent", "", "monthly rent")
	cmd.Flags().StringVar(&in.LeaseStart, "lease-start", "", "lease start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.LeaseEnd, "lease-end", "", "lease end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.RentStatus, "rent-status", "", "Pending or Paid")
}

func newTenantAddCmd() *cobra.Command {
	var in ledger.TenantInput
	var rent string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a tenant",
		Long:  "Add a tenant. Giving --property marks that property Occupied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.MonthlyRent = ledger.NewAmount(rent)

			c := newAPIClient()
			t, err := c.CreateTenant(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("adding tenant: %w", err)
			}
			return output(cmd.OutOrStdout(), t, func() error {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Tenant added."); err != nil {
					return err
				}
				return printTenantSummary(cmd.OutOrStdout(), t, currencySymbol(cmd.Context(), c))
			})
		},
	}

	tenantFlags(cmd, &in, &rent)
	return cmd
}

func newTenantUpdateCmd() *cobra.Command {
	var in ledger.TenantInput
	var rent string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a tenant",
		Long:  "Change the given fields of a tenant. Fields without a flag keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			cur, err := c.GetTenant(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			merged := mergeTenantInput(cur, in, rent, cmd.Flags().Changed)
			t, err := c.UpdateTenant(cmd.Context(), args[0], merged)
			if err != nil {
				return fmt.Errorf("updating tenant: %w", err)
			}
			return output(cmd.OutOrStdout(), t, func() error {
				return printTenantSummary(cmd.OutOrStdout(), t, currencySymbol(cmd.Context(), c))
			})
		},
	}

	tenantFlags(cmd, &in, &rent)
	return cmd
}

// mergeTenantInput starts from cur and applies the flags that were set.
func mergeTenantInput(cur *tenant.Tenant, in ledger.TenantInput, rent string, changed func(string) bool) ledger.TenantInput {
	out := ledger.TenantInput{
		Name:         cur.Name,
		Email:        cur.Email,
		Phone:        cur.Phone,
		PropertyID:   cur.PropertyID,
		PropertyName: cur.PropertyName,
		MonthlyRent:  ledger.AmountOf(cur.MonthlyRent),
		LeaseStart:   cur.LeaseStart,
		LeaseEnd:     cur.LeaseEnd,
	}
	if changed("name") {
		out.Name = in.Name
	}
	if changed("email") {
		out.Email = in.Email
	}
	if changed("phone") {
		out.Phone = in.Phone
	}
	if changed("property") {
		out.PropertyID = in.PropertyID
		out.PropertyName = ""
	}
	if changed("property-name") {
		out.PropertyName = in.PropertyName
	}
	if changed("rent") {
		out.MonthlyRent = ledger.NewAmount(rent)
	}
	if changed("lease-start") {
		out.LeaseStart = in.LeaseStart
	}
	if changed("lease-end") {
		out.LeaseEnd = in.LeaseEnd
	}
	if changed("rent-status") {
		out.RentStatus = in.RentStatus
	}
	return out
}

func newTenantRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a tenant",
		Long:  "Remove a tenant. Their property becomes Vacant when no other tenant rents it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient().DeleteTenant(cmd.Context(), args[0]); err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), map[string]any{"id": args[0], "removed": true}, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Tenant %s removed.\n", args[0])
				return err
			})
		},
	}
}
