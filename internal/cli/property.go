package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rent-ledger/internal/ledger"
	"github.com/evcraddock/rent-ledger/internal/property"
)

func newPropertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "property",
		Aliases: []string{"properties"},
		Short:   "Manage properties",
	}

	cmd.AddCommand(
		newPropertyListCmd(),
		newPropertyShowCmd(),
		newPropertyAddCmd(),
		newPropertyUpdateCmd(),
		newPropertyRemoveCmd(),
	)
	return cmd
}

func newPropertyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			props, err := c.ListProperties(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing properties: %w", err)
			}
			return output(cmd.OutOrStdout(), props, func() error {
				return printPropertyTable(cmd.OutOrStdout(), props, currencySymbol(cmd.Context(), c))
			})
		},
	}
}

func newPropertyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			p, err := c.GetProperty(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), p, func() error {
				tenants, err := c.ListPropertyTenants(cmd.Context(), p.ID)
				if err != nil {
					return fmt.Errorf("listing tenants: %w", err)
				}
				symbol := currencySymbol(cmd.Context(), c)
				if err := printPropertySummary(cmd.OutOrStdout(), p, symbol); err != nil {
					return err
				}
				return printPropertyTenants(cmd.OutOrStdout(), tenants, symbol)
			})
		},
	}
}

// propertyFlags binds the property input fields to cmd's flags.
func propertyFlags(cmd *cobra.Command, in *ledger.PropertyInput, rent *string) {
	cmd.Flags().StringVar(&in.Name, "name", "", "property name")
	cmd.Flags().StringVar(&in.Address, "address", "", "street address")
	cmd.Flags().StringVar(&in.Type, "type", "", "Apartment, House, Commercial or Studio")
	cmd.Flags().StringVar(rent, "rent", "", "monthly rent")
	cmd.Flags().StringVar(&in.Status, "status", "", "Vacant or Occupied")
}

func newPropertyAddCmd() *cobra.Command {
	var in ledger.PropertyInput
	var rent string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.MonthlyRent = ledger.NewAmount(rent)

			c := newAPIClient()
			p, err := c.CreateProperty(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("adding property: %w", err)
			}
			return output(cmd.OutOrStdout(), p, func() error {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Property added."); err != nil {
					return err
				}
				return printPropertySummary(cmd.OutOrStdout(), p, currencySymbol(cmd.Context(), c))
			})
		},
	}

	propertyFlags(cmd, &in, &rent)
	return cmd
}

func newPropertyUpdateCmd() *cobra.Command {
	var in ledger.PropertyInput
	var rent string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a property",
		Long:  "Change the given fields of a property. Fields without a flag keep their current values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			cur, err := c.GetProperty(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			merged := mergePropertyInput(cur, in, rent, cmd.Flags().Changed)
			p, err := c.UpdateProperty(cmd.Context(), args[0], merged)
			if err != nil {
				return fmt.Errorf("updating property: %w", err)
			}
			return output(cmd.OutOrStdout(), p, func() error {
				return printPropertySummary(cmd.OutOrStdout(), p, currencySymbol(cmd.Context(), c))
			})
		},
	}

	propertyFlags(cmd, &in, &rent)
	return cmd
}

// mergePropertyInput starts from cur and applies the flags that were set.
func mergePropertyInput(cur *property.Property, in ledger.PropertyInput, rent string, changed func(string) bool) ledger.PropertyInput {
	out := ledger.PropertyInput{
		Name:        cur.Name,
		Address:     cur.Address,
		Type:        string(cur.Type),
		MonthlyRent: ledger.AmountOf(cur.MonthlyRent),
	}
	if changed("name") {
		out.Name = in.Name
	}
	if changed("address") {
		out.Address = in.Address
	}
	if changed("type") {
		out.Type = in.Type
	}
	if changed("rent") {
		out.MonthlyRent = ledger.NewAmount(rent)
	}
	if changed("status") {
		out.Status = in.Status
	}
	return out
}

func newPropertyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a property",
		Long:  "Remove a property. Tenants, payments and expenses that reference it are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient().DeleteProperty(cmd.Context(), args[0]); err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), map[string]any{"id": args[0], "removed": true}, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Property %s removed.\n", args[0])
				return err
			})
		},
	}
}
