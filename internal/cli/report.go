package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [property-id]",
		Short: "Recompute property occupancy from tenants",
		Long:  "Set every property (or the given one) to Occupied when a tenant rents it and Vacant otherwise.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			if len(args) == 1 {
				p, err := c.ReconcileProperty(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return output(cmd.OutOrStdout(), p, func() error {
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "Property %s is %s.\n", p.ID, p.Status)
					return err
				})
			}

			n, err := c.ReconcileAll(cmd.Context())
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), map[string]int{"updated": n}, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d properties updated.\n", n)
				return err
			})
		},
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the portfolio summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newAPIClient().Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), s, func() error {
				return printDashboard(cmd.OutOrStdout(), s)
			})
		},
	}
}

func newLeasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leases",
		Short: "List leases by end date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			leases, err := newAPIClient().Leases(cmd.Context())
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), leases, func() error {
				return printLeaseTable(cmd.OutOrStdout(), leases)
			})
		},
	}
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Income and expense reports",
	}

	cmd.AddCommand(newReportMonthlyCmd(), newReportExpensesCmd())
	return cmd
}

func newReportMonthlyCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly income, expenses and net for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			months, err := c.Monthly(cmd.Context(), year)
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), months, func() error {
				return printMonthlyTable(cmd.OutOrStdout(), year, months, currencySymbol(cmd.Context(), c))
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year")
	return cmd
}

func newReportExpensesCmd() *cobra.Command {
	var year int
	var out string

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Save a pie chart of expenses by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := newAPIClient().ExpenseChart(cmd.Context(), year)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("expenses-%d.png", year)
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Chart saved to %s\n", out)
			return err
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default expenses-<year>.png)")
	return cmd
}
