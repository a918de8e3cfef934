package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rent-ledger/internal/ledger"
	"github.com/evcraddock/rent-ledger/internal/money"
	"github.com/evcraddock/rent-ledger/internal/report"
)

func newExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Record and list expenses",
	}

	cmd.AddCommand(newExpenseListCmd(), newExpenseAddCmd(), newExpenseRemoveCmd())
	return cmd
}

func newExpenseListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenses, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			expenses, err := c.ListExpenses(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing expenses: %w", err)
			}
			return output(cmd.OutOrStdout(), expenses, func() error {
				return printExpenseTable(cmd.OutOrStdout(), expenses, currencySymbol(cmd.Context(), c))
			})
		},
	}
}

func newExpenseAddCmd() *cobra.Command {
	var in ledger.ExpenseInput
	var amount string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Amount = ledger.NewAmount(amount)
			if in.Date == "" {
				in.Date = time.Now().Format(report.DateLayout)
			}

			c := newAPIClient()
			e, err := c.CreateExpense(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("recording expense: %w", err)
			}
			return output(cmd.OutOrStdout(), e, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Expense %s recorded: %s (%s, %s).\n",
					e.ID, money.Format(e.Amount, currencySymbol(cmd.Context(), c)), e.Category, e.PropertyName)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&in.PropertyID, "property", "", "id of the property (default: general expense)")
	cmd.Flags().StringVar(&in.Description, "description", "", "what the expense was for")
	cmd.Flags().StringVar(&amount, "amount", "", "amount spent")
	cmd.Flags().StringVar(&in.Date, "date", "", "expense date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&in.Category, "category", "", "Maintenance, Repair, Utilities, Insurance, Tax or Other")
	return cmd
}

func newExpenseRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPIClient().DeleteExpense(cmd.Context(), args[0]); err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), map[string]any{"id": args[0], "removed": true}, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Expense %s removed.\n", args[0])
				return err
			})
		},
	}
}
