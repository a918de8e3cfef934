package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rent-ledger/internal/ledger"
	"github.com/evcraddock/rent-ledger/internal/money"
	"github.com/evcraddock/rent-ledger/internal/report"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment",
		Aliases: []string{"payments"},
		Short:   "Record and list rent payments",
	}

	cmd.AddCommand(newPaymentListCmd(), newPaymentAddCmd())
	return cmd
}

func newPaymentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List payments, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newAPIClient()
			payments, err := c.ListPayments(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing payments: %w", err)
			}
			return output(cmd.OutOrStdout(), payments, func() error {
				return printPaymentTable(cmd.OutOrStdout(), payments, currencySymbol(cmd.Context(), c))
			})
		},
	}
}

func newPaymentAddCmd() *cobra.Command {
	var in ledger.PaymentInput
	var amount string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment",
		Long:  "Record a payment from a tenant. The tenant's rent status becomes Paid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Amount = ledger.NewAmount(amount)
			if in.Date == "" {
				in.Date = time.Now().Format(report.DateLayout)
			}

			c := newAPIClient()
			p, err := c.CreatePayment(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("recording payment: %w", err)
			}
			return output(cmd.OutOrStdout(), p, func() error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Payment of %s from %s recorded for %s.\n",
					money.Format(p.Amount, currencySymbol(cmd.Context(), c)), p.TenantName, p.Date)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&in.TenantID, "tenant", "", "id of the paying tenant")
	cmd.Flags().StringVar(&amount, "amount", "", "amount paid")
	cmd.Flags().StringVar(&in.Date, "date", "", "payment date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&in.Status, "status", "", "Paid, Pending or Partial (default Paid)")
	return cmd
}
