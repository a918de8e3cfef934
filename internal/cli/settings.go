package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rent-ledger/internal/ledger"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change application settings",
	}

	cmd.AddCommand(newSettingsShowCmd(), newSettingsSetCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newAPIClient().GetSettings(cmd.Context())
			if err != nil {
				return err
			}
			return output(cmd.OutOrStdout(), s, func() error {
				return printSettings(cmd.OutOrStdout(), s)
			})
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	var currency string
	var notifications bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the settings",
		Long:  "Change the currency symbol or notification preference. Settings without a flag are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in ledger.SettingsInput
			if cmd.Flags().Changed("currency") {
				in.Currency = &currency
			}
			if cmd.Flags().Changed("notifications") {
				in.Notifications = &notifications
			}
			if in.Currency == nil && in.Notifications == nil {
				return fmt.Errorf("nothing to change: pass --currency or --notifications")
			}

			s, err := newAPIClient().UpdateSettings(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("updating settings: %w", err)
			}
			return output(cmd.OutOrStdout(), s, func() error {
				return printSettings(cmd.OutOrStdout(), s)
			})
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "currency symbol, e.g. ₺ or $")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "enable notifications")
	return cmd
}
