package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rent-ledger/internal/config"
	"github.com/evcraddock/rent-ledger/internal/email"
)

func newNotifyCmd() *cobra.Command {
	var to []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Email a reminder about expiring and expired leases",
		Long: `Email a reminder listing leases that have expired or end within 30 days.
Nothing is sent when notifications are turned off in the settings.

SMTP comes from RL_SMTP_HOST, RL_SMTP_PORT, RL_SMTP_USER, RL_SMTP_PASS and
RL_SMTP_FROM. Recipients default to RL_NOTIFY_TO.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			c := newAPIClient()

			s, err := c.GetSettings(cmd.Context())
			if err != nil {
				return err
			}
			if !s.Notifications {
				_, err := fmt.Fprintln(w, "Notifications are turned off.")
				return err
			}

			leases, err := c.Leases(cmd.Context())
			if err != nil {
				return err
			}
			due := email.NeedsAttention(leases)
			if len(due) == 0 {
				_, err := fmt.Fprintln(w, "No leases need attention.")
				return err
			}

			subject := email.ReminderSubject(due)
			body := email.FormatReminder(due)
			if dryRun {
				_, err := fmt.Fprintf(w, "Subject: %s\n\n%s", subject, body)
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(to) == 0 {
				to = cfg.NotifyTo
			}
			if err := email.Send(cfg.SMTP, to, subject, body); err != nil {
				return fmt.Errorf("sending reminder: %w", err)
			}
			_, err = fmt.Fprintf(w, "Reminder sent to %d recipient(s).\n", len(to))
			return err
		},
	}

	cmd.Flags().StringSliceVar(&to, "to", nil, "recipient email addresses (default $RL_NOTIFY_TO)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the reminder instead of sending it")
	return cmd
}
