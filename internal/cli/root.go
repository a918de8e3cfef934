// Package cli defines the cobra command tree for rent-ledger.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rent-ledger/internal/client"
	"github.com/evcraddock/rent-ledger/internal/db"
	"github.com/evcraddock/rent-ledger/internal/money"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rl",
		Short:         "Track rental properties, tenants, rent and expenses",
		Long:          "A small ledger for rental properties. Record properties, tenants, rent payments and expenses, and review occupancy, leases and monthly totals from the CLI or the JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite path or postgres:// URL (default: $DATABASE_URL, $RL_DB_PATH or ~/.rent-ledger/ledger.db)")

	root.AddCommand(
		newPropertyCmd(),
		newTenantCmd(),
		newPaymentCmd(),
		newExpenseCmd(),
		newSettingsCmd(),
		newReconcileCmd(),
		newDashboardCmd(),
		newLeasesCmd(),
		newReportCmd(),
		newNotifyCmd(),
		newServeCmd(),
		newMigrateCmd(),
		newConfigCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the rent-ledger API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// openDB opens the database named by --db, falling back to fallback.
func openDB(fallback string) (*db.DB, error) {
	dsn := flagDB
	if dsn == "" {
		dsn = fallback
	}
	return db.Open(dsn)
}

// closeDB closes the database, reporting any error to stderr.
func closeDB(database *db.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}

// currencySymbol returns the configured currency, or the default when the
// settings cannot be read.
func currencySymbol(ctx context.Context, c *client.Client) string {
	s, err := c.GetSettings(ctx)
	if err != nil || s.Currency == "" {
		return money.DefaultSymbol
	}
	return s.Currency
}

// output writes either JSON or the text rendering of v.
func output(w io.Writer, v any, text func() error) error {
	if isJSON() {
		return printJSON(w, v)
	}
	return text()
}
