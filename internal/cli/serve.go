package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rent-ledger/internal/config"
	"github.com/evcraddock/rent-ledger/internal/ledger"
	"github.com/evcraddock/rent-ledger/internal/logging"
	"github.com/evcraddock/rent-ledger/internal/metrics"
	"github.com/evcraddock/rent-ledger/internal/store"
	"github.com/evcraddock/rent-ledger/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the JSON API server. Configuration comes from the environment or a .env file; --addr and --db override it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "address to listen on")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Setup(cfg.DevMode, cfg.LogLevel)

	database, err := openDB(cfg.DSN())
	if err != nil {
		return err
	}
	defer closeDB(database)

	m := metrics.New()
	svc := ledger.NewService(store.New(database), ledger.WithRecorder(m))
	srv := web.NewServer(svc, m)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Addr)
}
