package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/unitconv/internal/history"
	"github.com/leapstack-labs/unitconv/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter as a JSON HTTP API",
		Long: `Serve the converter as a JSON HTTP API.

Endpoints:
  GET /api/quantities
  GET /api/quantities/{quantity}/units
  GET /api/convert?value=&from=&to=&quantity=
  GET /healthz

Unknown quantities answer 404, unknown units 422 and malformed requests 400.
With --record (or server.record) successful conversions are added to the history.`,
		Example: `  unitconv serve
  unitconv serve --port 9000 --record
  curl 'http://localhost:8080/api/convert?value=1&from=mile&to=km'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	// Read by the config loader as server.port and server.record
	cmd.Flags().Int("port", 0, "Port to listen on (default: 8080)")
	cmd.Flags().Bool("record", false, "Record API conversions in the history")

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store history.Store
	if cfg.Server.Record && cfg.HistoryEnabled {
		s, cleanup, err := cmdCtx.OpenHistory(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		store = s
	}

	srv := server.NewServer(server.Config{
		Converter:       cmdCtx.Converter,
		Store:           store,
		Record:          store != nil,
		DefaultQuantity: cfg.DefaultQuantity,
		Port:            cfg.Server.Port,
		Logger:          cmdCtx.Logger,
	})

	cmdCtx.Renderer.Printf("Serving on http://localhost:%d (Ctrl+C to stop)\n", cfg.Server.Port)
	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
