package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/magic-finder/magic-finder/internal/infrastructure/api"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve card resolution over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(ctx context.Context, addr string) error {
	return withInternalDeps(func(d *internalDeps) error {
		if addr == "" {
			addr = d.Config.Server.Addr
		}
		if err := d.store.CheckPopulated(ctx); err != nil {
			d.Logger.Warn("serving without a populated database", "error", err)
		}

		metrics := api.NewMetrics()
		server := api.NewServer(addr, d.Logger, metrics)
		api.NewCatalogRouter(d.store, d.resolver, d.display, d.CompleteHandler, metrics, d.Logger).Mount(server.Router())

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	})
}
