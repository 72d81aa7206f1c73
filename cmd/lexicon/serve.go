package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/lexicon/internal/config"
	"github.com/at-ishikawa/lexicon/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	var address string

	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve dictionary lookups over Connect RPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Server.Address = address
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			return serve(ctx, cfg)
		},
	}

	command.Flags().StringVar(&address, "address", "", "address to listen on. Defaults to server.address in the config")
	return command
}

func newServeHandler(cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(server.NewLookupServiceHandler(server.NewLookupHandler(newReader(cfg))))
	return server.WithCORS(h2c.NewHandler(mux, &http2.Server{}), cfg.Server.AllowedOrigin)
}

func serve(ctx context.Context, cfg *config.Config) error {
	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           newServeHandler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Default().Info("starting server", "address", cfg.Server.Address)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("httpServer.ListenAndServe > %w", err)
	case <-ctx.Done():
	}

	slog.Default().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpServer.Shutdown > %w", err)
	}
	return nil
}
