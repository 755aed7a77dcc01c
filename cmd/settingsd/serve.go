package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const defaultShutdownTimeout = 15 * time.Second

func newServeCmd(ec *execContext) *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API server",
		SilenceUsage: true,
		Example: `  # Start with ./config/config.yaml:
  settingsd serve

  # Override the listen port:
  settingsd serve --port 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				ec.Config.Server.Port = port
			}
			return runServer(cmd.Context(), ec)
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	return serveCmd
}

func runServer(ctx context.Context, ec *execContext) (err error) {
	cfg, log := ec.Config, ec.Logger

	stack, err := bootstrapRuntime(ctx, cfg, log)
	if err != nil {
		return err
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err = multierr.Append(err, stack.Shutdown(stopCtx))
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           stack.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	if err, ok := <-serverErr; ok && err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
