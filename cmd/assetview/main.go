package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/itamlab/assetview-ui/internal/backend"
	"github.com/itamlab/assetview-ui/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(cfg.IsDev)

	logger.InfoContext(ctx, "starting assetview-ui",
		"addr", cfg.HTTP.Addr,
		"backend", cfg.Backend.BaseURL,
		"dev", cfg.IsDev)

	sessions, closeSessions, err := bootstrap.NewSessionStore(bootstrap.SessionStoreConfig{
		AppConfig: cfg,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	if closeSessions != nil {
		defer func() {
			if cerr := closeSessions(); cerr != nil {
				logger.ErrorContext(ctx, "close session store failed", "error", cerr)
			}
		}()
	}

	client, err := backend.NewClient(backend.Options{
		BaseURL:          cfg.Backend.BaseURL,
		Sessions:         sessions,
		ErrorMessageExpr: cfg.Backend.ErrorMessageExpr,
		Timeout:          cfg.Backend.Timeout,
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	server, err := bootstrap.StartHTTPServer(bootstrap.HTTPServerConfig{
		Config:   cfg,
		Backend:  client,
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	// Block until SIGINT/SIGTERM, then drain in-flight requests.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.InfoContext(ctx, "received shutdown signal", "signal", sig.String())

	return bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
		Context: ctx,
		Server:  server,
		Timeout: cfg.HTTP.ShutdownTimeout,
		Logger:  logger,
	})
}
