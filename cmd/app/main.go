package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/zephyr/internal/bootstrap"
	"github.com/osse101/zephyr/internal/config"
	"github.com/osse101/zephyr/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "zephyr: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		// Defaults still apply when the .env schema is missing
		slog.Warn("Environment validation failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		_ = backend.Close()
		return err
	}
	if err := bootstrap.RegisterEventHandlers(bus); err != nil {
		_ = backend.Close()
		return err
	}

	engine, err := bootstrap.BuildEngine(cfg, backend, publisher, nil)
	if err != nil {
		_ = backend.Close()
		return err
	}

	srv := server.NewServer(cfg.Port, engine.Store, cfg.Version)
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Ops server listening", "addr", srv.Addr())
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err = <-serverErr:
		if err != nil {
			slog.Error("Ops server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		StudentService:     engine.Student,
		ResilientPublisher: publisher,
		Backend:            backend,
	})
	return err
}
