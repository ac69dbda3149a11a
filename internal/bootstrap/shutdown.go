package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/zephyr/internal/event"
	"github.com/osse101/zephyr/internal/server"
	"github.com/osse101/zephyr/internal/student"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	StudentService     student.Service
	ResilientPublisher *event.ResilientPublisher
	Backend            *Backend
}

// GracefulShutdown stops the application in dependency order:
// 1. Ops server (stop answering probes)
// 2. Student service (drain pending snapshots to the backend)
// 3. Event publisher (flush retries and dead letters)
// 4. Backend connections
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.StudentService != nil {
		shutdownService(ctx, ServiceNameStudent, components.StudentService)
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Backend != nil {
		if err := components.Backend.Close(); err != nil {
			slog.Error(LogMsgBackendCloseFailed, "backend", components.Backend.Name, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
