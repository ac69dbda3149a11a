package main

import (
	"context"

	"github.com/osse101/zephyr/internal/bootstrap"
	"github.com/osse101/zephyr/internal/config"
)

// session is an opened backend with the engine built on top of it
type session struct {
	cfg     *config.Config
	backend *bootstrap.Backend
	engine  *bootstrap.Engine
}

func openBackend(ctx context.Context) (*config.Config, *bootstrap.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	backend, err := bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, backend, nil
}

// openSession builds the engine without the event system, so progression
// events go to an unobserved in-process bus.
func openSession(ctx context.Context) (*session, error) {
	cfg, backend, err := openBackend(ctx)
	if err != nil {
		return nil, err
	}
	engine, err := bootstrap.BuildEngine(cfg, backend, nil, nil)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return &session{cfg: cfg, backend: backend, engine: engine}, nil
}

// close drains pending writes before releasing the backend
func (s *session) close(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, config.ShutdownTimeout)
	defer cancel()
	err := s.engine.Student.Shutdown(shutdownCtx)
	if cerr := s.backend.Close(); err == nil {
		err = cerr
	}
	return err
}
