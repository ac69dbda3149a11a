package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/osse101/zephyr/internal/config"
	"github.com/osse101/zephyr/internal/event"
)

// eventSettings are the publisher knobs after defaults have been applied
type eventSettings struct {
	maxRetries     int
	retryDelay     time.Duration
	deadLetterPath string
}

func resolveEventSettings(cfg *config.Config) eventSettings {
	s := eventSettings{
		maxRetries:     EventDefaultMaxRetries,
		retryDelay:     EventDefaultRetryDelay,
		deadLetterPath: EventDefaultDeadLetterPath,
	}
	if cfg.EventMaxRetries > 0 {
		s.maxRetries = cfg.EventMaxRetries
	}
	if cfg.EventRetryDelay > 0 {
		s.retryDelay = cfg.EventRetryDelay
	}
	if cfg.DeadLetterPath != "" {
		s.deadLetterPath = cfg.DeadLetterPath
	}
	return s
}

// InitializeEventSystem creates the in-process bus and the publisher that retries
// failed handlers before dead-lettering the event.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	s := resolveEventSettings(cfg)

	if err := os.MkdirAll(filepath.Dir(s.deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, s.maxRetries, s.retryDelay, s.deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", s.maxRetries,
		"retry_delay", s.retryDelay,
		"deadletter_path", s.deadLetterPath)
	return bus, publisher, nil
}
