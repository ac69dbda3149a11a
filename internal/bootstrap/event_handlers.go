package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/zephyr/internal/event"
	"github.com/osse101/zephyr/internal/logger"
	"github.com/osse101/zephyr/internal/metrics"
)

// RegisterEventHandlers subscribes the metrics collector and the event journal to bus.
// The journal writes every progression event to the structured log at debug level.
func RegisterEventHandlers(bus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	for _, eventType := range metrics.TrackedEventTypes {
		bus.Subscribe(eventType, journalEvent)
	}
	slog.Info(LogMsgEventJournalRegistered, "event_types", len(metrics.TrackedEventTypes))

	return nil
}

func journalEvent(ctx context.Context, evt event.Event) error {
	logger.FromContext(ctx).Debug(LogMsgEventJournaled,
		"type", evt.Type,
		"identity", evt.Identity(),
		"payload", evt.Payload)
	return nil
}
