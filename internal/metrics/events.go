package metrics

import (
	"context"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/event"
	"github.com/osse101/zephyr/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// TrackedEventTypes lists every event type the collector subscribes to
var TrackedEventTypes = []event.Type{
	domain.EventTypeLevelCompleted,
	domain.EventTypeLevelStarted,
	domain.EventTypeXPGranted,
	domain.EventTypeLevelUp,
	domain.EventTypeStarsEarned,
	domain.EventTypeStreakCredited,
	domain.EventTypeStreakShieldUsed,
	domain.EventTypeStreakBroken,
	domain.EventTypeStreakRepaired,
	domain.EventTypeStreakRepairDismissed,
	domain.EventTypeAchievementUnlocked,
	domain.EventTypePurchaseCompleted,
	domain.EventTypeVIPExtended,
	domain.EventTypeConsumableUsed,
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range TrackedEventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case domain.EventTypeLevelCompleted:
		var p domain.LevelCompletedPayload
		if p, err = event.DecodePayload[domain.LevelCompletedPayload](evt.Payload); err == nil && p.FirstTime {
			LevelsCompleted.WithLabelValues(p.Subject).Inc()
		}

	case domain.EventTypeXPGranted:
		var p domain.XPGrantedPayload
		if p, err = event.DecodePayload[domain.XPGrantedPayload](evt.Payload); err == nil {
			XPGranted.WithLabelValues(p.Source).Add(float64(p.Amount))
		}

	case domain.EventTypeLevelUp:
		LevelUps.Inc()

	case domain.EventTypeStarsEarned:
		var p domain.StarsEarnedPayload
		if p, err = event.DecodePayload[domain.StarsEarnedPayload](evt.Payload); err == nil {
			StarsEarned.Add(float64(p.Amount))
		}

	case domain.EventTypeStreakCredited, domain.EventTypeStreakBroken,
		domain.EventTypeStreakRepaired, domain.EventTypeStreakRepairDismissed:
		StreakTransitions.WithLabelValues(string(evt.Type)).Inc()

	case domain.EventTypeStreakShieldUsed:
		var p domain.StreakPayload
		if p, err = event.DecodePayload[domain.StreakPayload](evt.Payload); err == nil {
			StreakTransitions.WithLabelValues(string(evt.Type)).Inc()
			ShieldsConsumed.Add(float64(p.ShieldsUsed))
		}

	case domain.EventTypeAchievementUnlocked:
		var p domain.AchievementUnlockedPayload
		if p, err = event.DecodePayload[domain.AchievementUnlockedPayload](evt.Payload); err == nil {
			AchievementsUnlocked.WithLabelValues(string(p.Achievement)).Inc()
		}

	case domain.EventTypePurchaseCompleted:
		var p domain.PurchaseCompletedPayload
		if p, err = event.DecodePayload[domain.PurchaseCompletedPayload](evt.Payload); err == nil {
			Purchases.WithLabelValues(string(p.Kind), string(p.Status)).Inc()
			if p.Status == domain.StatusPurchased && p.Cost > 0 {
				CurrencySpent.WithLabelValues(string(p.Currency)).Add(float64(p.Cost))
			}
		}

	case domain.EventTypeVIPExtended:
		VIPExtensions.Inc()

	case domain.EventTypeConsumableUsed:
		var p domain.ConsumableUsedPayload
		if p, err = event.DecodePayload[domain.ConsumableUsedPayload](evt.Payload); err == nil {
			ConsumablesUsed.WithLabelValues(string(p.Kind)).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadUnreadable, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
