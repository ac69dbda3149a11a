package student

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/zephyr/internal/catalog"
	"github.com/osse101/zephyr/internal/cooldown"
	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/economy"
	"github.com/osse101/zephyr/internal/event"
	"github.com/osse101/zephyr/internal/logger"
	"github.com/osse101/zephyr/internal/metrics"
)

// errNotCharged keeps the purchase window closed for requests that spent nothing
var errNotCharged = errors.New("purchase did not charge")

// Purchase runs validate, debit and grant for req against the student's record.
// Shortfalls and cooldowns are reported in the result; malformed requests and
// unknown catalog ids are errors.
func (s *service) Purchase(ctx context.Context, identity string, req domain.PurchaseRequest) (domain.PurchaseResult, error) {
	ctx = logger.WithIdentity(ctx, identity)
	if err := s.shop.ValidateRequest(req); err != nil {
		return domain.PurchaseResult{}, err
	}
	if req.Kind == domain.PurchaseChallenge {
		if _, ok := s.curriculum.Topic(req.Subject, req.Topic); !ok {
			return domain.PurchaseResult{}, fmt.Errorf(catalog.ErrMsgUnknownTopicFmt, req.Subject, req.Topic, domain.ErrUnknownTopic)
		}
	}
	if s.cooldowns == nil {
		return s.purchase(ctx, identity, req)
	}

	var result domain.PurchaseResult
	err := s.cooldowns.EnforceCooldown(ctx, identity, cooldown.ActionPurchase, func() error {
		var err error
		result, err = s.purchase(ctx, identity, req)
		if err != nil {
			return err
		}
		if result.Status != domain.StatusPurchased {
			return errNotCharged
		}
		return nil
	})

	var onCooldown cooldown.ErrOnCooldown
	switch {
	case err == nil, errors.Is(err, errNotCharged):
		return result, nil
	case errors.As(err, &onCooldown):
		result = domain.PurchaseResult{
			Kind:       req.Kind,
			ItemID:     req.ItemID,
			Status:     domain.StatusOnCooldown,
			RetryAfter: onCooldown.Remaining,
		}
		metrics.Purchases.WithLabelValues(string(req.Kind), string(result.Status)).Inc()
		logger.FromContext(ctx).Info(LogMsgPurchaseOnCooldown, "item", req.ItemID, "retry_after", onCooldown.Remaining)
		return result, nil
	default:
		return domain.PurchaseResult{}, err
	}
}

func (s *service) purchase(ctx context.Context, identity string, req domain.PurchaseRequest) (domain.PurchaseResult, error) {
	var result domain.PurchaseResult
	_, err := s.mutate(ctx, identity, func(next *domain.ProgressionState, now time.Time) ([]event.Event, bool, error) {
		wasVIP := next.IsVIPAt(now)
		res, err := s.shop.Purchase(next, req, now)
		if err != nil {
			return nil, false, err
		}
		result = res
		if !res.Succeeded() {
			return nil, false, nil
		}

		events := []event.Event{
			event.New(domain.EventTypePurchaseCompleted, identity, domain.PurchaseCompletedPayload{
				Identity:      identity,
				TransactionID: res.TransactionID,
				Kind:          res.Kind,
				ItemID:        res.ItemID,
				Status:        res.Status,
				Currency:      res.Currency,
				Cost:          res.Cost,
				Timestamp:     now.Unix(),
			}),
		}
		if res.Kind == domain.PurchaseVIP && res.VIPExpiry != nil {
			events = append(events, event.New(domain.EventTypeVIPExtended, identity, domain.VIPExtendedPayload{
				Identity:  identity,
				PlanID:    res.ItemID,
				AddedDays: s.vipPlanDays(res.ItemID),
				Stacked:   wasVIP,
				ExpiresAt: res.VIPExpiry.Unix(),
				Timestamp: now.Unix(),
			}))
		}
		return events, res.Status != domain.StatusOwned, nil
	})
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	if !result.Succeeded() {
		metrics.Purchases.WithLabelValues(string(result.Kind), string(result.Status)).Inc()
	}
	logger.FromContext(ctx).Info(LogMsgPurchase,
		"kind", result.Kind,
		"item", result.ItemID,
		"status", result.Status,
		"cost", result.Cost,
		"balance", result.Balance)
	return result, nil
}

func (s *service) vipPlanDays(id string) int {
	for _, plan := range s.shop.Catalog().VIPPlans {
		if plan.ID == id {
			return plan.DurationDays
		}
	}
	return 0
}

// UseConsumable spends one charge of kind and reports whether one was held
func (s *service) UseConsumable(ctx context.Context, identity string, kind domain.ConsumableKind) (bool, error) {
	ctx = logger.WithIdentity(ctx, identity)

	var used bool
	_, err := s.mutate(ctx, identity, func(next *domain.ProgressionState, now time.Time) ([]event.Event, bool, error) {
		var err error
		used, err = economy.UseConsumable(next, kind)
		if err != nil || !used {
			return nil, false, err
		}
		return []event.Event{
			event.New(domain.EventTypeConsumableUsed, identity, domain.ConsumableUsedPayload{
				Identity:  identity,
				Kind:      kind,
				Remaining: next.ConsumableCount(kind),
				Timestamp: now.Unix(),
			}),
		}, true, nil
	})
	return used, err
}
