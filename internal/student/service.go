// Package student is the engine facade: every operation loads the student's
// snapshot, applies one state transition to a copy under the student's lock,
// replaces the snapshot, queues it for persistence and then publishes events.
package student

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/zephyr/internal/achievement"
	"github.com/osse101/zephyr/internal/catalog"
	"github.com/osse101/zephyr/internal/clock"
	"github.com/osse101/zephyr/internal/concurrency"
	"github.com/osse101/zephyr/internal/cooldown"
	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/economy"
	"github.com/osse101/zephyr/internal/event"
	"github.com/osse101/zephyr/internal/logger"
	"github.com/osse101/zephyr/internal/store"
	"github.com/osse101/zephyr/internal/streak"
	"github.com/osse101/zephyr/internal/unlock"
)

// Service defines the progression and economy operations of one student
type Service interface {
	// Progression
	ReportLevelCompleted(ctx context.Context, identity string, key domain.LevelKey, xpAwarded int) (*LevelCompletion, error)
	ReportLevelStarted(ctx context.Context, identity string, key domain.LevelKey) (bool, error)
	ReportXPGranted(ctx context.Context, identity string, amount int, source string) (*XPAward, error)
	ReportStarsEarned(ctx context.Context, identity string, amount int) (int, error)

	// Streak
	RepairStreak(ctx context.Context, identity string) (streak.RepairResult, error)
	DismissRepairOffer(ctx context.Context, identity string) (bool, error)

	// Economy
	Purchase(ctx context.Context, identity string, req domain.PurchaseRequest) (domain.PurchaseResult, error)
	UseConsumable(ctx context.Context, identity string, kind domain.ConsumableKind) (bool, error)

	// Read-only accessors
	IsVip(ctx context.Context, identity string) (bool, error)
	IsLevelUnlocked(ctx context.Context, identity string, key domain.LevelKey) (bool, error)
	LevelsDone(ctx context.Context, identity, subject, topic string) (int, error)
	GetState(ctx context.Context, identity string) (*domain.ProgressionState, error)

	// Lifecycle
	EndSession(ctx context.Context, identity string) error
	Shutdown(ctx context.Context) error
}

// LevelCompletion reports everything one completion changed
type LevelCompletion struct {
	Key          domain.LevelKey
	FirstTime    bool
	OutOfOrder   bool
	XPAwarded    int
	XP           int
	Level        int
	LeveledUp    bool
	Streak       streak.CreditResult
	Achievements []domain.AchievementID
}

// XPAward reports a standalone XP grant
type XPAward struct {
	Amount       int
	XP           int
	Level        int
	LeveledUp    bool
	Achievements []domain.AchievementID
}

// Config tunes the service
type Config struct {
	ShieldPolicy domain.ShieldPolicy
	CacheSize    int
	CacheTTL     time.Duration
}

type service struct {
	store      *store.Store
	curriculum *catalog.Curriculum
	shop       *economy.Shop
	tracker    *streak.Tracker
	evaluator  *achievement.Evaluator
	clock      clock.Clock
	publisher  event.Bus
	cooldowns  cooldown.Service // nil disables the purchase window
	locks      *concurrency.LockManager
	cache      *sessionCache
}

// NewService creates the student service. A nil clock uses UTC wall time and a
// nil publisher drops events into an unobserved in-memory bus.
func NewService(
	st *store.Store,
	curriculum *catalog.Curriculum,
	shop *economy.Shop,
	clk clock.Clock,
	publisher event.Bus,
	cooldowns cooldown.Service,
	cfg Config,
) Service {
	if clk == nil {
		clk = clock.NewRealClock(time.UTC)
	}
	if publisher == nil {
		publisher = event.NewMemoryBus()
	}
	return &service{
		store:      st,
		curriculum: curriculum,
		shop:       shop,
		tracker:    streak.NewTracker(cfg.ShieldPolicy),
		evaluator:  achievement.NewEvaluator(curriculum),
		clock:      clk,
		publisher:  publisher,
		cooldowns:  cooldowns,
		locks:      concurrency.NewLockManager(),
		cache:      newSessionCache(cfg.CacheSize, cfg.CacheTTL),
	}
}

// transition mutates next in place and returns the events describing the change.
// Returning changed=false discards next; events are published either way.
type transition func(next *domain.ProgressionState, now time.Time) (events []event.Event, changed bool, err error)

// mutate applies fn to a copy of the student's snapshot while holding the
// student's lock. Events are published after the lock is released.
func (s *service) mutate(ctx context.Context, identity string, fn transition) (*domain.ProgressionState, error) {
	var (
		events []event.Event
		result *domain.ProgressionState
	)

	err := s.locks.WithLock(identity, func() error {
		current, err := s.snapshot(ctx, identity)
		if err != nil {
			return err
		}

		next := current.Clone()
		now := s.clock.Now()
		evts, changed, err := fn(next, now)
		if err != nil {
			return err
		}
		events = evts

		if !changed {
			result = current
			return nil
		}
		next.Revision = current.Revision + 1
		next.UpdatedAt = now
		s.cache.Set(identity, next)
		s.store.Save(identity, next)
		result = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, evt := range events {
		if err := s.publisher.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(event.LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
	return result, nil
}

// view returns the current snapshot; callers must not modify it
func (s *service) view(ctx context.Context, identity string) (*domain.ProgressionState, error) {
	var state *domain.ProgressionState
	err := s.locks.WithLock(identity, func() error {
		var err error
		state, err = s.snapshot(ctx, identity)
		return err
	})
	return state, err
}

// snapshot must be called with the student's lock held
func (s *service) snapshot(ctx context.Context, identity string) (*domain.ProgressionState, error) {
	ctx = logger.WithIdentity(ctx, identity)
	if state, ok := s.cache.Get(identity); ok {
		return state, nil
	}

	state, source, err := s.store.Load(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadStateFmt, identity, err)
	}

	log := logger.FromContext(ctx)
	if source == store.SourceFallback {
		log.Warn(LogMsgStateFallback)
	} else {
		log.Debug(LogMsgStateLoaded, "source", source, "revision", state.Revision)
	}
	s.cache.Set(identity, state)
	return state, nil
}

// achievements evaluates s and returns one event per newly unlocked achievement
func (s *service) achievements(identity string, state *domain.ProgressionState, now time.Time) ([]domain.AchievementID, []event.Event) {
	unlocked := s.evaluator.Evaluate(state)
	events := make([]event.Event, 0, len(unlocked))
	for _, id := range unlocked {
		events = append(events, event.New(domain.EventTypeAchievementUnlocked, identity, domain.AchievementUnlockedPayload{
			Identity:    identity,
			Achievement: id,
			Timestamp:   now.Unix(),
		}))
	}
	return unlocked, events
}

// IsVip reports whether the student's VIP entitlement is active now
func (s *service) IsVip(ctx context.Context, identity string) (bool, error) {
	state, err := s.view(ctx, identity)
	if err != nil {
		return false, err
	}
	return economy.IsVip(state, s.clock.Now()), nil
}

// IsLevelUnlocked reports whether key may be entered
func (s *service) IsLevelUnlocked(ctx context.Context, identity string, key domain.LevelKey) (bool, error) {
	if _, err := s.curriculum.ValidateLevel(key); err != nil {
		return false, err
	}
	state, err := s.view(ctx, identity)
	if err != nil {
		return false, err
	}
	return unlock.IsUnlocked(state, key), nil
}

// LevelsDone counts the completed levels of a topic
func (s *service) LevelsDone(ctx context.Context, identity, subject, topic string) (int, error) {
	t, ok := s.curriculum.Topic(subject, topic)
	if !ok {
		return 0, fmt.Errorf(catalog.ErrMsgUnknownTopicFmt, subject, topic, domain.ErrUnknownTopic)
	}
	state, err := s.view(ctx, identity)
	if err != nil {
		return 0, err
	}
	return unlock.LevelsDone(state, subject, topic, t.LevelCount()), nil
}

// GetState returns a copy of the student's record
func (s *service) GetState(ctx context.Context, identity string) (*domain.ProgressionState, error) {
	state, err := s.view(ctx, identity)
	if err != nil {
		return nil, err
	}
	return state.Clone(), nil
}

// EndSession drops the cached snapshot and writes out pending snapshots.
// The next operation for identity reloads from the store.
func (s *service) EndSession(ctx context.Context, identity string) error {
	ctx = logger.WithIdentity(ctx, identity)
	err := s.locks.WithLock(identity, func() error {
		s.cache.Invalidate(identity)
		return nil
	})
	if err != nil {
		return err
	}
	s.store.Flush(ctx)
	logger.FromContext(ctx).Info(LogMsgSessionEnded)
	return nil
}

// Shutdown stops the persistence writer after writing pending snapshots
func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgServiceShutdown, "cached_sessions", s.cache.Len())
	return s.store.Shutdown(ctx)
}
