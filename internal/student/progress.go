package student

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/event"
	"github.com/osse101/zephyr/internal/ledger"
	"github.com/osse101/zephyr/internal/logger"
	"github.com/osse101/zephyr/internal/streak"
	"github.com/osse101/zephyr/internal/unlock"
)

// ReportLevelCompleted records a finished level as one unit: completion, XP grant,
// streak credit for today and achievement evaluation. A zero xpAwarded uses the
// topic's reward from the curriculum. Replays of a completed level still earn XP.
func (s *service) ReportLevelCompleted(ctx context.Context, identity string, key domain.LevelKey, xpAwarded int) (*LevelCompletion, error) {
	ctx = logger.WithIdentity(ctx, identity)

	topic, err := s.curriculum.ValidateLevel(key)
	if err != nil {
		return nil, err
	}
	if xpAwarded < 0 {
		return nil, fmt.Errorf(ErrMsgInvalidXPFmt, xpAwarded, key, domain.ErrInvalidAmount)
	}
	if xpAwarded == 0 {
		xpAwarded = topic.XP
	}

	var out LevelCompletion
	_, err = s.mutate(ctx, identity, func(next *domain.ProgressionState, now time.Time) ([]event.Event, bool, error) {
		completion := unlock.MarkCompleted(next, key)
		grant, err := ledger.GrantXP(next, xpAwarded)
		if err != nil {
			return nil, false, err
		}
		day := domain.DayOf(now.In(s.clock.Location()))
		credit := s.tracker.Credit(next, day, now)
		unlocked, achievementEvents := s.achievements(identity, next, now)

		out = LevelCompletion{
			Key:          key,
			FirstTime:    completion.FirstTime,
			OutOfOrder:   completion.OutOfOrder,
			XPAwarded:    grant.Amount,
			XP:           next.XP,
			Level:        next.Level,
			LeveledUp:    grant.LeveledUp(),
			Streak:       credit,
			Achievements: unlocked,
		}

		events := []event.Event{
			event.New(domain.EventTypeLevelCompleted, identity, domain.LevelCompletedPayload{
				Identity:   identity,
				Subject:    key.Subject,
				Topic:      key.Topic,
				Level:      key.Level,
				XPAwarded:  grant.Amount,
				FirstTime:  completion.FirstTime,
				OutOfOrder: completion.OutOfOrder,
				Timestamp:  now.Unix(),
			}),
		}
		events = append(events, grantEvents(identity, grant, next.XP, XPSourceLevelCompletion, now)...)
		events = append(events, streakEvents(identity, credit, next.StreakShields, now)...)
		events = append(events, achievementEvents...)
		return events, true, nil
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	if out.OutOfOrder {
		log.Warn(LogMsgOutOfOrderCompletion, "level", key.String())
	}
	log.Info(LogMsgLevelCompleted,
		"level", key.String(),
		"xp_awarded", out.XPAwarded,
		"streak", out.Streak.Streak,
		"streak_outcome", out.Streak.Outcome)
	return &out, nil
}

// ReportLevelStarted records that a level was opened and reports whether it was the first time
func (s *service) ReportLevelStarted(ctx context.Context, identity string, key domain.LevelKey) (bool, error) {
	ctx = logger.WithIdentity(ctx, identity)
	if _, err := s.curriculum.ValidateLevel(key); err != nil {
		return false, err
	}

	var first bool
	_, err := s.mutate(ctx, identity, func(next *domain.ProgressionState, now time.Time) ([]event.Event, bool, error) {
		first = unlock.MarkStarted(next, key)
		if !first {
			return nil, false, nil
		}
		return []event.Event{
			event.New(domain.EventTypeLevelStarted, identity, domain.LevelStartedPayload{
				Identity:  identity,
				Subject:   key.Subject,
				Topic:     key.Topic,
				Level:     key.Level,
				Timestamp: now.Unix(),
			}),
		}, true, nil
	})
	return first, err
}

// ReportXPGranted adds XP earned outside a level completion, such as a challenge
// reward. It does not credit the streak.
func (s *service) ReportXPGranted(ctx context.Context, identity string, amount int, source string) (*XPAward, error) {
	ctx = logger.WithIdentity(ctx, identity)
	if amount <= 0 {
		return nil, fmt.Errorf(ErrMsgInvalidXPFmt, amount, source, domain.ErrInvalidAmount)
	}
	if source == "" {
		source = XPSourceBonus
	}

	var out XPAward
	_, err := s.mutate(ctx, identity, func(next *domain.ProgressionState, now time.Time) ([]event.Event, bool, error) {
		grant, err := ledger.GrantXP(next, amount)
		if err != nil {
			return nil, false, err
		}
		unlocked, achievementEvents := s.achievements(identity, next, now)
		out = XPAward{
			Amount:       grant.Amount,
			XP:           next.XP,
			Level:        next.Level,
			LeveledUp:    grant.LeveledUp(),
			Achievements: unlocked,
		}
		events := grantEvents(identity, grant, next.XP, source, now)
		return append(events, achievementEvents...), true, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ReportStarsEarned credits stars and returns the new balance
func (s *service) ReportStarsEarned(ctx context.Context, identity string, amount int) (int, error) {
	ctx = logger.WithIdentity(ctx, identity)
	if amount <= 0 {
		return 0, fmt.Errorf(ErrMsgInvalidStarsFmt, amount, domain.ErrInvalidAmount)
	}

	state, err := s.mutate(ctx, identity, func(next *domain.ProgressionState, now time.Time) ([]event.Event, bool, error) {
		if err := ledger.GrantStars(next, amount); err != nil {
			return nil, false, err
		}
		return []event.Event{
			event.New(domain.EventTypeStarsEarned, identity, domain.StarsEarnedPayload{
				Identity:   identity,
				Amount:     amount,
				TotalStars: next.Stars,
				Timestamp:  now.Unix(),
			}),
		}, true, nil
	})
	if err != nil {
		return 0, err
	}
	return state.Stars, nil
}

// RepairStreak buys back the streak of the outstanding repair offer
func (s *service) RepairStreak(ctx context.Context, identity string) (streak.RepairResult, error) {
	ctx = logger.WithIdentity(ctx, identity)

	var (
		result   streak.RepairResult
		previous int
	)
	_, err := s.mutate(ctx, identity, func(next *domain.ProgressionState, now time.Time) ([]event.Event, bool, error) {
		previous = next.Streak
		res, err := s.tracker.Repair(next)
		if err != nil {
			return nil, false, err
		}
		result = res
		if !res.OK() {
			return nil, false, nil
		}

		_, achievementEvents := s.achievements(identity, next, now)
		events := []event.Event{
			event.New(domain.EventTypeStreakRepaired, identity, domain.StreakPayload{
				Identity:       identity,
				Streak:         next.Streak,
				PreviousStreak: previous,
				ShieldsLeft:    next.StreakShields,
				Timestamp:      now.Unix(),
			}),
		}
		return append(events, achievementEvents...), true, nil
	})
	if err != nil {
		return streak.RepairResult{}, err
	}
	if result.OK() {
		logger.FromContext(ctx).Info(LogMsgStreakRepaired, "streak", result.Streak, "balance", result.Balance)
	}
	return result, nil
}

// DismissRepairOffer forfeits the repair offer and reports whether one existed
func (s *service) DismissRepairOffer(ctx context.Context, identity string) (bool, error) {
	ctx = logger.WithIdentity(ctx, identity)

	var dismissed bool
	_, err := s.mutate(ctx, identity, func(next *domain.ProgressionState, now time.Time) ([]event.Event, bool, error) {
		var previous int
		if next.RepairOffer != nil {
			previous = next.RepairOffer.PreviousStreak
		}
		dismissed = s.tracker.Dismiss(next)
		if !dismissed {
			return nil, false, nil
		}
		return []event.Event{
			event.New(domain.EventTypeStreakRepairDismissed, identity, domain.StreakPayload{
				Identity:       identity,
				Streak:         next.Streak,
				PreviousStreak: previous,
				ShieldsLeft:    next.StreakShields,
				Timestamp:      now.Unix(),
			}),
		}, true, nil
	})
	return dismissed, err
}

func grantEvents(identity string, grant ledger.Grant, total int, source string, now time.Time) []event.Event {
	events := []event.Event{
		event.New(domain.EventTypeXPGranted, identity, domain.XPGrantedPayload{
			Identity:  identity,
			Amount:    grant.Amount,
			Source:    source,
			TotalXP:   total,
			Timestamp: now.Unix(),
		}),
	}
	if grant.LeveledUp() {
		events = append(events, event.New(domain.EventTypeLevelUp, identity, domain.LevelUpPayload{
			Identity:  identity,
			OldLevel:  grant.OldLevel,
			NewLevel:  grant.NewLevel,
			Timestamp: now.Unix(),
		}))
	}
	return events
}

func streakEvents(identity string, credit streak.CreditResult, shieldsLeft int, now time.Time) []event.Event {
	var eventType string
	switch credit.Outcome {
	case streak.OutcomeFirst, streak.OutcomeConsecutive:
		eventType = domain.EventTypeStreakCredited
	case streak.OutcomeShielded:
		eventType = domain.EventTypeStreakShieldUsed
	case streak.OutcomeBroken:
		eventType = domain.EventTypeStreakBroken
	default:
		return nil
	}
	return []event.Event{
		event.New(eventType, identity, domain.StreakPayload{
			Identity:       identity,
			Day:            credit.Day.String(),
			Streak:         credit.Streak,
			PreviousStreak: credit.PreviousStreak,
			ShieldsUsed:    credit.ShieldsUsed,
			ShieldsLeft:    shieldsLeft,
			Timestamp:      now.Unix(),
		}),
	}
}
