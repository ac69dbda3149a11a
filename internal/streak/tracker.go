// Package streak implements the daily learning streak with shield cover and
// the paid repair offer left behind when a streak breaks.
package streak

import (
	"time"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/ledger"
)

// CreditResult describes one application of a completion day
type CreditResult struct {
	Outcome        Outcome
	Day            domain.Day
	Gap            int
	Streak         int
	PreviousStreak int
	ShieldsUsed    int
	OfferCreated   bool
}

// Changed reports whether the record was modified
func (r CreditResult) Changed() bool {
	return r.Outcome != OutcomeSameDay && r.Outcome != OutcomeIgnored
}

// Tracker applies completion days to a progression record
type Tracker struct {
	policy domain.ShieldPolicy
}

// NewTracker creates a tracker; an unknown policy falls back to graduated cover
func NewTracker(policy domain.ShieldPolicy) *Tracker {
	if policy != domain.ShieldPolicySingle {
		policy = domain.ShieldPolicyGraduated
	}
	return &Tracker{policy: policy}
}

// Policy returns the shield policy in effect
func (t *Tracker) Policy() domain.ShieldPolicy {
	return t.policy
}

// shieldsFor returns how many shields cover a gap, or 0 if the gap cannot be covered
func (t *Tracker) shieldsFor(gap int) int {
	switch gap {
	case gapOneMissed:
		return 1
	case gapTwoMissed:
		if t.policy == domain.ShieldPolicyGraduated {
			return 2
		}
	}
	return 0
}

// Credit records a level completion on day. A day credits the streak at most once.
func (t *Tracker) Credit(s *domain.ProgressionState, day domain.Day, now time.Time) CreditResult {
	result := CreditResult{Day: day, PreviousStreak: s.Streak}

	if s.LastCreditDay == nil {
		s.Streak = 1
		s.LastCreditDay = &day
		result.Outcome = OutcomeFirst
		result.Streak = s.Streak
		return result
	}

	gap := day.DaysSince(*s.LastCreditDay)
	result.Gap = gap

	switch {
	case gap == 0:
		result.Outcome = OutcomeSameDay
		result.Streak = s.Streak
		return result
	case gap < 0:
		result.Outcome = OutcomeIgnored
		result.Streak = s.Streak
		return result
	case gap == gapConsecutive:
		s.Streak++
		result.Outcome = OutcomeConsecutive
	default:
		need := t.shieldsFor(gap)
		if need > 0 && s.StreakShields >= need {
			s.StreakShields -= need
			s.Streak++
			result.Outcome = OutcomeShielded
			result.ShieldsUsed = need
			break
		}
		if s.Streak >= domain.MinRepairableStreak {
			s.RepairOffer = &domain.RepairOffer{PreviousStreak: s.Streak, BrokenAt: now}
			result.OfferCreated = true
		}
		s.Streak = 1
		result.Outcome = OutcomeBroken
	}

	s.LastCreditDay = &day
	result.Streak = s.Streak
	return result
}

// RepairResult describes a repair attempt
type RepairResult struct {
	Status  RepairStatus
	Streak  int
	Cost    int
	Balance int
}

// OK reports whether the streak was restored
func (r RepairResult) OK() bool {
	return r.Status == RepairStatusRepaired
}

// Repair pays StreakRepairCostXP to restore the streak of the outstanding offer.
// Nothing changes unless an offer exists and the XP balance covers the price.
func (t *Tracker) Repair(s *domain.ProgressionState) (RepairResult, error) {
	result := RepairResult{Cost: domain.StreakRepairCostXP, Streak: s.Streak, Balance: s.XP}
	if s.RepairOffer == nil {
		result.Status = RepairStatusNoOffer
		return result, nil
	}

	ok, err := ledger.Debit(s, domain.StreakRepairCostXP)
	if err != nil {
		return result, err
	}
	if !ok {
		result.Status = RepairStatusInsufficientFunds
		return result, nil
	}

	s.Streak = s.RepairOffer.PreviousStreak
	s.RepairOffer = nil
	result.Status = RepairStatusRepaired
	result.Streak = s.Streak
	result.Balance = s.XP
	return result, nil
}

// Dismiss forfeits the outstanding repair offer and reports whether there was one
func (t *Tracker) Dismiss(s *domain.ProgressionState) bool {
	if s.RepairOffer == nil {
		return false
	}
	s.RepairOffer = nil
	return true
}
