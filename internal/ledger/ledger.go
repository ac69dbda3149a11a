// Package ledger owns the XP and stars balances of a progression record.
// XP only decreases through Debit, and Level is recomputed on every change.
package ledger

import (
	"fmt"

	"github.com/osse101/zephyr/internal/domain"
)

// Grant describes the effect of an XP grant
type Grant struct {
	Amount   int
	OldLevel int
	NewLevel int
}

// LeveledUp reports whether the grant crossed at least one level boundary
func (g Grant) LeveledUp() bool {
	return g.NewLevel > g.OldLevel
}

// GrantXP adds amount to the XP balance and recomputes the level
func GrantXP(s *domain.ProgressionState, amount int) (Grant, error) {
	if amount <= 0 {
		return Grant{}, fmt.Errorf("%w: xp grant of %d", domain.ErrInvalidAmount, amount)
	}
	old := s.Level
	s.XP += amount
	s.Level = domain.LevelForXP(s.XP)
	return Grant{Amount: amount, OldLevel: old, NewLevel: s.Level}, nil
}

// Debit subtracts amount from XP only when the balance covers it.
// A false result leaves the record untouched.
func Debit(s *domain.ProgressionState, amount int) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("%w: xp debit of %d", domain.ErrInvalidAmount, amount)
	}
	if s.XP < amount {
		return false, nil
	}
	s.XP -= amount
	s.Level = domain.LevelForXP(s.XP)
	return true, nil
}

// GrantStars credits the secondary currency
func GrantStars(s *domain.ProgressionState, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: stars grant of %d", domain.ErrInvalidAmount, amount)
	}
	s.Stars += amount
	return nil
}

// DebitStars subtracts stars only when the balance covers it
func DebitStars(s *domain.ProgressionState, amount int) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("%w: stars debit of %d", domain.ErrInvalidAmount, amount)
	}
	if s.Stars < amount {
		return false, nil
	}
	s.Stars -= amount
	return true, nil
}

// Balance returns the balance of currency
func Balance(s *domain.ProgressionState, currency domain.Currency) int {
	if currency == domain.CurrencyStars {
		return s.Stars
	}
	return s.XP
}

// Charge debits cost in currency. A zero cost always succeeds.
func Charge(s *domain.ProgressionState, currency domain.Currency, cost int) (bool, error) {
	switch {
	case cost < 0:
		return false, fmt.Errorf("%w: cost of %d", domain.ErrInvalidAmount, cost)
	case cost == 0:
		return true, nil
	case currency == domain.CurrencyStars:
		return DebitStars(s, cost)
	default:
		return Debit(s, cost)
	}
}

// XPToNextLevel returns the XP span shown as the goal of the progress bar for level
func XPToNextLevel(level int) int {
	return level * domain.XPPerLevel
}

// XPInCurrentLevel returns the XP earned since level was reached
func XPInCurrentLevel(xp, level int) int {
	return xp - (level-1)*domain.XPPerLevel
}
