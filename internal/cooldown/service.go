package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/zephyr/internal/domain"
)

// Service manages action cooldowns for students
type Service interface {
	// CheckCooldown checks if a student's action is on cooldown
	// Returns: (onCooldown bool, remaining time.Duration, error)
	CheckCooldown(ctx context.Context, identity, action string) (bool, time.Duration, error)

	// EnforceCooldown atomically checks cooldown and executes action if allowed.
	// The cooldown starts only when fn returns nil.
	EnforceCooldown(ctx context.Context, identity, action string, fn func() error) error

	// ResetCooldown manually resets a cooldown (admin/testing)
	ResetCooldown(ctx context.Context, identity, action string) error

	// GetLastUsed returns when action was last performed
	GetLastUsed(ctx context.Context, identity, action string) (*time.Time, error)
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
}

// Is allows errors.Is() to match both ErrOnCooldown and domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}
