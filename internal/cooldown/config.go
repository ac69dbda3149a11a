package cooldown

import "time"

// Config holds cooldown service configuration
type Config struct {
	// DevMode bypasses all cooldowns when true
	DevMode bool

	// Cooldowns maps action names to their durations.
	// Actions without an entry use DefaultCooldownDuration.
	Cooldowns map[string]time.Duration
}

// GetCooldownDuration returns the cooldown duration for an action
func (c *Config) GetCooldownDuration(action string) time.Duration {
	if c.Cooldowns != nil {
		if duration, ok := c.Cooldowns[action]; ok && duration > 0 {
			return duration
		}
	}
	return DefaultCooldownDuration
}

// checkCooldown reports whether lastUsed is still inside duration at now
func checkCooldown(now time.Time, lastUsed *time.Time, duration time.Duration) (bool, time.Duration) {
	if lastUsed == nil || duration <= 0 {
		return false, 0
	}

	elapsed := now.Sub(*lastUsed)
	if elapsed < duration {
		return true, duration - elapsed
	}
	return false, 0
}
