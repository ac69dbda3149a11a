package cooldown

import "time"

// =============================================================================
// Actions
// =============================================================================

const (
	// ActionPurchase throttles shop requests per student
	ActionPurchase = "purchase"
)

// =============================================================================
// Duration Constants
// =============================================================================

const (
	// DefaultCooldownDuration is the fallback cooldown for actions without a configured duration
	DefaultCooldownDuration time.Duration = 0
)

// =============================================================================
// Hash Constants
// =============================================================================

const (
	// HashSeparator is the separator used when combining identity and action for lock keys
	HashSeparator = ":"

	// HashMaskPositiveInt64 is the bit mask to ensure advisory lock keys are positive int64 values
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// =============================================================================
// SQL Query Constants
// =============================================================================

const (
	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	// SQLSelectLastUsed retrieves the last used timestamp for a student action
	SQLSelectLastUsed = `
		SELECT last_used_at
		FROM action_cooldowns
		WHERE identity = $1 AND action_name = $2
	`

	// SQLDeleteCooldown removes a cooldown record for a student action
	SQLDeleteCooldown = `DELETE FROM action_cooldowns WHERE identity = $1 AND action_name = $2`

	// SQLUpsertCooldown inserts or updates a cooldown timestamp
	SQLUpsertCooldown = `
		INSERT INTO action_cooldowns (identity, action_name, last_used_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (identity, action_name) DO UPDATE
		SET last_used_at = EXCLUDED.last_used_at
	`
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgCheckCooldownFailed     = "failed to check cooldown: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgAcquireLockFailed       = "failed to acquire advisory lock: %w"
	ErrMsgGetCooldownTxFailed     = "failed to get cooldown within transaction: %w"
	ErrMsgUpdateCooldownFailed    = "failed to update cooldown: %w"
	ErrMsgCommitTransactionFailed = "failed to commit cooldown transaction: %w"
	ErrMsgResetCooldownFailed     = "failed to reset cooldown: %w"
	ErrMsgGetLastUsedFailed       = "failed to get last used: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	// LogMsgDevModeBypass is logged when dev mode bypasses cooldown enforcement
	LogMsgDevModeBypass = "DEV_MODE: Bypassing cooldown enforcement"

	// LogMsgRaceConditionDetected is logged when a concurrent request lands inside the window
	LogMsgRaceConditionDetected = "Race condition detected - concurrent request on cooldown"

	// LogMsgCooldownEnforced is logged when cooldown is successfully enforced and updated
	LogMsgCooldownEnforced = "Cooldown enforced successfully"
)

// =============================================================================
// Error Message Format Strings (for ErrOnCooldown.Error())
// =============================================================================

const (
	// ErrFmtCooldownWithMinutes formats cooldown error with minutes and seconds
	ErrFmtCooldownWithMinutes = "You can %s again in %dm %ds"

	// ErrFmtCooldownSecondsOnly formats cooldown error with seconds only
	ErrFmtCooldownSecondsOnly = "You can %s again in %ds"
)

// SecondsPerMinute is used for time duration calculations
const SecondsPerMinute = 60
