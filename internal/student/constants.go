package student

import "time"

// XP grant sources recorded on xp.granted events
const (
	XPSourceLevelCompletion = "level_completion"
	XPSourceChallenge       = "challenge"
	XPSourceBonus           = "bonus"
)

// Session cache defaults
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 30 * time.Minute

	// CacheSchemaVersion invalidates cached snapshots written by an older layout
	CacheSchemaVersion = "1"
)

// Error message formats
const (
	ErrMsgLoadStateFmt    = "failed to load progression of %s: %w"
	ErrMsgInvalidXPFmt    = "xp award of %d for %s: %w"
	ErrMsgInvalidStarsFmt = "stars award of %d: %w"
	ErrMsgXPSourceFmt     = "xp source %q: %w"
)

// Log messages
const (
	LogMsgStateLoaded          = "Progression loaded"
	LogMsgStateFallback        = "Progression unavailable, session starts from defaults"
	LogMsgOutOfOrderCompletion = "Level completed before its predecessor"
	LogMsgLevelCompleted       = "Level completion recorded"
	LogMsgPurchase             = "Purchase processed"
	LogMsgPurchaseOnCooldown   = "Purchase rejected, cooldown active"
	LogMsgStreakRepaired       = "Streak repaired"
	LogMsgSessionEnded         = "Session ended"
	LogMsgServiceShutdown      = "Student service shutting down"
)
