package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking. Every progression state transition publishes one of these
// after the new snapshot has replaced the old one.
//
// Event types follow the pattern: <entity>.<action> (e.g., "level.completed")
const (
	// EventTypeLevelCompleted is published when a curriculum level completion is recorded
	EventTypeLevelCompleted = "level.completed"

	// EventTypeLevelStarted is published the first time a level is opened
	EventTypeLevelStarted = "level.started"

	// EventTypeXPGranted is published whenever XP is added to the ledger
	EventTypeXPGranted = "xp.granted"

	// EventTypeLevelUp is published when a grant moves the student to a higher level
	EventTypeLevelUp = "level.up"

	// EventTypeStarsEarned is published when stars are credited
	EventTypeStarsEarned = "stars.earned"

	// EventTypeStreakCredited is published when a completion day extends or starts the streak
	EventTypeStreakCredited = "streak.credited"

	// EventTypeStreakShieldUsed is published when shields absorb missed days
	EventTypeStreakShieldUsed = "streak.shield_used"

	// EventTypeStreakBroken is published when a gap resets the streak to one
	EventTypeStreakBroken = "streak.broken"

	// EventTypeStreakRepaired is published when a repair offer is paid for
	EventTypeStreakRepaired = "streak.repaired"

	// EventTypeStreakRepairDismissed is published when a repair offer is forfeited
	EventTypeStreakRepairDismissed = "streak.repair_dismissed"

	// EventTypeAchievementUnlocked is published once per newly unlocked achievement
	EventTypeAchievementUnlocked = "achievement.unlocked"

	// EventTypePurchaseCompleted is published for every successful shop request
	EventTypePurchaseCompleted = "purchase.completed"

	// EventTypeVIPExtended is published when a VIP plan moves the expiry forward
	EventTypeVIPExtended = "vip.extended"

	// EventTypeConsumableUsed is published when a consumable charge is spent
	EventTypeConsumableUsed = "consumable.used"
)
