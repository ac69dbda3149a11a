package domain

// =============================================================================
// Progression Constants
// =============================================================================

const (
	// XPPerLevel is the XP span of every level; level = floor(xp/XPPerLevel)+1
	XPPerLevel = 150

	// StreakRepairCostXP is the fixed XP price of restoring a broken streak
	StreakRepairCostXP = 75

	// MinRepairableStreak is the smallest streak that leaves a repair offer when broken
	MinRepairableStreak = 2

	// DefaultLevelsPerTopic is used when the curriculum does not say otherwise
	DefaultLevelsPerTopic = 4

	// CurrentSchemaVersion is written into every persisted progression record
	CurrentSchemaVersion = 1
)

// =============================================================================
// Subjects
// =============================================================================

const (
	SubjectMath    = "math"
	SubjectEnglish = "english"
	SubjectLatvian = "latvian"
)

// Subjects lists every subject the engine tracks explorer achievements for
var Subjects = []string{SubjectMath, SubjectEnglish, SubjectLatvian}

// =============================================================================
// Achievements
// =============================================================================

// AchievementID identifies an unlocked achievement
type AchievementID string

const (
	AchievementFirstLesson AchievementID = "first_lesson"
	AchievementLevel5      AchievementID = "level_5"
	AchievementStreak7     AchievementID = "streak_7"

	// ExplorerSuffix is appended to a subject to form its explorer achievement
	ExplorerSuffix = "_explorer"
)

// ExplorerAchievement returns the explorer achievement id of a subject
func ExplorerAchievement(subject string) AchievementID {
	return AchievementID(subject + ExplorerSuffix)
}

// =============================================================================
// Consumables
// =============================================================================

// ConsumableKind names a counted inventory item
type ConsumableKind string

const (
	ConsumableStreakShield ConsumableKind = "streak_shield"
	ConsumableXPBoost      ConsumableKind = "xp_boost"
	ConsumableHintToken    ConsumableKind = "hint_token"
	ConsumableChatToken    ConsumableKind = "chat_token"
)

// ConsumableKinds lists every known consumable
var ConsumableKinds = []ConsumableKind{
	ConsumableStreakShield,
	ConsumableXPBoost,
	ConsumableHintToken,
	ConsumableChatToken,
}

// IsValid reports whether k is a known consumable
func (k ConsumableKind) IsValid() bool {
	for _, known := range ConsumableKinds {
		if k == known {
			return true
		}
	}
	return false
}

// =============================================================================
// Cosmetics
// =============================================================================

const (
	// DefaultThemeID is always owned and is the fallback active theme
	DefaultThemeID = "default"
)

// =============================================================================
// Challenges
// =============================================================================

// ChallengeType is a replayable challenge mode of a topic
type ChallengeType string

const (
	ChallengeSpeed ChallengeType = "speed"
	ChallengeBoss  ChallengeType = "boss"
)

// =============================================================================
// Currencies
// =============================================================================

// Currency is a balance a purchase can be charged against
type Currency string

const (
	CurrencyXP    Currency = "xp"
	CurrencyStars Currency = "stars"
)

// =============================================================================
// Streak Shield Policies
// =============================================================================

// ShieldPolicy decides how many missed days shields may cover
type ShieldPolicy string

const (
	// ShieldPolicyGraduated lets one shield cover one missed day and two shields cover two
	ShieldPolicyGraduated ShieldPolicy = "graduated"

	// ShieldPolicySingle only covers a single missed day with one shield
	ShieldPolicySingle ShieldPolicy = "single"
)
