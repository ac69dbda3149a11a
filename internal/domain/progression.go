package domain

import (
	"fmt"
	"time"
)

// LevelKey identifies one level of one topic
type LevelKey struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Level   int    `json:"level"`
}

func (k LevelKey) String() string {
	return fmt.Sprintf("%s/%s/%03d", k.Subject, k.Topic, k.Level)
}

// Previous returns the key of the level before k in the same topic
func (k LevelKey) Previous() LevelKey {
	return LevelKey{Subject: k.Subject, Topic: k.Topic, Level: k.Level - 1}
}

// ChallengeKey identifies an unlockable challenge of a topic
type ChallengeKey struct {
	Subject string        `json:"subject"`
	Topic   string        `json:"topic"`
	Type    ChallengeType `json:"type"`
}

func (k ChallengeKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Subject, k.Topic, k.Type)
}

// RepairOffer is an outstanding chance to buy back a broken streak
type RepairOffer struct {
	PreviousStreak int       `json:"previous_streak"`
	BrokenAt       time.Time `json:"broken_at"`
}

// Cosmetics holds owned and equipped titles and themes.
// ActiveTitle is nil or a member of OwnedTitles; ActiveTheme is always a member of OwnedThemes.
type Cosmetics struct {
	OwnedTitles Set[string] `json:"owned_titles"`
	ActiveTitle *string     `json:"active_title"`
	OwnedThemes Set[string] `json:"owned_themes"`
	ActiveTheme string      `json:"active_theme"`
}

// ProgressionState is the complete progression and economy record of one student.
// Mutations are applied to a Clone and the clone replaces the previous snapshot.
type ProgressionState struct {
	SchemaVersion int   `json:"schema_version"`
	Revision      int64 `json:"revision"`

	XP    int `json:"xp"`
	Level int `json:"level"`
	Stars int `json:"stars"`

	Streak        int          `json:"streak"`
	LastCreditDay *Day         `json:"last_credit_day"`
	StreakShields int          `json:"streak_shields"`
	RepairOffer   *RepairOffer `json:"repair_offer"`

	CompletedLevels    Set[LevelKey]      `json:"completed_levels"`
	StartedLevels      Set[LevelKey]      `json:"started_levels"`
	Achievements       Set[AchievementID] `json:"achievements"`
	UnlockedChallenges Set[ChallengeKey]  `json:"unlocked_challenges"`

	// Consumables counts every consumable except streak shields, which live in StreakShields
	Consumables map[ConsumableKind]int `json:"consumables"`
	Cosmetics   Cosmetics              `json:"cosmetics"`
	VIPExpiry   *time.Time             `json:"vip_expiry"`

	UpdatedAt time.Time `json:"updated_at"`
}

// LevelForXP derives the level from total XP
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// DefaultState returns the baseline record of a newly observed student
func DefaultState() *ProgressionState {
	return &ProgressionState{
		SchemaVersion:      CurrentSchemaVersion,
		Level:              1,
		CompletedLevels:    NewSet[LevelKey](),
		StartedLevels:      NewSet[LevelKey](),
		Achievements:       NewSet[AchievementID](),
		UnlockedChallenges: NewSet[ChallengeKey](),
		Consumables: map[ConsumableKind]int{
			ConsumableXPBoost:   0,
			ConsumableHintToken: 0,
			ConsumableChatToken: 0,
		},
		Cosmetics: Cosmetics{
			OwnedTitles: NewSet[string](),
			OwnedThemes: NewSet(DefaultThemeID),
			ActiveTheme: DefaultThemeID,
		},
	}
}

// Clone returns a deep copy that shares no mutable data with s
func (s *ProgressionState) Clone() *ProgressionState {
	if s == nil {
		return nil
	}
	out := *s

	if s.LastCreditDay != nil {
		day := *s.LastCreditDay
		out.LastCreditDay = &day
	}
	if s.RepairOffer != nil {
		offer := *s.RepairOffer
		out.RepairOffer = &offer
	}
	if s.VIPExpiry != nil {
		expiry := *s.VIPExpiry
		out.VIPExpiry = &expiry
	}

	out.CompletedLevels = s.CompletedLevels.Clone()
	out.StartedLevels = s.StartedLevels.Clone()
	out.Achievements = s.Achievements.Clone()
	out.UnlockedChallenges = s.UnlockedChallenges.Clone()

	out.Consumables = make(map[ConsumableKind]int, len(s.Consumables))
	for k, v := range s.Consumables {
		out.Consumables[k] = v
	}

	out.Cosmetics.OwnedTitles = s.Cosmetics.OwnedTitles.Clone()
	out.Cosmetics.OwnedThemes = s.Cosmetics.OwnedThemes.Clone()
	if s.Cosmetics.ActiveTitle != nil {
		title := *s.Cosmetics.ActiveTitle
		out.Cosmetics.ActiveTitle = &title
	}
	return &out
}

// Normalize fills missing fields with defaults and repairs values that break
// the aggregate's invariants. It is applied to every record read from storage.
func (s *ProgressionState) Normalize() {
	if s.CompletedLevels == nil {
		s.CompletedLevels = NewSet[LevelKey]()
	}
	if s.StartedLevels == nil {
		s.StartedLevels = NewSet[LevelKey]()
	}
	if s.Achievements == nil {
		s.Achievements = NewSet[AchievementID]()
	}
	if s.UnlockedChallenges == nil {
		s.UnlockedChallenges = NewSet[ChallengeKey]()
	}
	if s.Consumables == nil {
		s.Consumables = make(map[ConsumableKind]int)
	}
	// Older records kept shields alongside the other consumables
	if legacy, ok := s.Consumables[ConsumableStreakShield]; ok {
		s.StreakShields += legacy
		delete(s.Consumables, ConsumableStreakShield)
	}
	for _, kind := range ConsumableKinds {
		if kind == ConsumableStreakShield {
			continue
		}
		s.Consumables[kind] = max(0, s.Consumables[kind])
	}

	if s.Cosmetics.OwnedTitles == nil {
		s.Cosmetics.OwnedTitles = NewSet[string]()
	}
	if s.Cosmetics.OwnedThemes == nil {
		s.Cosmetics.OwnedThemes = NewSet[string]()
	}
	s.Cosmetics.OwnedThemes.Add(DefaultThemeID)
	if !s.Cosmetics.OwnedThemes.Has(s.Cosmetics.ActiveTheme) {
		s.Cosmetics.ActiveTheme = DefaultThemeID
	}
	if s.Cosmetics.ActiveTitle != nil && !s.Cosmetics.OwnedTitles.Has(*s.Cosmetics.ActiveTitle) {
		s.Cosmetics.ActiveTitle = nil
	}

	if s.XP < 0 {
		s.XP = 0
	}
	if s.Stars < 0 {
		s.Stars = 0
	}
	if s.Streak < 0 {
		s.Streak = 0
	}
	if s.StreakShields < 0 {
		s.StreakShields = 0
	}
	s.Level = LevelForXP(s.XP)
	s.SchemaVersion = CurrentSchemaVersion
}

// ConsumableCount returns the charges held of kind
func (s *ProgressionState) ConsumableCount(kind ConsumableKind) int {
	if kind == ConsumableStreakShield {
		return s.StreakShields
	}
	return s.Consumables[kind]
}

// AddConsumable adjusts the charges of kind by delta, never going below zero
func (s *ProgressionState) AddConsumable(kind ConsumableKind, delta int) {
	if kind == ConsumableStreakShield {
		s.StreakShields = max(0, s.StreakShields+delta)
		return
	}
	if s.Consumables == nil {
		s.Consumables = make(map[ConsumableKind]int)
	}
	s.Consumables[kind] = max(0, s.Consumables[kind]+delta)
}

// IsVIPAt reports whether the VIP entitlement is active at now
func (s *ProgressionState) IsVIPAt(now time.Time) bool {
	return s.VIPExpiry != nil && now.Before(*s.VIPExpiry)
}
