package domain

// LevelCompletedPayload is the event payload for level.completed events
type LevelCompletedPayload struct {
	Identity   string `json:"identity"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Level      int    `json:"level"`
	XPAwarded  int    `json:"xp_awarded"`
	FirstTime  bool   `json:"first_time"`
	OutOfOrder bool   `json:"out_of_order"`
	Timestamp  int64  `json:"timestamp"`
}

// LevelStartedPayload is the event payload for level.started events
type LevelStartedPayload struct {
	Identity  string `json:"identity"`
	Subject   string `json:"subject"`
	Topic     string `json:"topic"`
	Level     int    `json:"level"`
	Timestamp int64  `json:"timestamp"`
}

// XPGrantedPayload is the event payload for xp.granted events
type XPGrantedPayload struct {
	Identity  string `json:"identity"`
	Amount    int    `json:"amount"`
	Source    string `json:"source"`
	TotalXP   int    `json:"total_xp"`
	Timestamp int64  `json:"timestamp"`
}

// LevelUpPayload is the event payload for level.up events
type LevelUpPayload struct {
	Identity  string `json:"identity"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Timestamp int64  `json:"timestamp"`
}

// StarsEarnedPayload is the event payload for stars.earned events
type StarsEarnedPayload struct {
	Identity   string `json:"identity"`
	Amount     int    `json:"amount"`
	TotalStars int    `json:"total_stars"`
	Timestamp  int64  `json:"timestamp"`
}

// StreakPayload is the event payload shared by every streak.* event
type StreakPayload struct {
	Identity       string `json:"identity"`
	Day            string `json:"day,omitempty"`
	Streak         int    `json:"streak"`
	PreviousStreak int    `json:"previous_streak,omitempty"`
	ShieldsUsed    int    `json:"shields_used,omitempty"`
	ShieldsLeft    int    `json:"shields_left"`
	Timestamp      int64  `json:"timestamp"`
}

// AchievementUnlockedPayload is the event payload for achievement.unlocked events
type AchievementUnlockedPayload struct {
	Identity    string        `json:"identity"`
	Achievement AchievementID `json:"achievement"`
	Timestamp   int64         `json:"timestamp"`
}

// PurchaseCompletedPayload is the event payload for purchase.completed events
type PurchaseCompletedPayload struct {
	Identity      string         `json:"identity"`
	TransactionID string         `json:"transaction_id"`
	Kind          PurchaseKind   `json:"kind"`
	ItemID        string         `json:"item_id"`
	Status        PurchaseStatus `json:"status"`
	Currency      Currency       `json:"currency"`
	Cost          int            `json:"cost"`
	Timestamp     int64          `json:"timestamp"`
}

// VIPExtendedPayload is the event payload for vip.extended events
type VIPExtendedPayload struct {
	Identity  string `json:"identity"`
	PlanID    string `json:"plan_id"`
	AddedDays int    `json:"added_days"`
	Stacked   bool   `json:"stacked"`
	ExpiresAt int64  `json:"expires_at"`
	Timestamp int64  `json:"timestamp"`
}

// ConsumableUsedPayload is the event payload for consumable.used events
type ConsumableUsedPayload struct {
	Identity  string         `json:"identity"`
	Kind      ConsumableKind `json:"kind"`
	Remaining int            `json:"remaining"`
	Timestamp int64          `json:"timestamp"`
}
