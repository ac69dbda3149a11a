package domain

import "time"

// PurchaseKind selects the catalog section of a purchase
type PurchaseKind string

const (
	PurchaseConsumable PurchaseKind = "consumable"
	PurchaseTitle      PurchaseKind = "title"
	PurchaseTheme      PurchaseKind = "theme"
	PurchaseVIP        PurchaseKind = "vip"
	PurchaseChallenge  PurchaseKind = "challenge"
)

// PurchaseStatus is the outcome of a purchase request that was understood by the shop
type PurchaseStatus string

const (
	// StatusPurchased means currency was debited and the item granted
	StatusPurchased PurchaseStatus = "purchased"

	// StatusEquipped means an owned cosmetic was activated without a charge
	StatusEquipped PurchaseStatus = "equipped"

	// StatusUnequipped means the active title was cleared without a charge
	StatusUnequipped PurchaseStatus = "unequipped"

	// StatusOwned means a permanent unlock was already owned and nothing was charged
	StatusOwned PurchaseStatus = "owned"

	// StatusInsufficientFunds means nothing changed because the balance was too low
	StatusInsufficientFunds PurchaseStatus = "insufficient_funds"

	// StatusOnCooldown means the request arrived inside the post-purchase window
	StatusOnCooldown PurchaseStatus = "on_cooldown"
)

// PurchaseRequest asks the shop for one catalog entry
type PurchaseRequest struct {
	Kind   PurchaseKind `json:"kind" validate:"required,oneof=consumable title theme vip challenge"`
	ItemID string       `json:"item_id" validate:"required,max=64"`

	// Subject and Topic are required for challenge unlocks only
	Subject string `json:"subject,omitempty" validate:"required_if=Kind challenge,max=64"`
	Topic   string `json:"topic,omitempty" validate:"required_if=Kind challenge,max=64"`
}

// PurchaseResult reports what a purchase did
type PurchaseResult struct {
	TransactionID string         `json:"transaction_id"`
	Kind          PurchaseKind   `json:"kind"`
	ItemID        string         `json:"item_id"`
	Status        PurchaseStatus `json:"status"`
	Currency      Currency       `json:"currency"`
	Cost          int            `json:"cost"`
	Balance       int            `json:"balance"` // balance of Currency after the request
	Shortfall     int            `json:"shortfall,omitempty"`
	VIPExpiry     *time.Time     `json:"vip_expiry,omitempty"`
	RetryAfter    time.Duration  `json:"retry_after,omitempty"`
}

// Succeeded reports whether the request changed ownership or equip state
func (r PurchaseResult) Succeeded() bool {
	switch r.Status {
	case StatusPurchased, StatusEquipped, StatusUnequipped, StatusOwned:
		return true
	}
	return false
}

// Err returns a typed error for rejected outcomes, or nil
func (r PurchaseResult) Err() error {
	switch r.Status {
	case StatusInsufficientFunds:
		return InsufficientFundsError{Currency: r.Currency, Cost: r.Cost, Balance: r.Balance}
	case StatusOnCooldown:
		return ErrOnCooldown
	}
	return nil
}

// =============================================================================
// Shop Catalog
// =============================================================================

// PricedItem is a catalog entry bought with XP
type PricedItem struct {
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"required"`
	Cost int    `json:"cost" validate:"gte=0"`
}

// ConsumableItem is a catalog entry that grants one consumable charge
type ConsumableItem struct {
	Kind ConsumableKind `json:"kind" validate:"required,oneof=streak_shield xp_boost hint_token chat_token"`
	Name string         `json:"name" validate:"required"`
	Cost int            `json:"cost" validate:"gt=0"`
}

// VIPPlan is a time-boxed entitlement bought with stars
type VIPPlan struct {
	ID           string `json:"id" validate:"required,max=64"`
	Name         string `json:"name" validate:"required"`
	CostStars    int    `json:"cost_stars" validate:"gt=0"`
	DurationDays int    `json:"duration_days" validate:"gt=0"`
}

// ChallengeItem prices the unlock of one challenge type
type ChallengeItem struct {
	Type ChallengeType `json:"type" validate:"required,oneof=speed boss"`
	Name string        `json:"name" validate:"required"`
	Cost int           `json:"cost" validate:"gt=0"`
}

// ShopCatalog is the full price list of the shop
type ShopCatalog struct {
	Consumables []ConsumableItem `json:"consumables" validate:"dive"`
	Titles      []PricedItem     `json:"titles" validate:"dive"`
	Themes      []PricedItem     `json:"themes" validate:"dive"`
	VIPPlans    []VIPPlan        `json:"vip_plans" validate:"dive"`
	Challenges  []ChallengeItem  `json:"challenges" validate:"dive"`
}

// =============================================================================
// Curriculum
// =============================================================================

// MinGrade and MaxGrade bound the school grades of the curriculum
const (
	MinGrade = 1
	MaxGrade = 12
)

// CurriculumTopic is one topic of a subject and grade
type CurriculumTopic struct {
	ID     string `json:"id" validate:"required,max=64"`
	Name   string `json:"name,omitempty"`
	XP     int    `json:"xp" validate:"gt=0"`             // reward per completed level
	Levels int    `json:"levels" validate:"gte=0,lte=10"` // 0 means DefaultLevelsPerTopic
}

// LevelCount returns the topic's level count with the default applied
func (t CurriculumTopic) LevelCount() int {
	if t.Levels <= 0 {
		return DefaultLevelsPerTopic
	}
	return t.Levels
}

// CurriculumGrade holds the ordered topics of one grade
type CurriculumGrade struct {
	Grade  int               `json:"grade" validate:"gte=1,lte=12"`
	Topics []CurriculumTopic `json:"topics" validate:"dive"`
}

// CurriculumSubject holds the grades of one subject
type CurriculumSubject struct {
	ID     string            `json:"id" validate:"required,max=64"`
	Grades []CurriculumGrade `json:"grades" validate:"dive"`
}

// Curriculum is the shape of the course content the engine needs
type Curriculum struct {
	Subjects []CurriculumSubject `json:"subjects" validate:"required,dive"`
}
