package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/zephyr/internal/domain"
)

var now = time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)

func testCatalog() domain.ShopCatalog {
	return domain.ShopCatalog{
		Consumables: []domain.ConsumableItem{
			{Kind: domain.ConsumableStreakShield, Name: "Streak Shield", Cost: 100},
			{Kind: domain.ConsumableXPBoost, Name: "XP Boost", Cost: 75},
			{Kind: domain.ConsumableHintToken, Name: "Hint Token", Cost: 40},
		},
		Titles: []domain.PricedItem{
			{ID: "spark", Name: "Spark", Cost: 80},
			{ID: "legend", Name: "Legend", Cost: 500},
		},
		Themes: []domain.PricedItem{
			{ID: domain.DefaultThemeID, Name: "Default", Cost: 0},
			{ID: "free", Name: "Free", Cost: 0},
			{ID: "ocean", Name: "Ocean", Cost: 150},
		},
		VIPPlans: []domain.VIPPlan{
			{ID: "week", Name: "Week", CostStars: 20, DurationDays: 7},
		},
		Challenges: []domain.ChallengeItem{
			{Type: domain.ChallengeSpeed, Name: "Speed", Cost: 50},
		},
	}
}

func newTestShop(t *testing.T) *Shop {
	t.Helper()
	sh, err := NewShop(testCatalog())
	require.NoError(t, err)
	return sh
}

func withXP(xp int) *domain.ProgressionState {
	s := domain.DefaultState()
	s.XP = xp
	s.Level = domain.LevelForXP(xp)
	return s
}

func TestNewShop_RejectsBadCatalogs(t *testing.T) {
	dup := testCatalog()
	dup.Titles = append(dup.Titles, domain.PricedItem{ID: "spark", Name: "Again", Cost: 1})
	_, err := NewShop(dup)
	assert.ErrorIs(t, err, domain.ErrInvalidSource)

	negative := testCatalog()
	negative.Themes[1].Cost = -1
	_, err = NewShop(negative)
	assert.ErrorIs(t, err, domain.ErrInvalidSource)

	noDefault := testCatalog()
	noDefault.Themes = noDefault.Themes[1:]
	_, err = NewShop(noDefault)
	assert.ErrorIs(t, err, domain.ErrInvalidSource)
}

func TestPurchase_Consumable(t *testing.T) {
	sh := newTestShop(t)
	s := withXP(130)

	res, err := sh.Purchase(s, domain.PurchaseRequest{Kind: domain.PurchaseConsumable, ItemID: "streak_shield"}, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPurchased, res.Status)
	assert.NotEmpty(t, res.TransactionID)
	assert.Equal(t, 30, s.XP)
	assert.Equal(t, 1, s.StreakShields)
	assert.Equal(t, 30, res.Balance)

	res, err = sh.Purchase(s, domain.PurchaseRequest{Kind: domain.PurchaseConsumable, ItemID: "hint_token"}, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInsufficientFunds, res.Status)
	assert.Equal(t, 10, res.Shortfall)
	assert.Equal(t, 30, s.XP)
	assert.Zero(t, s.ConsumableCount(domain.ConsumableHintToken))
}

func TestPurchase_InsufficientFundsLeavesStateUntouched(t *testing.T) {
	sh := newTestShop(t)
	requests := []domain.PurchaseRequest{
		{Kind: domain.PurchaseConsumable, ItemID: "xp_boost"},
		{Kind: domain.PurchaseTitle, ItemID: "legend"},
		{Kind: domain.PurchaseTheme, ItemID: "ocean"},
		{Kind: domain.PurchaseVIP, ItemID: "week"},
		{Kind: domain.PurchaseChallenge, ItemID: "speed", Subject: "math", Topic: "fractions"},
	}

	for _, req := range requests {
		t.Run(string(req.Kind), func(t *testing.T) {
			s := withXP(10)
			s.Stars = 5
			before := s.Clone()

			res, err := sh.Purchase(s, req, now)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusInsufficientFunds, res.Status)
			assert.ErrorIs(t, res.Err(), domain.ErrInsufficientFunds)
			assert.Positive(t, res.Shortfall)
			assert.Equal(t, before, s)
		})
	}
}

func TestPurchase_TitleBuyThenToggle(t *testing.T) {
	sh := newTestShop(t)
	s := withXP(100)
	req := domain.PurchaseRequest{Kind: domain.PurchaseTitle, ItemID: "spark"}

	res, err := sh.Purchase(s, req, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPurchased, res.Status)
	assert.Equal(t, 20, s.XP)
	require.NotNil(t, s.Cosmetics.ActiveTitle)
	assert.Equal(t, "spark", *s.Cosmetics.ActiveTitle)

	res, err = sh.Purchase(s, req, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnequipped, res.Status)
	assert.Nil(t, s.Cosmetics.ActiveTitle)
	assert.Equal(t, 20, s.XP, "toggle is free")

	res, err = sh.Purchase(s, req, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEquipped, res.Status)
	assert.Equal(t, "spark", *s.Cosmetics.ActiveTitle)
	assert.Equal(t, 20, s.XP)
}

func TestPurchase_Theme(t *testing.T) {
	sh := newTestShop(t)
	s := withXP(0)

	res, err := sh.Purchase(s, domain.PurchaseRequest{Kind: domain.PurchaseTheme, ItemID: "free"}, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPurchased, res.Status, "free theme succeeds with no balance")
	assert.Equal(t, "free", s.Cosmetics.ActiveTheme)

	res, err = sh.Purchase(s, domain.PurchaseRequest{Kind: domain.PurchaseTheme, ItemID: domain.DefaultThemeID}, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEquipped, res.Status)
	assert.Equal(t, domain.DefaultThemeID, s.Cosmetics.ActiveTheme)
	assert.True(t, s.Cosmetics.OwnedThemes.Has("free"))
}

func TestPurchase_VIPStacks(t *testing.T) {
	sh := newTestShop(t)
	s := withXP(0)
	s.Stars = 40
	req := domain.PurchaseRequest{Kind: domain.PurchaseVIP, ItemID: "week"}

	res, err := sh.Purchase(s, req, now)
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyStars, res.Currency)
	assert.Equal(t, now.Add(7*24*time.Hour), *res.VIPExpiry)

	_, err = sh.Purchase(s, req, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(14*24*time.Hour), *s.VIPExpiry)
	assert.Zero(t, s.Stars)
	assert.True(t, IsVip(s, now))
}

func TestExtendVIP_ExpiredRestartsFromNow(t *testing.T) {
	s := domain.DefaultState()
	past := now.Add(-time.Hour)
	s.VIPExpiry = &past

	expiry, stacked := ExtendVIP(s, 7, now)
	assert.False(t, stacked)
	assert.Equal(t, now.Add(7*24*time.Hour), expiry)
}

func TestPurchase_ChallengeIsPermanent(t *testing.T) {
	sh := newTestShop(t)
	s := withXP(60)
	req := domain.PurchaseRequest{Kind: domain.PurchaseChallenge, ItemID: "speed", Subject: "math", Topic: "fractions"}

	res, err := sh.Purchase(s, req, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPurchased, res.Status)
	assert.Equal(t, 10, s.XP)

	res, err = sh.Purchase(s, req, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOwned, res.Status)
	assert.Equal(t, 10, s.XP)
	assert.True(t, s.UnlockedChallenges.Has(domain.ChallengeKey{Subject: "math", Topic: "fractions", Type: domain.ChallengeSpeed}))
}

func TestPurchase_ProgrammingErrors(t *testing.T) {
	sh := newTestShop(t)
	tests := []struct {
		name    string
		req     domain.PurchaseRequest
		wantErr error
	}{
		{"unknown title", domain.PurchaseRequest{Kind: domain.PurchaseTitle, ItemID: "nope"}, domain.ErrUnknownCatalogItem},
		{"unknown kind", domain.PurchaseRequest{Kind: "pet", ItemID: "cat"}, domain.ErrInvalidPurchase},
		{"missing id", domain.PurchaseRequest{Kind: domain.PurchaseTitle}, domain.ErrInvalidPurchase},
		{"challenge without topic", domain.PurchaseRequest{Kind: domain.PurchaseChallenge, ItemID: "speed", Subject: "math"}, domain.ErrInvalidPurchase},
		{"consumable not in catalog", domain.PurchaseRequest{Kind: domain.PurchaseConsumable, ItemID: "chat_token"}, domain.ErrUnknownCatalogItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withXP(1000)
			before := s.Clone()
			_, err := sh.Purchase(s, tt.req, now)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, s)
		})
	}
}

func TestUseConsumable(t *testing.T) {
	s := domain.DefaultState()
	s.AddConsumable(domain.ConsumableHintToken, 1)

	used, err := UseConsumable(s, domain.ConsumableHintToken)
	require.NoError(t, err)
	assert.True(t, used)

	used, err = UseConsumable(s, domain.ConsumableHintToken)
	require.NoError(t, err)
	assert.False(t, used)
	assert.Zero(t, s.ConsumableCount(domain.ConsumableHintToken))

	_, err = UseConsumable(s, "mystery")
	assert.ErrorIs(t, err, domain.ErrUnknownConsumable)
}
