package economy

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/ledger"
)

// Purchase applies req to s. Funds shortfalls are reported in the result with
// s unchanged; malformed requests and unknown catalog ids return an error.
// Callers must serialise purchases per record.
func (sh *Shop) Purchase(s *domain.ProgressionState, req domain.PurchaseRequest, now time.Time) (domain.PurchaseResult, error) {
	if err := sh.ValidateRequest(req); err != nil {
		return domain.PurchaseResult{}, err
	}

	result := domain.PurchaseResult{
		TransactionID: uuid.NewString(),
		Kind:          req.Kind,
		ItemID:        req.ItemID,
		Currency:      domain.CurrencyXP,
	}

	switch req.Kind {
	case domain.PurchaseConsumable:
		item := sh.consumables[domain.ConsumableKind(req.ItemID)]
		return charge(s, result, item.Cost, func() {
			s.AddConsumable(item.Kind, 1)
		})

	case domain.PurchaseTitle:
		item := sh.titles[req.ItemID]
		if s.Cosmetics.OwnedTitles.Has(item.ID) {
			return toggleTitle(s, result, item.ID), nil
		}
		return charge(s, result, item.Cost, func() {
			s.Cosmetics.OwnedTitles.Add(item.ID)
			id := item.ID
			s.Cosmetics.ActiveTitle = &id
		})

	case domain.PurchaseTheme:
		item := sh.themes[req.ItemID]
		if s.Cosmetics.OwnedThemes.Has(item.ID) {
			s.Cosmetics.ActiveTheme = item.ID
			result.Status = domain.StatusEquipped
			result.Balance = s.XP
			return result, nil
		}
		return charge(s, result, item.Cost, func() {
			s.Cosmetics.OwnedThemes.Add(item.ID)
			s.Cosmetics.ActiveTheme = item.ID
		})

	case domain.PurchaseVIP:
		plan := sh.vipPlans[req.ItemID]
		result.Currency = domain.CurrencyStars
		res, err := charge(s, result, plan.CostStars, func() {
			ExtendVIP(s, plan.DurationDays, now)
		})
		if err == nil && res.Status == domain.StatusPurchased {
			expiry := *s.VIPExpiry
			res.VIPExpiry = &expiry
		}
		return res, err

	case domain.PurchaseChallenge:
		item := sh.challenges[domain.ChallengeType(req.ItemID)]
		key := domain.ChallengeKey{Subject: req.Subject, Topic: req.Topic, Type: item.Type}
		if s.UnlockedChallenges.Has(key) {
			result.Status = domain.StatusOwned
			result.Balance = s.XP
			return result, nil
		}
		return charge(s, result, item.Cost, func() {
			s.UnlockedChallenges.Add(key)
		})
	}

	// ValidateRequest rejects every other kind
	return domain.PurchaseResult{}, fmt.Errorf(ErrMsgUnknownItemFmt, req.Kind, req.ItemID, domain.ErrUnknownCatalogItem)
}

// charge debits cost in result.Currency and runs grant only when the debit succeeded
func charge(s *domain.ProgressionState, result domain.PurchaseResult, cost int, grant func()) (domain.PurchaseResult, error) {
	result.Cost = cost

	ok, err := ledger.Charge(s, result.Currency, cost)
	if err != nil {
		return domain.PurchaseResult{}, fmt.Errorf(ErrMsgChargeFailedFmt, result.Currency, err)
	}
	if !ok {
		result.Status = domain.StatusInsufficientFunds
		result.Balance = ledger.Balance(s, result.Currency)
		result.Shortfall = cost - result.Balance
		return result, nil
	}

	grant()
	result.Status = domain.StatusPurchased
	result.Balance = ledger.Balance(s, result.Currency)
	return result, nil
}

// toggleTitle equips an owned title, or clears it when it is already active
func toggleTitle(s *domain.ProgressionState, result domain.PurchaseResult, id string) domain.PurchaseResult {
	if s.Cosmetics.ActiveTitle != nil && *s.Cosmetics.ActiveTitle == id {
		s.Cosmetics.ActiveTitle = nil
		result.Status = domain.StatusUnequipped
	} else {
		s.Cosmetics.ActiveTitle = &id
		result.Status = domain.StatusEquipped
	}
	result.Balance = s.XP
	return result
}
