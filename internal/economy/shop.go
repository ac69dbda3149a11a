// Package economy implements the shop: consumables, cosmetics, VIP time and
// challenge unlocks bought with XP or stars. Every purchase runs
// validate, debit, grant against a single record and leaves the record
// untouched when any step fails.
package economy

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/zephyr/internal/domain"
)

// Shop prices purchases against an immutable catalog
type Shop struct {
	catalog     domain.ShopCatalog
	consumables map[domain.ConsumableKind]domain.ConsumableItem
	titles      map[string]domain.PricedItem
	themes      map[string]domain.PricedItem
	vipPlans    map[string]domain.VIPPlan
	challenges  map[domain.ChallengeType]domain.ChallengeItem
	validate    *validator.Validate
}

// NewShop indexes and validates a catalog
func NewShop(catalog domain.ShopCatalog) (*Shop, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(catalog); err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidCatalogFmt, err, domain.ErrInvalidSource)
	}

	sh := &Shop{
		catalog:     catalog,
		consumables: make(map[domain.ConsumableKind]domain.ConsumableItem, len(catalog.Consumables)),
		titles:      make(map[string]domain.PricedItem, len(catalog.Titles)),
		themes:      make(map[string]domain.PricedItem, len(catalog.Themes)),
		vipPlans:    make(map[string]domain.VIPPlan, len(catalog.VIPPlans)),
		challenges:  make(map[domain.ChallengeType]domain.ChallengeItem, len(catalog.Challenges)),
		validate:    v,
	}

	for _, item := range catalog.Consumables {
		if _, dup := sh.consumables[item.Kind]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateCatalogIDFmt, domain.PurchaseConsumable, item.Kind, domain.ErrInvalidSource)
		}
		sh.consumables[item.Kind] = item
	}
	for _, item := range catalog.Titles {
		if _, dup := sh.titles[item.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateCatalogIDFmt, domain.PurchaseTitle, item.ID, domain.ErrInvalidSource)
		}
		sh.titles[item.ID] = item
	}
	for _, item := range catalog.Themes {
		if _, dup := sh.themes[item.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateCatalogIDFmt, domain.PurchaseTheme, item.ID, domain.ErrInvalidSource)
		}
		sh.themes[item.ID] = item
	}
	for _, plan := range catalog.VIPPlans {
		if _, dup := sh.vipPlans[plan.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateCatalogIDFmt, domain.PurchaseVIP, plan.ID, domain.ErrInvalidSource)
		}
		sh.vipPlans[plan.ID] = plan
	}
	for _, item := range catalog.Challenges {
		if _, dup := sh.challenges[item.Type]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateCatalogIDFmt, domain.PurchaseChallenge, item.Type, domain.ErrInvalidSource)
		}
		sh.challenges[item.Type] = item
	}

	if _, ok := sh.themes[domain.DefaultThemeID]; !ok {
		return nil, fmt.Errorf("%s: %w", ErrMsgMissingDefaultTheme, domain.ErrInvalidSource)
	}
	return sh, nil
}

// Catalog returns the catalog the shop was built from
func (sh *Shop) Catalog() domain.ShopCatalog {
	return sh.catalog
}

// ValidateRequest checks the shape of a request and that its item exists
func (sh *Shop) ValidateRequest(req domain.PurchaseRequest) error {
	if err := sh.validate.Struct(req); err != nil {
		return fmt.Errorf(ErrMsgInvalidRequestFmt, err, domain.ErrInvalidPurchase)
	}

	var known bool
	switch req.Kind {
	case domain.PurchaseConsumable:
		_, known = sh.consumables[domain.ConsumableKind(req.ItemID)]
	case domain.PurchaseTitle:
		_, known = sh.titles[req.ItemID]
	case domain.PurchaseTheme:
		_, known = sh.themes[req.ItemID]
	case domain.PurchaseVIP:
		_, known = sh.vipPlans[req.ItemID]
	case domain.PurchaseChallenge:
		_, known = sh.challenges[domain.ChallengeType(req.ItemID)]
	}
	if !known {
		return fmt.Errorf(ErrMsgUnknownItemFmt, req.Kind, req.ItemID, domain.ErrUnknownCatalogItem)
	}
	return nil
}

// IsVip reports whether the VIP entitlement of s is active at now
func IsVip(s *domain.ProgressionState, now time.Time) bool {
	return s.IsVIPAt(now)
}

// ExtendVIP adds days of entitlement, on top of the remaining time when still active
func ExtendVIP(s *domain.ProgressionState, days int, now time.Time) (expiry time.Time, stacked bool) {
	base := now
	if s.IsVIPAt(now) {
		base = *s.VIPExpiry
		stacked = true
	}
	expiry = base.Add(time.Duration(days) * VIPDay)
	s.VIPExpiry = &expiry
	return expiry, stacked
}

// UseConsumable spends one charge of kind and reports whether one was available
func UseConsumable(s *domain.ProgressionState, kind domain.ConsumableKind) (bool, error) {
	if !kind.IsValid() {
		return false, fmt.Errorf(ErrMsgUnknownConsumableFmt, kind, domain.ErrUnknownConsumable)
	}
	if s.ConsumableCount(kind) == 0 {
		return false, nil
	}
	s.AddConsumable(kind, -1)
	return true, nil
}
