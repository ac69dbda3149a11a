package economy

import "time"

// ==================== Error Messages ====================

// Formatted error messages for catalog and purchase validation
const (
	ErrMsgInvalidCatalogFmt     = "invalid shop catalog: %v: %w"
	ErrMsgDuplicateCatalogIDFmt = "duplicate %s id %q: %w"
	ErrMsgInvalidRequestFmt     = "invalid purchase request: %v: %w"
	ErrMsgUnknownItemFmt        = "%s %q: %w"
	ErrMsgUnknownConsumableFmt  = "consumable %q: %w"
	ErrMsgChargeFailedFmt       = "failed to charge %s: %w"
	ErrMsgMissingDefaultTheme   = "catalog must contain the default theme"
)

// ==================== Time ====================

const (
	// VIPDay is the length of one day of VIP entitlement
	VIPDay = 24 * time.Hour
)
