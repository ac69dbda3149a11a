package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Economy errors
	ErrMsgInsufficientFunds  = "insufficient funds"
	ErrMsgUnknownCatalogItem = "unknown catalog item"
	ErrMsgInvalidPurchase    = "invalid purchase request"

	// Amount errors
	ErrMsgInvalidAmount = "amount must be positive"

	// Curriculum errors
	ErrMsgUnknownTopic  = "unknown subject or topic"
	ErrMsgInvalidLevel  = "level out of range"
	ErrMsgInvalidGrade  = "grade out of range"
	ErrMsgInvalidSource = "invalid catalog source"

	// Streak errors
	ErrMsgNoRepairOffer = "no streak repair offer"

	// Consumable errors
	ErrMsgUnknownConsumable = "unknown consumable"

	// Persistence errors
	ErrMsgStateNotFound    = "progression state not found"
	ErrMsgStaleRevision    = "stale progression revision"
	ErrMsgCorruptState     = "corrupt progression state"
	ErrMsgInvalidIdentity  = "invalid identity"
	ErrMsgStoreUnavailable = "progression store unavailable"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInsufficientFunds  = errors.New(ErrMsgInsufficientFunds)
	ErrUnknownCatalogItem = errors.New(ErrMsgUnknownCatalogItem)
	ErrInvalidPurchase    = errors.New(ErrMsgInvalidPurchase)

	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)

	ErrUnknownTopic  = errors.New(ErrMsgUnknownTopic)
	ErrInvalidLevel  = errors.New(ErrMsgInvalidLevel)
	ErrInvalidGrade  = errors.New(ErrMsgInvalidGrade)
	ErrInvalidSource = errors.New(ErrMsgInvalidSource)

	ErrNoRepairOffer = errors.New(ErrMsgNoRepairOffer)

	ErrUnknownConsumable = errors.New(ErrMsgUnknownConsumable)

	ErrStateNotFound    = errors.New(ErrMsgStateNotFound)
	ErrStaleRevision    = errors.New(ErrMsgStaleRevision)
	ErrCorruptState     = errors.New(ErrMsgCorruptState)
	ErrInvalidIdentity  = errors.New(ErrMsgInvalidIdentity)
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)

	ErrOnCooldown = errors.New(ErrMsgOnCooldown)
)

// InsufficientFundsError carries the exact shortfall of a rejected purchase
type InsufficientFundsError struct {
	Currency Currency
	Cost     int
	Balance  int
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: need %d %s, have %d (short %d)",
		ErrMsgInsufficientFunds, e.Cost, e.Currency, e.Balance, e.Shortfall())
}

// Shortfall returns how much more currency the purchase needed
func (e InsufficientFundsError) Shortfall() int {
	if e.Cost <= e.Balance {
		return 0
	}
	return e.Cost - e.Balance
}

// Is allows errors.Is() to match both InsufficientFundsError and ErrInsufficientFunds
func (e InsufficientFundsError) Is(target error) bool {
	if target == ErrInsufficientFunds {
		return true
	}
	_, ok := target.(InsufficientFundsError)
	return ok
}

// CorruptStateError reports a stored record that could not be decoded.
// Revision is the stored revision, so a replacement record can supersede it.
type CorruptStateError struct {
	Revision int64
	Cause    error
}

func (e CorruptStateError) Error() string {
	return fmt.Sprintf("%s at revision %d: %v", ErrMsgCorruptState, e.Revision, e.Cause)
}

// Is allows errors.Is() to match ErrCorruptState
func (e CorruptStateError) Is(target error) bool {
	return target == ErrCorruptState
}

func (e CorruptStateError) Unwrap() error {
	return e.Cause
}
