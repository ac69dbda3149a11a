package handler

import "time"

// Health statuses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

const (
	// ReadinessTimeout bounds the store ping of /readyz
	ReadinessTimeout = 2 * time.Second

	// MsgStoreUnavailable is reported when the progression store does not answer
	MsgStoreUnavailable = "progression store unavailable"

	// DefaultVersion is reported when no version is configured
	DefaultVersion = "dev"
)

// Log messages
const (
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
)
