package store

import "time"

// LoadSource tells where a loaded record came from
type LoadSource string

const (
	// SourcePending is a snapshot saved in this process and not yet durably written
	SourcePending LoadSource = "pending"
	// SourceStore is a record read from the backend
	SourceStore LoadSource = "store"
	// SourceMissing is the default record of a student the backend has never seen
	SourceMissing LoadSource = "missing"
	// SourceFallback is the default record substituted for an unreadable one
	SourceFallback LoadSource = "fallback"
)

// Writer defaults
const (
	DefaultRetries      = 3
	DefaultRetryDelay   = 200 * time.Millisecond
	DefaultWriteTimeout = 5 * time.Second
)

// Log messages
const (
	LogMsgLoadFallback      = "Progression record unreadable, using defaults"
	LogMsgLoadDetached      = "Progression store unreachable, using defaults until the stored revision is known"
	LogMsgPersistDeferred   = "Progression write deferred, stored revision unknown"
	LogMsgDetachedConflict  = "Stored progression record became readable after a fallback session, keeping it"
	LogMsgPersistRetry      = "Progression write failed, retrying"
	LogMsgPersistFailed     = "Progression write failed after retries"
	LogMsgPersistStale      = "Progression write superseded by newer stored revision"
	LogMsgPersistedSnapshot = "Progression snapshot persisted"
	LogMsgWriterStopped     = "Progression writer stopped"
)
