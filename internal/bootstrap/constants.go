package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting zephyr"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventJournalRegistered     = "Event journal registered"
	LogMsgEventJournaled             = "Progression event"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Backend Messages
// =============================================================================

const (
	LogMsgBackendOpened      = "Progression backend opened"
	LogMsgMigrationsApplied  = "Database migrations applied"
	LogMsgBackendCloseFailed = "Progression backend close failed"

	ErrMsgUnknownBackend       = "unknown store backend %q"
	ErrMsgFailedConnectDB      = "failed to connect to database"
	ErrMsgFailedMigrate        = "failed to migrate database"
	ErrMsgFailedOpenSQLite     = "failed to open sqlite store"
	ErrMsgFailedConnectRedis   = "failed to connect to redis"
	ErrMsgFailedLoadCurriculum = "failed to load curriculum"
	ErrMsgFailedLoadShop       = "failed to load shop catalog"
	ErrMsgInvalidShop          = "invalid shop catalog"
)

// =============================================================================
// Engine Messages
// =============================================================================

const (
	LogMsgCatalogsLoaded   = "Catalogs loaded"
	LogMsgEngineReady      = "Progression engine ready"
	LogMsgCooldownSelected = "Purchase cooldown enabled"

	// CooldownBackendPostgres and CooldownBackendMemory name the cooldown store in logs
	CooldownBackendPostgres = "postgres"
	CooldownBackendMemory   = "memory"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"

	// Service names for shutdown logging
	ServiceNameStudent = "student"
)

// Shutdown log message format (service name will be prepended)
const (
	LogMsgServiceShutdownFailed = " service shutdown failed"
)
