package config

import "time"

// Store backends
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Defaults that are not expressed as struct tags
const (
	// LogFilesKept is the number of session log files retained in LOG_DIR
	LogFilesKept = 9

	// ShutdownTimeout bounds the drain of writers and publishers on exit
	ShutdownTimeout = 10 * time.Second
)

// Example values shipped in .env.example that must never reach production
const (
	insecureDBPassword = "change_this_secure_password"
	insecureRedisPass  = "change_this_redis_password"
)

// Error messages
const (
	ErrMsgParseEnv         = "failed to parse environment: %w"
	ErrMsgInvalidVariables = "invalid value for %s: %w"
	ErrMsgInvalidConfig    = "invalid configuration: %w"
	ErrMsgInvalidTimezone  = "invalid TIMEZONE %q: %w"
	ErrMsgSchemaNotSet     = "ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)"
	ErrMsgSchemaMismatch   = "ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated"
	ErrMsgMissingRequired  = "missing required environment variables: %s"
	ErrMsgUnknownBackend   = "unknown STORE_BACKEND %q"
	WarnMsgInsecureDBPass  = "DB_PASSWORD appears to be using the example value - please use a secure password"
	WarnMsgInsecureRedis   = "REDIS_PASSWORD appears to be using the example value - please use a secure password"
	WarnMsgMemoryInProd    = "STORE_BACKEND=memory keeps progression only for the life of the process"
	WarnMsgCooldownDevMode = "DEV_MODE disables the purchase cooldown"
)
