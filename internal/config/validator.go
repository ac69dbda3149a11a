package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists the variables every deployment must set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"STORE_BACKEND",
}

// BackendEnvVars lists the additional variables each store backend needs
var BackendEnvVars = map[string][]string{
	BackendPostgres: {"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME"},
	BackendSQLite:   {"SQLITE_PATH"},
	BackendRedis:    {"REDIS_ADDR"},
	BackendMemory:   {},
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf(ErrMsgSchemaNotSet, ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf(ErrMsgSchemaMismatch, ExpectedEnvSchemaVersion, schemaVersion)
	}

	required := append([]string{}, RequiredEnvVars...)
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		extra, ok := BackendEnvVars[backend]
		if !ok {
			return fmt.Errorf(ErrMsgUnknownBackend, backend)
		}
		required = append(required, extra...)
	}

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf(ErrMsgMissingRequired, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using example values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	switch os.Getenv("STORE_BACKEND") {
	case BackendPostgres:
		if os.Getenv("DB_PASSWORD") == insecureDBPassword {
			warnings = append(warnings, WarnMsgInsecureDBPass)
		}
	case BackendRedis:
		if os.Getenv("REDIS_PASSWORD") == insecureRedisPass {
			warnings = append(warnings, WarnMsgInsecureRedis)
		}
	case BackendMemory:
		warnings = append(warnings, WarnMsgMemoryInProd)
	}
	if os.Getenv("DEV_MODE") == "true" {
		warnings = append(warnings, WarnMsgCooldownDevMode)
	}
	return warnings, nil
}
