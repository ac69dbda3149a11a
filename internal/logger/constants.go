package logger

// Level and format values accepted by Config
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"

	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Environments that change logger defaults
const (
	EnvironmentDev        = "dev"
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "prod"
	EnvironmentCLI        = "cli"
)

// CLIServiceName tags records written by the operator CLI
const CLIServiceName = "zephyrctl"

// Attribute keys added to every record or by FromContext
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyIdentity    = "identity"
)
