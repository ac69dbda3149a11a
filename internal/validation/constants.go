package validation

const (
	ErrMsgSchemaValidationFailed = "schema validation failed"
	ErrMsgLoadSchemaFmt          = "failed to load schema %s: %w"
	ErrMsgParseDataFmt           = "failed to parse JSON data: %w"
	ErrMsgParseSchemaFmt         = "failed to parse schema JSON: %w"
	ErrMsgValidationFmt          = "validation error: %w"
)
