package catalog

// ==================== Error Messages ====================

const (
	ErrMsgReadFileFailed      = "failed to read catalog file %s: %w"
	ErrMsgDecodeFailed        = "failed to decode catalog %s: %v: %w"
	ErrMsgValidationFailed    = "catalog %s failed validation: %v: %w"
	ErrMsgSchemaFailed        = "catalog %s does not match its schema: %v: %w"
	ErrMsgDuplicateSubjectFmt = "duplicate subject %q: %w"
	ErrMsgDuplicateTopicFmt   = "duplicate topic %q in subject %q: %w"
	ErrMsgUnknownTopicFmt     = "%s/%s: %w"
	ErrMsgLevelOutOfRangeFmt  = "level %d of %s/%s (has %d): %w"
	ErrMsgGradeOutOfRangeFmt  = "grade %d: %w"
)

// ==================== Embedded Defaults ====================

const (
	defaultCurriculumFile = "defaults/curriculum.json"
	defaultShopFile       = "defaults/shop.json"

	curriculumSchema = "schemas/curriculum.schema.json"
	shopSchema       = "schemas/shop.schema.json"
)
