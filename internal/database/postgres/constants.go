package postgres

// SQL statements for progression records
const (
	SQLSelectState = `SELECT revision, state FROM progression_states WHERE identity = $1`

	// SQLUpsertState keeps the stored row when its revision is not older
	SQLUpsertState = `
		INSERT INTO progression_states (identity, revision, schema_version, state, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (identity) DO UPDATE
		SET revision = EXCLUDED.revision,
		    schema_version = EXCLUDED.schema_version,
		    state = EXCLUDED.state,
		    updated_at = EXCLUDED.updated_at
		WHERE progression_states.revision < EXCLUDED.revision
	`

	SQLDeleteState = `DELETE FROM progression_states WHERE identity = $1`

	SQLListIdentities = `SELECT identity FROM progression_states ORDER BY identity`
)

// Error Messages
const (
	ErrMsgFailedToLoadState   = "failed to load progression state"
	ErrMsgFailedToSaveState   = "failed to save progression state"
	ErrMsgFailedToDeleteState = "failed to delete progression state"
	ErrMsgFailedToList        = "failed to list identities"
)
