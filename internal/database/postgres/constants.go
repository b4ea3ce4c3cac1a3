package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Document Operations
const (
	ErrMsgScanDocument      = "failed to scan document"
	ErrMsgUnmarshalDocument = "failed to unmarshal document"
	ErrMsgMarshalDocument   = "failed to marshal document"
	ErrMsgUpdateDocument    = "failed to update document"
)

// Error Messages - Transaction Operations
const (
	ErrMsgBeginTransaction  = "failed to begin transaction"
	ErrMsgCommitTransaction = "failed to commit transaction"
)

// Log Messages
const (
	LogMsgRollbackFailed = "Failed to rollback transaction"
)
