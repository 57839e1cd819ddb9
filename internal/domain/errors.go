package domain

import "errors"

var (
	// Validation errors
	ErrMissingField     = errors.New("missing_field")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidType      = errors.New("invalid_type")
	ErrInvalidTimestamp = errors.New("invalid_timestamp")

	// Store errors
	ErrDuplicateTransaction = errors.New("transaction already exists")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrStorageUnavailable   = errors.New("storage unavailable")
)

// IsValidationError reports whether err belongs to the validation class.
// Validation failures are deterministic for a given payload and must never
// be retried by callers.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidTimestamp)
}
