package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// stock ledger guard failures. Both abort the surrounding transaction.
var (
	ErrorInsufficientStock    = errors.New("insufficient stock")
	ErrorInsufficientReserved = errors.New("insufficient reserved stock")
)

// ValidationError is a bad-request input failure (missing field, bad enum,
// non-positive quantity). Field may be empty for cross-field messages.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError is a per-organization uniqueness violation (duplicate name,
// code or document number).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

// StateError is a workflow precondition failure, e.g. receiving an order that
// is not approved or editing a paid invoice.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

func NewStateError(message string) error {
	return &StateError{Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsStateError(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}
