// Package errs defines the domain error taxonomy shared by all three
// registries. Handlers translate these into HTTP status codes; services and
// repositories wrap them with fmt.Errorf("%w") so callers can inspect them
// with errors.Is.
package errs

import "errors"

var (
	// ErrNotFound signals that no record exists for the given identifier
	// or lookup key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey signals a unique-field collision on create or update.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidStateTransition signals an attempted mutation or cancellation
	// of a transaction that has already reached a terminal status.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrValidation signals a candidate record the core cannot represent,
	// e.g. an unknown status value or a non-positive amount.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientFunds signals a settlement whose balance effect would
	// drive the account negative. The settlement is not applied.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
