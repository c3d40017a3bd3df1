// Package apperr defines the error kinds the API surfaces to callers.
// Handlers match them with errors.Is and map them to HTTP statuses; anything
// else is treated as an infrastructure failure and not retried.
package apperr

import "errors"

var (
	// ErrNotFound means a referenced bill or item id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means a malformed or out-of-range field: a non-positive
	// payment amount, a payment exceeding the remaining balance, missing
	// bounds for a custom stats period.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidOperation means the operation is not applicable to the
	// entity's state, e.g. paying a non-credit bill.
	ErrInvalidOperation = errors.New("invalid operation")
)
