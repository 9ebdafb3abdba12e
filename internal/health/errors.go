package health

import "errors"

var (
	// ErrInvalidInput rejects out-of-range values (non-positive weight or
	// amount, unknown activity level).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState rejects session transitions called out of order.
	ErrInvalidState = errors.New("invalid state")
)
