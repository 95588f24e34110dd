package tracking

import "errors"

var (
	// ErrNotFound means the report referenced a user that does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidInput means the report was malformed: missing or
	// non-positive user id, or non-finite coordinates.
	ErrInvalidInput = errors.New("invalid input")
)
