package repository

import "errors"

var (
	// ErrNotFound reports that an id or filter resolved no record. Callers
	// decide whether absence is an error in their own context.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidQuery reports a malformed caller-supplied query specification,
	// such as an unsupported sort field or direction.
	ErrInvalidQuery = errors.New("invalid query specification")
)
