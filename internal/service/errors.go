// Package service implements the business rules of the backend on top of the
// repository layer: authentication and session lifecycle, user registration,
// catalog management, order placement and upload bookkeeping.
package service

import "errors"

// Sentinel errors returned by the services. The HTTP layer maps them to
// status codes; messages wrapped around them are safe to show to clients.
var (
	// ErrValidation marks a malformed or semantically invalid input.
	ErrValidation = errors.New("invalid input")
	// ErrConflict marks a uniqueness violation such as a duplicate email.
	ErrConflict = errors.New("resource already exists")
	// ErrAuthentication is returned for every login failure regardless of
	// which step failed, so responses never reveal whether the account
	// exists.
	ErrAuthentication = errors.New("invalid credentials")
	// ErrForbidden marks an authenticated caller lacking the required role.
	ErrForbidden = errors.New("forbidden")
)
