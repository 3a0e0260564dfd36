// Package common defines shared constants and sentinel errors used across
// the FishFarmer server and the fishctl tool. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Registration conflicts.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrPasswordTooLong   = errors.New("password is longer than 72 bytes")

	// Authentication failures.
	ErrAccountNotFound   = errors.New("account not found")
	ErrIncorrectPassword = errors.New("incorrect password")

	// Validation errors.
	ErrInvalidPreferences = errors.New("invalid preferences")
	ErrEmptyConversation  = errors.New("nothing to send: no messages and no farming data")

	// Advisor collaborator errors.
	ErrGeneratorUnavailable = errors.New("text generator is not configured")
)

// IsClientError reports whether err is caused by the caller's input rather
// than by a server-side fault.
func IsClientError(err error) bool {
	switch {
	case errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrPasswordTooLong),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrIncorrectPassword),
		errors.Is(err, ErrInvalidPreferences),
		errors.Is(err, ErrEmptyConversation):
		return true
	}
	return false
}
