// Package auth hashes and verifies account passwords with bcrypt.
package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fishfarmer/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by CheckPassword when the password is wrong.
var ErrMismatch = errors.New("password does not match hash")

// HashPassword returns a bcrypt hash of password with a fresh random salt.
// Passwords over bcrypt's 72-byte input limit are rejected with
// common.ErrPasswordTooLong rather than silently truncated.
func HashPassword(password string, cost int) (string, error) {
	if len(password) > 72 {
		return "", common.ErrPasswordTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword verifies password against a stored bcrypt hash using the
// salt embedded in the hash. A wrong password yields ErrMismatch; a hash
// that cannot be parsed yields a different error.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("check password: %w", err)
}
