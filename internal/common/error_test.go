package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicate username", ErrDuplicateUsername, true},
		{"duplicate email wrapped", fmt.Errorf("register: %w", ErrDuplicateEmail), true},
		{"password too long", ErrPasswordTooLong, true},
		{"not found", ErrAccountNotFound, true},
		{"wrong password", ErrIncorrectPassword, true},
		{"invalid preferences", ErrInvalidPreferences, true},
		{"empty conversation", ErrEmptyConversation, true},
		{"internal", ErrorInternal, false},
		{"generator missing", ErrGeneratorUnavailable, false},
		{"io error", errors.New("disk full"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsClientError(tt.err))
		})
	}
}
