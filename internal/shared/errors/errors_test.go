package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	cause := errors.New("connection refused")

	assert.Equal(t, "user not found", NotFoundf("user %s", "not found").Error())
	assert.Equal(t, "failed to load user: connection refused", WrapInternal("failed to load user", cause).Error())
}

func TestGetType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"not found", NotFoundf("missing"), ErrorTypeNotFound},
		{"validation", Validation("bad"), ErrorTypeValidation},
		{"conflict", Conflictf("dup %d", 1), ErrorTypeConflict},
		{"unauthorized", Unauthorized("nope"), ErrorTypeUnauthorized},
		{"external", WrapExternal("idp down", errors.New("eof")), ErrorTypeExternal},
		{"wrapped app error", fmt.Errorf("outer: %w", Validation("bad")), ErrorTypeValidation},
		{"plain error defaults to internal", errors.New("boom"), ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetType(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFoundf("provider %q", "github"))

	assert.True(t, Is(err, ErrorTypeNotFound))
	assert.False(t, Is(err, ErrorTypeInternal))
	assert.False(t, Is(errors.New("plain"), ErrorTypeNotFound))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapInternal("context", cause)

	assert.ErrorIs(t, err, cause)
}
