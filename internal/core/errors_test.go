package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"invalid input", InvalidInput("%s must be alphanumeric", "foundryId"), KindInvalidInput},
		{"unauthenticated", Unauthenticated("Invalid Bearer token"), KindUnauthenticated},
		{"not found", NotFound("No such character"), KindNotFound},
		{"unsupported media", UnsupportedMedia("unsupported or corrupt image", errors.New("bad header")), KindUnsupportedMedia},
		{"internal", Internal("query", errors.New("conn reset")), KindInternal},
		{"wrapped", fmt.Errorf("write token: %w", NotFound("No such character")), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "foundryId must be exactly 16 characters", InvalidInput("%s must be exactly 16 characters", "foundryId").Error())

	cause := errors.New("connection refused")
	err := Internal("lookup api key", cause)
	assert.Equal(t, "lookup api key: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("No token found")))
	assert.False(t, IsNotFound(InvalidInput("x")))
	assert.False(t, IsNotFound(nil))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "invalid_input", KindInvalidInput.String())
	assert.Equal(t, "unauthenticated", KindUnauthenticated.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unsupported_media", KindUnsupportedMedia.String())
	assert.Equal(t, "internal", KindInternal.String())
}
