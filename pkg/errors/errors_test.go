package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_KeepsKindAndSentinel(t *testing.T) {
	sentinel := NewUnavailableError("registry unavailable")
	cause := errors.New("connection refused")

	err := Wrap(sentinel, cause)

	require.Error(t, err)
	assert.True(t, IsUnavailableError(err))
	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "registry unavailable: connection refused", err.Error())
	assert.Equal(t, KindUnavailable, KindOf(err))
}

func TestWrap_NilCause(t *testing.T) {
	sentinel := NewNotFoundError("missing")
	assert.Same(t, sentinel, Wrap(sentinel, nil))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", NewValidationError("bad id"), KindValidation},
		{"not found", NewNotFoundError("x"), KindNotFound},
		{"unavailable", NewUnavailableError("x"), KindUnavailable},
		{"permission", NewPermissionError("x"), KindPermission},
		{"wrapped", fmt.Errorf("upsert: %w", NewPermissionError("x")), KindPermission},
		{"plain", errors.New("x"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "unavailable", KindUnavailable.String())
	assert.Equal(t, "internal", Kind(42).String())
}
