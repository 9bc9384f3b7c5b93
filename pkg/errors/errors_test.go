package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasError_Message(t *testing.T) {
	err := NewResourceLimitError("maximum nodes (10000) exceeded")

	assert.Equal(t, "[RESOURCE_LIMIT_EXCEEDED] maximum nodes (10000) exceeded", err.Error())
}

func TestCanvasError_WithCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewValidationError("invalid configuration").WithCause(cause)

	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestCanvasError_Is_MatchesByType(t *testing.T) {
	err := NewResourceLimitError("one thing")

	assert.True(t, stderrors.Is(err, NewResourceLimitError("another thing")))
	assert.False(t, stderrors.Is(err, NewValidationError("another thing")))
}

func TestCanvasError_WithDetail(t *testing.T) {
	err := NewResourceLimitError("node coordinates out of bounds").
		WithDetail("x", 1_000_001.0).
		WithDetail("y", 0.0)

	require.NotNil(t, err.Details)
	assert.Equal(t, 1_000_001.0, err.Details["x"])
	assert.Equal(t, 0.0, err.Details["y"])
}

func TestNodeNotFoundError_CarriesID(t *testing.T) {
	err := NewNodeNotFoundError(42)

	assert.True(t, IsNodeNotFound(err))
	assert.Contains(t, err.Error(), "42")

	id, ok := NodeIDFromError(err)
	require.True(t, ok)
	assert.Equal(t, uint64(42), uint64(id))
}

func TestNodeIDFromError_OtherErrors(t *testing.T) {
	_, ok := NodeIDFromError(NewValidationError("nope"))
	assert.False(t, ok)

	_, ok = NodeIDFromError(fmt.Errorf("plain error"))
	assert.False(t, ok)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		want      bool
	}{
		{"resource limit", NewResourceLimitError("x"), IsResourceLimit, true},
		{"not found", NewNodeNotFoundError(1), IsNodeNotFound, true},
		{"validation", NewValidationError("x"), IsValidation, true},
		{"security", NewSecurityError("x"), IsSecurity, true},
		{"mismatched type", NewParseError("x"), IsResourceLimit, false},
		{"plain error", fmt.Errorf("x"), IsValidation, false},
		{"nil", nil, IsNodeNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.predicate(tt.err))
		})
	}
}
