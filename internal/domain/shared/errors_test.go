package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := NewDomainError("NOT_FOUND", "Product not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestDomainError_WithCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDomainErrorWithCause("INTERNAL_ERROR", "Failed to save", cause)

	assert.Equal(t, "Failed to save: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	de, ok := AsDomainError(fmt.Errorf("outer: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
}

func TestAsDomainError_PlainError(t *testing.T) {
	_, ok := AsDomainError(errors.New("plain"))
	assert.False(t, ok)
}
