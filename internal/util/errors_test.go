package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsAppErrorPassesThrough(t *testing.T) {
	orig := NewConflictError("already answered")
	got := AsAppError(orig)
	assert.Same(t, orig, got)
}

func TestAsAppErrorUnwrapsWrapped(t *testing.T) {
	orig := NewNotFoundError("assessment not found")
	wrapped := fmt.Errorf("get assessment: %w", orig)
	assert.Equal(t, KindNotFound, AsAppError(wrapped).Kind)
}

func TestAsAppErrorDefaultsToStore(t *testing.T) {
	got := AsAppError(errors.New("driver: bad connection"))
	assert.Equal(t, KindStore, got.Kind)
	assert.ErrorContains(t, got, "bad connection")
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(NewPermissionError("nope"), KindPermission))
	assert.False(t, IsKind(NewPermissionError("nope"), KindNotFound))
	assert.True(t, IsKind(errors.New("x"), KindStore))
}

func TestValidationErrorCarriesFields(t *testing.T) {
	err := NewValidationError("invalid question payload", map[string]string{"validAnswer": "required"})
	assert.Equal(t, "required", err.Fields["validAnswer"])
	assert.Equal(t, "invalid question payload", err.Error())
}
