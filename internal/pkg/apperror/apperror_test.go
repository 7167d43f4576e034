package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	errMissing := New(KindNotFound, "leave request not found")
	wrapped := fmt.Errorf("get leave request: %w", errMissing)

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, kind)
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindForbidden))
	assert.True(t, errors.Is(wrapped, errMissing))
	assert.Equal(t, "leave request not found", errMissing.Error())
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	assert.False(t, ok)
	assert.False(t, Is(nil, KindState))
}

func TestSentinelsAreDistinct(t *testing.T) {
	a := New(KindConflict, "duplicate")
	b := New(KindConflict, "duplicate")
	assert.False(t, errors.Is(a, b))
}
