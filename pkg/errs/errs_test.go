package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("duplicate key")
	wrapped := fmt.Errorf("add favorite: %w", Conflict("already in favorites").Wrap(base))

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindConflict))
	assert.True(t, errors.Is(wrapped, base))
	assert.Equal(t, KindInternal, KindOf(base))
	assert.False(t, Is(nil, KindInternal))
}

func TestErrorMessage(t *testing.T) {
	err := Validation("cooking_time", "must be at least %d", 1)
	assert.Equal(t, "cooking_time: must be at least 1", err.Error())
	assert.Equal(t, "not_found", NotFound("recipe %d", 3).Kind.String())
}
