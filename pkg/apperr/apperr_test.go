package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestIsKindUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", OutOfStock("apple"))
	assert.True(t, IsKind(wrapped, KindOutOfStock))
	assert.False(t, IsKind(wrapped, KindNotFound))
}
