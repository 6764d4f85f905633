package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Kind(t *testing.T) {
	err := Invalid("Amount cannot be negative.")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Amount cannot be negative.", err.Error())
}

func TestError_WrappedKeepsKind(t *testing.T) {
	err := fmt.Errorf("updating expense 3: %w", NotAuthorized("not yours"))

	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, "not yours", Message(err))
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
