package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/forcegen/compiler/naming"
)

func TestSchemaError(t *testing.T) {
	cause := errors.New("reference field Contact.AccountId has no targets")
	err := NewSchemaError("Contact", cause)

	assert.Equal(t, "forcegen: invalid object Contact: reference field Contact.AccountId has no targets", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.True(t, IsSchemaError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsSchemaError(errors.New("other")))
}

func TestConfigError(t *testing.T) {
	t.Run("with value", func(t *testing.T) {
		err := NewConfigError("BatchSize", -1, "batch size must be positive")
		assert.Equal(t, "forcegen: option BatchSize: batch size must be positive (got -1)", err.Error())
	})

	t.Run("without value", func(t *testing.T) {
		err := NewConfigError("Template", nil, "template cannot be nil")
		assert.Equal(t, "forcegen: option Template: template cannot be nil", err.Error())
	})

	t.Run("matches sentinel", func(t *testing.T) {
		err := NewConfigError("Template", nil, "missing")
		assert.ErrorIs(t, err, ErrMissingConfig)
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewGenerationError(PhaseRender, "Account", cause)

	assert.Equal(t, "forcegen: render Account: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.True(t, IsGenerationError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsGenerationError(cause))
}

func TestIsNameError(t *testing.T) {
	err := naming.NewNameError("package", "...", "empty")
	assert.True(t, IsNameError(err))
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.False(t, IsNameError(errors.New("other")))
}
