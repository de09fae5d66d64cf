package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "session not found")
	assert.EqualError(t, err, "not_found: session not found")
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "grade %q is off the scale", "Z")
	assert.EqualError(t, err, `invalid_input: grade "Z" is off the scale`)
}

func TestWrap(t *testing.T) {
	t.Run("nil in, nil out", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, CodeInternal, "load profile"))
	})

	t.Run("preserves the cause in the chain", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeInternal, "load profile")
		assert.EqualError(t, err, "internal: load profile: connection refused")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("wrapping keeps inner codes findable", func(t *testing.T) {
		inner := New(CodeNotFound, "program not found")
		outer := Wrap(inner, CodeInternal, "load candidate")

		assert.Equal(t, CodeInternal, CodeOf(outer), "CodeOf reports the outermost code")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeNotFound), "HasCode searches the whole chain")
		assert.False(t, HasCode(outer, CodeUnavailable))
	})
}

func TestCodeOf(t *testing.T) {
	t.Run("uncoded errors default to internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	})

	t.Run("finds a code behind fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("stage failed: %w", New(CodeUnavailable, "market store down"))
		assert.Equal(t, CodeUnavailable, CodeOf(err))
	})
}

func TestHasCode(t *testing.T) {
	assert.False(t, HasCode(nil, CodeInternal))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.True(t, Is(New(CodeBadRequest, "bad json"), CodeBadRequest))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(cause, CodeInternal, "outer")

	var coded *Error
	require.True(t, errors.As(err, &coded))
	assert.Same(t, cause, coded.Unwrap())
}
