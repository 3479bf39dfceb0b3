package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	e := Wrap(CodeTimeout, "search exceeded deadline", cause)
	assert.Equal(t, cause, errors.Unwrap(e))
	assert.Contains(t, e.Error(), "PLACE_TIMEOUT")
	assert.Contains(t, e.Error(), "boom")
}

func TestAppErrorWithDetail(t *testing.T) {
	e := New(CodeInfeasible, "no valid ilot fits").WithDetail("ilotCount", 0)
	assert.Equal(t, 0, e.Details["ilotCount"])
}

func TestCodeOf(t *testing.T) {
	e := New(CodeNoWalls, "zero walls survived classification")
	code, ok := CodeOf(e)
	require.True(t, ok)
	assert.Equal(t, CodeNoWalls, code)

	_, ok = CodeOf(errors.New("plain error"))
	assert.False(t, ok)
}

func TestAppErrorIs(t *testing.T) {
	a := New(CodeCancelled, "cancelled at iteration 1")
	b := New(CodeCancelled, "cancelled somewhere else")
	assert.True(t, errors.Is(a, b))

	c := New(CodeTimeout, "timed out")
	assert.False(t, errors.Is(a, c))
}
