package apperr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	errSample = &Error{Message: "sample %s failed"}
	errOther  = &Error{Message: "other"}
)

func TestFmtKeepsIdentity(t *testing.T) {
	err := errSample.Fmt("thing")

	assert.Equal(t, "sample thing failed", err.Error())
	assert.ErrorIs(t, err, errSample)
	assert.NotErrorIs(t, err, errOther)
}

func TestWrap(t *testing.T) {
	err := errOther.Wrap(io.EOF)

	assert.Equal(t, "other: EOF", err.Error())
	assert.ErrorIs(t, err, errOther)
	assert.ErrorIs(t, err, io.EOF)
}

func TestNestedDerivation(t *testing.T) {
	err := errSample.Fmt("x").Wrap(io.ErrUnexpectedEOF)

	assert.True(t, errors.Is(err, errSample))
	assert.Equal(t, "sample x failed: unexpected EOF", err.Error())
}
