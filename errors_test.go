package canvasfit

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := error(&Error{Kind: ErrWrite, Op: "write", Path: "out.png", Err: fs.ErrPermission})

	assert.Equal(t, "write out.png: cannot write image: permission denied", err.Error())
	assert.True(t, errors.Is(err, ErrWrite))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.False(t, errors.Is(err, ErrDecode))

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "out.png", e.Path)
}

func TestError_NoCause(t *testing.T) {
	err := error(&Error{Kind: ErrEmptySource, Op: "layout"})
	assert.Equal(t, "layout: source image is empty", err.Error())
	assert.True(t, errors.Is(err, ErrEmptySource))
}
