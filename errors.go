package canvasfit

import (
	"errors"
	"strings"
)

var (
	ErrInvalidPreset = errors.New("invalid preset")
	ErrDecode        = errors.New("cannot decode image")
	ErrEmptySource   = errors.New("source image is empty")
	ErrWrite         = errors.New("cannot write image")
)

// Error records a failed operation. Both Kind and Err are reachable
// through errors.Is and errors.As.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
