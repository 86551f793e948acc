package peony

import (
	"errors"
	"fmt"
)

var (
	ErrZeroScale       = errors.New("scale must be non-zero")
	ErrTooFewPoints    = errors.New("shape needs at least 3 points")
	ErrInvalidLeafType = errors.New("invalid leaf type")
	ErrMissingField    = errors.New("missing field")
	ErrInvalidField    = errors.New("invalid field")
	ErrCycle           = errors.New("move would create a cycle")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidName     = errors.New("invalid name")
	ErrNotFound        = errors.New("not found")
)

// DocumentError reports a malformed document. Path locates the offending
// value, e.g. "layout.root.children[1].transformation.scale".
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("document: %v", e.Err)
	}
	return fmt.Sprintf("document: %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
