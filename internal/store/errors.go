package store

import "fmt"

// Error provides detailed information about a failed list file operation.
type Error struct {
	Op   string // "read", "write", "remove", "stat"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Err: err}
}
