package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies why a catalog could not be loaded.
type Kind int

const (
	KindLoad Kind = iota + 1
	KindParse
	KindValidation
)

var (
	ErrLoad       = errors.New("catalog unreadable")
	ErrParse      = errors.New("catalog malformed")
	ErrValidation = errors.New("catalog invalid")
)

// Error is returned by every loader in this package.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not load catalog: %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets callers match on the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrLoad:
		return e.Kind == KindLoad
	case ErrParse:
		return e.Kind == KindParse
	case ErrValidation:
		return e.Kind == KindValidation
	}
	return false
}

func loadError(path string, err error) error {
	return &Error{Kind: KindLoad, Path: path, Err: err}
}

func parseError(path string, err error) error {
	return &Error{Kind: KindParse, Path: path, Err: err}
}

func validationError(path string, format string, args ...any) error {
	return &Error{Kind: KindValidation, Path: path, Err: fmt.Errorf(format, args...)}
}
