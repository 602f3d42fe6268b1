package typesystem

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongVariant is wrapped by every WrongVariantError.
	ErrWrongVariant = errors.New("wrong type variant")

	ErrNoOverloads      = errors.New("no named callables to merge")
	ErrKindMismatch     = errors.New("callables disagree on kind")
	ErrImplicitMismatch = errors.New("callables disagree on implicit argument")
)

// WrongVariantError indicates an accessor was applied to a type of another variant.
type WrongVariantError struct {
	Accessor string
	Want     string
	Got      Type
}

func (e *WrongVariantError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Accessor, e.Want, e.Got)
}

func (e *WrongVariantError) Unwrap() error { return ErrWrongVariant }

func NewWrongVariantError(accessor, want string, got Type) *WrongVariantError {
	return &WrongVariantError{Accessor: accessor, Want: want, Got: got}
}

// MergeError reports the callable that could not be merged by FromOverloads.
type MergeError struct {
	Index int
	Name  string
	Err   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merging overload %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }
