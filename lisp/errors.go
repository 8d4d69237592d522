package lisp

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongType indicates an operand whose dynamic type did not
	// match what a primitive requires.
	ErrWrongType = errors.New("lisp: wrong type argument")

	// ErrPureWrite indicates an attempted mutation of a cell marked
	// pure (read-only).
	ErrPureWrite = errors.New("lisp: attempt to modify read-only object")
)

// TypeError carries the expected type and the offending value for a
// failed type check. It matches ErrWrongType under errors.Is.
type TypeError struct {
	Expected Type
	Actual   Value
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("lisp: wrong type argument: expected %s, got %s %s",
		e.Expected, e.Actual.Type(), e.Actual)
}

func (e *TypeError) Is(target error) bool { return target == ErrWrongType }

// PureWriteError reports the cell whose mutation was refused. It
// matches ErrPureWrite under errors.Is.
type PureWriteError struct {
	Ref Ref
}

func (e *PureWriteError) Error() string {
	return fmt.Sprintf("lisp: attempt to modify read-only cell %#x", uint32(e.Ref))
}

func (e *PureWriteError) Is(target error) bool { return target == ErrPureWrite }
