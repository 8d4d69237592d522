package alloc

import "errors"

var (
	// ErrOutOfMemory indicates that growing the heap by one more cons
	// block would exceed the configured limit.
	ErrOutOfMemory = errors.New("alloc: out of memory growing cons block chain")

	// ErrBadRef indicates an invalid or out-of-range cell reference.
	ErrBadRef = errors.New("alloc: bad cell reference")

	// ErrNotLive indicates an operation that requires a live cell was
	// given a reclaimed one.
	ErrNotLive = errors.New("alloc: cell is not live")

	// ErrMarkedCell indicates an attempt to reclaim a cell whose mark
	// bit is still set.
	ErrMarkedCell = errors.New("alloc: cell is still marked")
)
