package key

import (
	"errors"
	"fmt"
)

var (
	// ErrArgumentMismatch is matched by every *MismatchError.
	ErrArgumentMismatch = errors.New("argument mismatch")

	// ErrNegativeIndex is returned when an explicit index below zero is given.
	ErrNegativeIndex = errors.New("index must not be negative")

	// ErrIndexOutOfRange is returned by Build for an index with no ordinal.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// MismatchError reports an explicit index that disagrees with the ordinal
// written in the key.
type MismatchError struct {
	Key     string // raw key as supplied
	Index   int    // explicit index
	Ordinal int    // zero-based index encoded in Key
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%d was provided for index param when key '%s' contains an nth value, but they do not match", e.Index, e.Key)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrArgumentMismatch
}
