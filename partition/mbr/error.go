package mbr

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is matched by every *SizeMismatchError, so callers can use errors.Is
var ErrSizeMismatch = errors.New("size mismatch")

// SizeMismatchError the input given to FromBytes or EntryFromBytes was not the exact
// size of the on-disk structure
type SizeMismatchError struct {
	what     string
	actual   int
	expected int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("data for %s was %d bytes instead of expected %d", e.what, e.actual, e.expected)
}

// Is reports whether target is ErrSizeMismatch
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// Actual the number of bytes that were supplied
func (e *SizeMismatchError) Actual() int {
	return e.actual
}

// Expected the number of bytes the structure requires
func (e *SizeMismatchError) Expected() int {
	return e.expected
}

func NewSizeMismatchError(what string, actual, expected int) *SizeMismatchError {
	return &SizeMismatchError{
		what:     what,
		actual:   actual,
		expected: expected,
	}
}
