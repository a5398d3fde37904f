package helper

import (
	"errors"
	"fmt"
	"strings"
)

// Error wraps an original error with the trace of operations it passed through
type Error struct {
	Original error
	Trace    []string
}

// NewError wraps err with the operation that failed.
// Wrapping an Error again appends to its trace instead of nesting it.
func NewError(trace string, original error) error {
	if original == nil {
		original = errors.New("unknown error")
	}

	var e Error
	if errors.As(original, &e) {
		e.Trace = append(append([]string{}, e.Trace...), trace)
		return e
	}

	return Error{
		Original: original,
		Trace:    []string{trace},
	}
}

func (e Error) Error() string {
	return fmt.Sprintf("%v (trace: %s)", e.Original, strings.Join(e.Trace, " <- "))
}

// Unwrap gives errors.Is and errors.As access to the original error
func (e Error) Unwrap() error {
	return e.Original
}
