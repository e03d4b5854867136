package syntax

import (
	"errors"
	"fmt"
)

// ErrMalformedExpression is the sentinel every parse failure unwraps to.
var ErrMalformedExpression = errors.New("malformed expression")

// Error describes why a pattern could not be parsed.
type Error struct {
	Pattern string
	// Offset is the byte offset of the offending rune in Pattern, or -1 when
	// the failure is not tied to a single rune (missing operands, empty input).
	Offset  int
	Message string
}

func malformed(pattern string, off int, msg string) *Error {
	return &Error{Pattern: pattern, Offset: off, Message: msg}
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s %q at offset %d: %s", ErrMalformedExpression, e.Pattern, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s %q: %s", ErrMalformedExpression, e.Pattern, e.Message)
}

func (e *Error) Unwrap() error { return ErrMalformedExpression }
