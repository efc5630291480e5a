package shorthand

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the text holds no tokens at all.
	ErrEmptyInput = errors.New("empty duration")
	// ErrInvalidNumericSegment is returned when a magnitude is missing or malformed.
	ErrInvalidNumericSegment = errors.New("invalid numeric segment")
	// ErrUnrecognizedUnit is returned when a magnitude is followed by an unknown unit symbol.
	ErrUnrecognizedUnit = errors.New("unrecognized unit")
	// ErrTrailingIncompleteToken is returned when the text ends right after a magnitude.
	ErrTrailingIncompleteToken = errors.New("missing unit after number")
	// ErrOutOfRange is returned when the total does not fit in a time.Duration.
	ErrOutOfRange = errors.New("duration out of range")
)

// ParseError records a failed parse. Err is one of the sentinel errors above.
type ParseError struct {
	Input  string // the text being parsed
	Offset int    // byte offset where parsing stopped
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid duration %q: %v at offset %d", e.Input, e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseError(input string, offset int, err error) *ParseError {
	return &ParseError{Input: input, Offset: offset, Err: err}
}
