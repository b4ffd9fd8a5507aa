package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidText is returned when a stream line is not valid UTF-8
	ErrInvalidText = errors.New("stream did not contain valid UTF-8")
	// ErrOutput wraps failures writing to the output, such as a closed pipe
	ErrOutput = errors.New("failed to write output")
)

// DecodeError reports the 0-indexed line that failed to decode
type DecodeError struct {
	Line int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, ErrInvalidText)
}

func (e *DecodeError) Unwrap() error {
	return ErrInvalidText
}
