package checkstyle

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when the input is not well-formed XML.
	ErrMalformedInput = errors.New("malformed checkstyle report")
	// ErrNotThisFormat is returned for well-formed input whose root element is missing or not <checkstyle>.
	// It matches ErrMalformedInput as well.
	ErrNotThisFormat = fmt.Errorf("%w: input is not a checkstyle report", ErrMalformedInput)
	// ErrRead is returned when reading the underlying stream fails.
	ErrRead = errors.New("failed to read checkstyle report")
	// ErrParsingCanceled is returned when the context is done before decoding finished.
	ErrParsingCanceled = errors.New("checkstyle parsing canceled")
)

// ParsingError describes why a report could not be decoded.
// Kind is one of the Err* sentinels; Err is the underlying cause, if any.
type ParsingError struct {
	Kind error
	Line int
	Err  error
}

func (e *ParsingError) Error() string {
	msg := e.Kind.Error()
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParsingError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsCanceled reports whether err stems from a canceled parse.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrParsingCanceled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
