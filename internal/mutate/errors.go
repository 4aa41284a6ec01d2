package mutate

import (
	"errors"
	"fmt"
)

// Sentinel errors for common mutation failure conditions.
//
// These can be checked with errors.Is to determine the category of
// failure without inspecting error message text.
var (
	// ErrNameExhausted indicates that the name generator could not
	// produce a fresh, non-colliding name within its retry bound.
	ErrNameExhausted = errors.New("name generator exhausted retries")

	// ErrInvalidTheme indicates an unrecognized theme string was
	// supplied to a Config.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrInvalidPrefix indicates a malformed internal prefix: empty,
	// or beginning or ending with a dot. Other characters are not
	// checked.
	ErrInvalidPrefix = errors.New("invalid internal prefix")

	// ErrInvalidContent indicates source content is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")

	// ErrOutputLocked indicates a mutate_directory invocation could
	// not acquire the output directory's lock because another run
	// holds it.
	ErrOutputLocked = errors.New("output directory is locked by another run")
)

// ParseError describes a failure to parse source text, with enough
// location information for a caller to point a user at the offending
// file and position.
type ParseError struct {
	// FilePath is the path to the file where the error occurred.
	FilePath string

	// Line is the 1-indexed line number, or 0 if unknown.
	Line int

	// Column is the 0-indexed column, or 0 if unknown.
	Column int

	// Message describes the error in human-readable form.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error formats the parse error, including location when known.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is/errors.As.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError builds a ParseError with no wrapped cause.
func NewParseError(filePath string, line, column int, message string) *ParseError {
	return &ParseError{FilePath: filePath, Line: line, Column: column, Message: message}
}

// NewParseErrorWithCause builds a ParseError wrapping an underlying error.
func NewParseErrorWithCause(filePath string, line, column int, message string, cause error) *ParseError {
	return &ParseError{FilePath: filePath, Line: line, Column: column, Message: message, Cause: cause}
}

// WrapParseError wraps err with file context unless it is already a
// ParseError, in which case it is returned unchanged.
func WrapParseError(err error, filePath string) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return &ParseError{FilePath: filePath, Message: err.Error(), Cause: err}
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
