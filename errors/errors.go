// Package errors classifies the failures of the song library, the sheet
// parser and the suggestion client so the HTTP layer can map them onto
// status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels. Every typed error below matches exactly one of them under
// errors.Is, in addition to its cause.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable marks an optional collaborator that is not configured
	// or not reachable.
	ErrUnavailable = errors.New("unavailable")
)

// causes lists cause (when set) ahead of the class sentinel.
func causes(cause, class error) []error {
	if cause == nil || cause == class {
		return []error{class}
	}
	return []error{cause, class}
}

// NotFoundError reports a missing library entry, e.g. a song id.
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() []error { return causes(e.Err, ErrNotFound) }

// ValidationError reports a request or sheet field that cannot be used.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() []error { return causes(e.Err, ErrInvalidInput) }

// ParseError reports undecodable input: a MIDI file, a stored JSON
// document or a suggestion response. It always matches ErrInvalidInput,
// whether or not a decoder error is attached.
type ParseError struct {
	Format  string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() []error { return causes(e.Err, ErrInvalidInput) }

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func NewParse(format, message string, err error) *ParseError {
	return &ParseError{Format: format, Message: message, Err: err}
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Status maps err onto the HTTP status the API answers with. Anything
// unclassified is a 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
