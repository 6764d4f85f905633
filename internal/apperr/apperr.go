package apperr

import (
	"errors"
	"fmt"
)

// Kinds every domain failure is classified as. Match them with errors.Is.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrDuplicateBudget = errors.New("duplicate budget")

	ErrUnauthenticated = errors.New("unauthenticated")
	ErrRateLimited     = errors.New("rate limited")
)

// Error carries a human readable message together with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Invalid(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func NotAuthorized(message string) error {
	return &Error{Kind: ErrNotAuthorized, Message: message}
}

func Duplicate(message string) error {
	return &Error{Kind: ErrDuplicateBudget, Message: message}
}

// Message returns the human readable part of err, falling back to err.Error().
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
