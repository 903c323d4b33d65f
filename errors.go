package fileflow

import (
	"errors"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrNotViewable   = errors.New("not viewable")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidPath   = errors.New("invalid path")
)

type wrapError struct {
	underlying error
	msg        string
	cause      error
}

var _ error = (*wrapError)(nil)

func NewValidationError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrValidation,
		msg:        msg,
		cause:      cause,
	}
}

func NewNotFoundError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrNotFound,
		msg:        msg,
		cause:      cause,
	}
}

func NewNotViewableError(msg string) error {
	return &wrapError{
		underlying: ErrNotViewable,
		msg:        msg,
	}
}

func NewAlreadyExistsError(msg string) error {
	return &wrapError{
		underlying: ErrAlreadyExists,
		msg:        msg,
	}
}

func NewInvalidPathError(msg string, cause error) error {
	return &wrapError{
		underlying: ErrInvalidPath,
		msg:        msg,
		cause:      cause,
	}
}

func (err *wrapError) Error() string {
	if err == nil {
		return "(*wrapError)(nil)"
	}
	message := err.underlying.Error() + ": " + err.msg
	if err.cause != nil {
		message += ": " + err.cause.Error()
	}
	return message
}

// Message returns the user-facing part of the error without the sentinel prefix
func (err *wrapError) Message() string {
	return err.msg
}

func (err *wrapError) Unwrap() []error {
	if err.cause == nil {
		return []error{err.underlying}
	}
	return []error{err.underlying, err.cause}
}

// UserMessage extracts the message meant for the person using the file
// manager. Errors not created by this package return err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var we *wrapError
	if errors.As(err, &we) {
		return we.Message()
	}
	return err.Error()
}
