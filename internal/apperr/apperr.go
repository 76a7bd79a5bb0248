package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status an error should be reported with.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

func Wrap(status int, msg string, err error) *Error {
	return &Error{Status: status, Message: msg, Err: err}
}

func BadRequest(msg string) *Error { return New(http.StatusBadRequest, msg) }
func NotFound(msg string) *Error   { return New(http.StatusNotFound, msg) }
func Forbidden(msg string) *Error  { return New(http.StatusForbidden, msg) }

// StatusOf returns the status attached to err, or 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
