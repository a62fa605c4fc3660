package hsr

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusCoder is implemented by errors that know which HTTP status they map to.
type StatusCoder interface {
	StatusCode() int
}

// StatusOf returns the status of the first StatusCoder in err's chain, or 500
// when there is none.
func StatusOf(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code != 0 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// Error is an error with an HTTP status code. Service implementations return
// it to choose the status of an unexpected failure.
type Error struct {
	code    int
	message string
	cause   error
}

// NewError returns an error with the given status and message.
func NewError(code int, message string) *Error {
	return &Error{code: code, message: message}
}

// WrapError returns an error with the given status wrapping cause.
func WrapError(code int, message string, cause error) *Error {
	return &Error{code: code, message: message, cause: cause}
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// StatusCode returns the HTTP status code.
func (e *Error) StatusCode() int { return e.code }

// Unwrap returns the underlying cause for errors.As/errors.Is support.
func (e *Error) Unwrap() error { return e.cause }

// ClientError is returned by generated clients when a call fails in transport,
// when the server answers with a status the operation does not declare, or
// when a response body cannot be decoded.
type ClientError struct {
	// Status is the response status, or 0 if no response was received.
	Status int
	// Err is the transport or decoding failure, if any.
	Err error
}

// Error returns the error message.
func (e *ClientError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("hsr: status %d: %v", e.Status, e.Err)
	case e.Err != nil:
		return "hsr: " + e.Err.Error()
	default:
		return fmt.Sprintf("hsr: unexpected status %d", e.Status)
	}
}

// Unwrap returns the underlying failure.
func (e *ClientError) Unwrap() error { return e.Err }

// StatusCode returns Status, or 500 when no response was received.
func (e *ClientError) StatusCode() int {
	if e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}
