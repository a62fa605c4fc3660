package hsr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// BodyError reports a request body that could not be decoded.
// It maps to 400 Bad Request.
type BodyError struct {
	Err error
}

// Error returns the error message.
func (e *BodyError) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Err)
}

// Unwrap returns the decoding failure.
func (e *BodyError) Unwrap() error { return e.Err }

// StatusCode returns 400.
func (e *BodyError) StatusCode() int { return http.StatusBadRequest }

// DecodeJSON decodes the JSON request body into v. An empty body is an error.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return &BodyError{Err: io.EOF}
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &BodyError{Err: err}
	}
	return nil
}

// DecodeOptionalJSON decodes the JSON request body into v when there is one.
// It reports whether a body was present.
func DecodeOptionalJSON(r *http.Request, v any) (bool, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return false, nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, &BodyError{Err: err}
	}
	return true, nil
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteStatus writes an empty response with the given status.
func WriteStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// WriteError writes err as a plain-text response with the status StatusOf
// reports for it.
func WriteError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusOf(err))
}
