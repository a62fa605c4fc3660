package hsr

import (
	"fmt"
	"net/url"
	"strconv"
)

// Scalar is the set of types path and query parameters can have.
type Scalar interface {
	string | int64 | float64 | bool
}

// Parse converts a raw parameter value into T.
func Parse[T Scalar](raw string) (T, error) {
	var zero T
	var v any
	var err error
	switch any(zero).(type) {
	case string:
		v = raw
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	}
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Format renders a parameter value the way Parse reads it.
func Format[T Scalar](v T) string {
	switch x := any(v).(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

// PathEscape formats v and escapes it for use as a single path segment.
func PathEscape[T Scalar](v T) string {
	return url.PathEscape(Format(v))
}

// ParamError reports a path or query parameter that could not be read.
// It maps to 400 Bad Request.
type ParamError struct {
	In   string
	Name string
	Err  error
}

// Error returns the error message.
func (e *ParamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("missing required %s parameter %q", e.In, e.Name)
	}
	return fmt.Sprintf("invalid %s parameter %q: %v", e.In, e.Name, e.Err)
}

// Unwrap returns the parse failure.
func (e *ParamError) Unwrap() error { return e.Err }

// StatusCode returns 400.
func (e *ParamError) StatusCode() int { return 400 }

// PathParam parses the path wildcard name.
func PathParam[T Scalar](raw, name string) (T, error) {
	v, err := Parse[T](raw)
	if err != nil {
		return v, &ParamError{In: "path", Name: name, Err: err}
	}
	return v, nil
}

// RequiredQuery parses the query parameter name, failing when it is absent.
func RequiredQuery[T Scalar](q url.Values, name string) (T, error) {
	var zero T
	if !q.Has(name) {
		return zero, &ParamError{In: "query", Name: name}
	}
	v, err := Parse[T](q.Get(name))
	if err != nil {
		return zero, &ParamError{In: "query", Name: name, Err: err}
	}
	return v, nil
}

// OptionalQuery parses the query parameter name, returning nil when it is
// absent.
func OptionalQuery[T Scalar](q url.Values, name string) (*T, error) {
	if !q.Has(name) {
		return nil, nil
	}
	v, err := Parse[T](q.Get(name))
	if err != nil {
		return nil, &ParamError{In: "query", Name: name, Err: err}
	}
	return &v, nil
}
