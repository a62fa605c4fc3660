// Package oaserrors provides structured error types for hsrgen.
//
// Every failure the compiler can produce is one of the types below. Each type
// matches one or more sentinel errors via errors.Is, so callers can tell a bad
// $ref apart from an unsupported schema shape or an invalid status code without
// parsing messages.
//
// # Error Categories
//
//   - ReadError: the input document could not be read
//   - ParseError: YAML/JSON parsing failures and structural issues
//   - ResourceLimitError: input exceeds a configured limit
//   - ReferenceError: $ref resolution failures and circular references
//   - SchemaError: schema shapes the type model cannot represent
//   - RouteError: operations that cannot be turned into a route
//   - CodegenError: failures while printing generated artifacts
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	result, err := generator.Generate("api.yaml")
//	if errors.Is(err, oaserrors.ErrPathArity) {
//	    // a path template and its declared parameters disagree
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrRead indicates the input could not be read.
	ErrRead = errors.New("read error")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrSchema matches any SchemaError.
	ErrSchema = errors.New("schema error")

	// ErrUnsupportedSchema indicates a schema kind outside the supported set.
	ErrUnsupportedSchema = errors.New("unsupported schema kind")

	// ErrTooComplex indicates a composed schema (oneOf, anyOf, allOf, not).
	ErrTooComplex = errors.New("schema too complex")

	// ErrEmptyRecord indicates an object schema without properties.
	ErrEmptyRecord = errors.New("empty record")

	// ErrNotNominal indicates an anonymous record used where a named type is required.
	ErrNotNominal = errors.New("not nominally typed")

	// ErrRoute matches any RouteError.
	ErrRoute = errors.New("route error")

	// ErrBadStatusCode indicates a status code that is not a literal 2xx or 4xx code.
	ErrBadStatusCode = errors.New("bad status code")

	// ErrParameter indicates a missing, duplicate or unsupported parameter.
	ErrParameter = errors.New("parameter error")

	// ErrPathArity indicates a mismatch between path placeholders and path parameters.
	ErrPathArity = errors.New("path arity mismatch")

	// ErrPathTemplate indicates a malformed path template.
	ErrPathTemplate = errors.New("bad path template")

	// ErrRouteConflict indicates two routes whose ServeMux patterns cannot be
	// registered together.
	ErrRouteConflict = errors.New("route conflict")

	// ErrUnsupportedContent indicates a non-JSON or multi-typed body.
	ErrUnsupportedContent = errors.New("unsupported content")

	// ErrEmptyDefault indicates a default response without a body type.
	ErrEmptyDefault = errors.New("empty default response")

	// ErrOperation indicates a missing or duplicate operationId.
	ErrOperation = errors.New("operation error")

	// ErrCodegen indicates a failure while generating code.
	ErrCodegen = errors.New("codegen error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ReadError represents a failure to read the input document.
type ReadError struct {
	// Path is the file path or source identifier
	Path string
	// Cause is the underlying I/O error
	Cause error
}

// Error returns a human-readable error message.
func (e *ReadError) Error() string {
	msg := "read error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON deserialization errors and structural issues.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded (e.g. "input_size")
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// IsCircular is true if this error is due to a circular reference
	IsCircular bool
	// Cycle lists the names that form the cycle, in traversal order
	Cycle []string
	// Message provides additional context about the failure
	Message string
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if len(e.Cycle) > 0 {
		msg += " ("
		for i, name := range e.Cycle {
			if i > 0 {
				msg += " -> "
			}
			msg += name
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// SchemaErrorKind classifies a SchemaError.
type SchemaErrorKind int

const (
	// SchemaUnsupported is a schema kind outside {primitive, array, object, reference, untyped}.
	SchemaUnsupported SchemaErrorKind = iota
	// SchemaTooComplex is a composed schema.
	SchemaTooComplex
	// SchemaEmptyRecord is an object without properties.
	SchemaEmptyRecord
	// SchemaNotNominal is an anonymous record in a position that needs a name.
	SchemaNotNominal
)

// String returns the condition name of the kind.
func (k SchemaErrorKind) String() string {
	switch k {
	case SchemaUnsupported:
		return "unsupported schema kind"
	case SchemaTooComplex:
		return "schema too complex"
	case SchemaEmptyRecord:
		return "empty record"
	case SchemaNotNominal:
		return "not nominally typed"
	default:
		return "schema error"
	}
}

// sentinel returns the sentinel error for the kind.
func (k SchemaErrorKind) sentinel() error {
	switch k {
	case SchemaUnsupported:
		return ErrUnsupportedSchema
	case SchemaTooComplex:
		return ErrTooComplex
	case SchemaEmptyRecord:
		return ErrEmptyRecord
	case SchemaNotNominal:
		return ErrNotNominal
	default:
		return nil
	}
}

// SchemaError represents a schema that cannot be turned into a type.
type SchemaError struct {
	// Path is the document location of the schema (e.g. "components.schemas.Pet.properties.tag")
	Path string
	// Kind classifies the failure
	Kind SchemaErrorKind
	// Message describes the failure
	Message string
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
// Matches ErrSchema and the sentinel of its Kind.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema || target == e.Kind.sentinel()
}

// RouteErrorKind classifies a RouteError.
type RouteErrorKind int

const (
	// RouteBadStatusCode is a non-literal or wrong-class status code.
	RouteBadStatusCode RouteErrorKind = iota
	// RouteParameter is a missing, duplicate or unsupported parameter.
	RouteParameter
	// RoutePathArity is a placeholder count mismatch.
	RoutePathArity
	// RoutePathTemplate is a malformed path template.
	RoutePathTemplate
	// RouteUnsupportedContent is a non-JSON or ambiguous body.
	RouteUnsupportedContent
	// RouteEmptyDefault is a default response without a type.
	RouteEmptyDefault
	// RouteOperation is a missing or duplicate operationId.
	RouteOperation
	// RouteConflict is a pattern that overlaps another route's pattern.
	RouteConflict
)

// String returns the condition name of the kind.
func (k RouteErrorKind) String() string {
	switch k {
	case RouteBadStatusCode:
		return "bad status code"
	case RouteParameter:
		return "parameter error"
	case RoutePathArity:
		return "path arity mismatch"
	case RoutePathTemplate:
		return "bad path template"
	case RouteUnsupportedContent:
		return "unsupported content"
	case RouteEmptyDefault:
		return "empty default response"
	case RouteOperation:
		return "operation error"
	case RouteConflict:
		return "route conflict"
	default:
		return "route error"
	}
}

func (k RouteErrorKind) sentinel() error {
	switch k {
	case RouteBadStatusCode:
		return ErrBadStatusCode
	case RouteParameter:
		return ErrParameter
	case RoutePathArity:
		return ErrPathArity
	case RoutePathTemplate:
		return ErrPathTemplate
	case RouteUnsupportedContent:
		return ErrUnsupportedContent
	case RouteEmptyDefault:
		return ErrEmptyDefault
	case RouteOperation:
		return ErrOperation
	case RouteConflict:
		return ErrRouteConflict
	default:
		return nil
	}
}

// RouteError represents an operation that cannot be turned into a route.
type RouteError struct {
	// Method is the HTTP method of the operation (upper case)
	Method string
	// Path is the path template of the operation
	Path string
	// Kind classifies the failure
	Kind RouteErrorKind
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *RouteError) Error() string {
	msg := e.Kind.String()
	if e.Method != "" || e.Path != "" {
		msg += " in"
		if e.Method != "" {
			msg += " " + e.Method
		}
		if e.Path != "" {
			msg += " " + e.Path
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RouteError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrRoute and the sentinel of its Kind.
func (e *RouteError) Is(target error) bool {
	return target == ErrRoute || target == e.Kind.sentinel()
}

// CodegenError represents a failure while producing an artifact.
type CodegenError struct {
	// Artifact is the name of the file being generated
	Artifact string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *CodegenError) Error() string {
	msg := "codegen error"
	if e.Artifact != "" {
		msg += " in " + e.Artifact
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *CodegenError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *CodegenError) Is(target error) bool {
	return target == ErrCodegen
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
