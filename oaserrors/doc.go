// Package oaserrors provides structured error types for the hsrgen compiler.
//
// Import path: github.com/erraggy/hsrgen/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between the different ways a contract document
// can fail to compile.
//
// # Error Types
//
//   - [ReadError]: the document could not be read
//   - [ParseError]: YAML/JSON parsing failures and structural issues
//   - [ResourceLimitError]: the document exceeds a configured size limit
//   - [ReferenceError]: unresolvable or malformed $ref, circular references
//   - [SchemaError]: unsupported, composed, empty or anonymous record schemas
//   - [RouteError]: status codes, parameters, path templates, bodies, operation ids
//   - [CodegenError]: failures while printing generated files
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// [SchemaError] and [RouteError] carry a Kind. Each kind has its own sentinel so a
// single errors.Is check identifies the exact condition:
//
//   - [ErrUnsupportedSchema], [ErrTooComplex], [ErrEmptyRecord], [ErrNotNominal]
//   - [ErrBadStatusCode], [ErrParameter], [ErrPathArity], [ErrPathTemplate]
//   - [ErrUnsupportedContent], [ErrEmptyDefault], [ErrOperation]
//
// [ErrSchema] and [ErrRoute] match any kind of their type.
//
// # Usage Examples
//
//	_, err := generator.Generate("api.yaml")
//	if errors.Is(err, oaserrors.ErrCircularReference) {
//	    // schemas reference each other in a loop
//	}
//
//	var routeErr *oaserrors.RouteError
//	if errors.As(err, &routeErr) {
//	    fmt.Printf("%s %s: %s\n", routeErr.Method, routeErr.Path, routeErr.Message)
//	}
package oaserrors
