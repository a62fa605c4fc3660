package parser

import "slices"

// HTTP methods in the order operations of a path item are visited.
const (
	MethodGet     = "GET"
	MethodPut     = "PUT"
	MethodPost    = "POST"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
	MethodHead    = "HEAD"
	MethodPatch   = "PATCH"
)

// MediaTypeJSON is the only media type the compiler accepts for bodies.
const MediaTypeJSON = "application/json"

// Location is a 1-based position in the source document.
// A zero Line means the position is unknown.
type Location struct {
	Line   int
	Column int
}

// Document is an OpenAPI 3 document reduced to the parts the compiler reads.
// Every ordered collection keeps the order in which it was declared.
type Document struct {
	OpenAPI    string
	Info       Info
	Paths      []*PathItem
	Components Components
}

// Info holds document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// PathItem holds the operations available on a single path.
type PathItem struct {
	Path        string
	Summary     string
	Description string
	Parameters  []*Parameter

	Get     *Operation
	Put     *Operation
	Post    *Operation
	Delete  *Operation
	Options *Operation
	Head    *Operation
	Patch   *Operation

	Location
}

// MethodOperation pairs an operation with its HTTP method.
type MethodOperation struct {
	Method    string
	Operation *Operation
}

// Operations returns the declared operations in get, put, post, delete,
// options, head, patch order.
func (p *PathItem) Operations() []MethodOperation {
	var ops []MethodOperation
	add := func(method string, op *Operation) {
		if op != nil {
			ops = append(ops, MethodOperation{Method: method, Operation: op})
		}
	}
	add(MethodGet, p.Get)
	add(MethodPut, p.Put)
	add(MethodPost, p.Post)
	add(MethodDelete, p.Delete)
	add(MethodOptions, p.Options)
	add(MethodHead, p.Head)
	add(MethodPatch, p.Patch)
	return ops
}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Parameters  []*Parameter
	RequestBody *RequestBody
	// Responses holds the status-keyed responses in declared order.
	Responses []*ResponseEntry
	// Default is the response declared under the "default" key, if any.
	Default *Response

	Location
}

// ResponseEntry is a response keyed by its raw status code string.
type ResponseEntry struct {
	Code     string
	Response *Response

	Location
}

// Response describes a single response. When Ref is set the other fields are empty.
type Response struct {
	Ref         string
	Description string
	Content     []*MediaType

	Location
}

// RequestBody describes an operation request body. When Ref is set the other
// fields are empty.
type RequestBody struct {
	Ref         string
	Description string
	Required    bool
	Content     []*MediaType

	Location
}

// MediaType is a content entry keyed by its media type name.
type MediaType struct {
	Name   string
	Schema *Schema

	Location
}

// Parameter describes a single operation parameter. When Ref is set the other
// fields are empty.
type Parameter struct {
	Ref         string
	Name        string
	In          string
	Description string
	Required    bool
	Schema      *Schema

	Location
}

// Parameter locations.
const (
	ParamInPath   = "path"
	ParamInQuery  = "query"
	ParamInHeader = "header"
	ParamInCookie = "cookie"
)

// Schema is a JSON Schema node as it appears in the document.
type Schema struct {
	Ref         string
	Title       string
	Description string
	// Type holds the declared type. A list-valued type keeps every entry.
	Type       []string
	Format     string
	Items      *Schema
	Properties []*Property
	Required   []string
	Nullable   bool
	Enum       []string

	OneOf []*Schema
	AnyOf []*Schema
	AllOf []*Schema
	Not   *Schema

	Location
}

// Property is a named object property in declared order.
type Property struct {
	Name   string
	Schema *Schema

	Location
}

// IsComposed reports whether the schema uses oneOf, anyOf, allOf or not.
func (s *Schema) IsComposed() bool {
	return len(s.OneOf) > 0 || len(s.AnyOf) > 0 || len(s.AllOf) > 0 || s.Not != nil
}

// IsRequired reports whether name is listed in the schema's required set.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// Components holds the reusable definitions of a document.
type Components struct {
	Schemas       map[string]*Schema
	Parameters    map[string]*Parameter
	Responses     map[string]*Response
	RequestBodies map[string]*RequestBody

	// SchemaOrder lists schema names in declared order.
	SchemaOrder []string
}
