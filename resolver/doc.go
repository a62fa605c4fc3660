// Package resolver turns the component schemas of a document into a
// named-type table.
//
// Each schema maps to exactly one Typ: primitive types map to scalars, arrays to
// sequences, objects (or untyped schemas with properties) to records, and a
// reference of the form "#/components/schemas/<name>" to a Named type. Object
// properties that are not required, or are nullable, become optional.
//
// Composed schemas (oneOf, anyOf, allOf, not) fail with a too-complex
// SchemaError; unknown or list-valued types fail as unsupported. After every
// schema is resolved, cycles between named types are rejected.
package resolver
