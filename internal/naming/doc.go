// Package naming converts contract identifiers into Go identifiers.
//
// Names are split into words on separators and case transitions, then
// reassembled with golang.org/x/text/cases so non-ASCII letters are cased
// correctly. Common initialisms (ID, URL, HTTP, API, ...) are kept upper case
// the way Go code spells them.
//
// The generator uses TypeName for schema and union names, FieldName for struct
// fields and ParamName for method parameters and local identifiers.
package naming
