package resolver

import (
	"fmt"
	"strings"

	"github.com/erraggy/hsrgen/oaserrors"
	"github.com/erraggy/hsrgen/parser"
	"github.com/erraggy/hsrgen/typemodel"
)

// SchemaRefPrefix is the only reference form the resolver accepts.
const SchemaRefPrefix = "#/components/schemas/"

// Resolver turns schemas of one document into Typ values.
type Resolver struct {
	schemas map[string]*parser.Schema
	log     parser.Logger
}

// New returns a resolver for the component schemas of doc.
func New(doc *parser.Document, logger parser.Logger) *Resolver {
	return &Resolver{
		schemas: doc.Components.Schemas,
		log:     parser.OrNop(logger),
	}
}

// RefName validates a schema reference and returns the schema name.
// The reference must be exactly "#/components/schemas/<name>".
func RefName(ref string) (string, error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 4 || parts[0] != "#" || parts[1] != "components" || parts[2] != "schemas" || parts[3] == "" {
		return "", &oaserrors.ReferenceError{
			Ref:     ref,
			Message: "expected " + SchemaRefPrefix + "<name>",
		}
	}
	return parts[3], nil
}

// Resolve converts s into a Typ. at names the document position of s and is
// used in error messages. References become Named types and are never
// inlined, so a schema that refers to itself resolves without recursion.
func (r *Resolver) Resolve(s *parser.Schema, at string) (typemodel.Typ, error) {
	if s == nil {
		return typemodel.Typ{}, &oaserrors.SchemaError{Path: at, Kind: oaserrors.SchemaUnsupported, Message: "missing schema"}
	}
	if s.Ref != "" {
		name, err := RefName(s.Ref)
		if err != nil {
			return typemodel.Typ{}, err
		}
		if _, ok := r.schemas[name]; !ok {
			return typemodel.Typ{}, &oaserrors.ReferenceError{Ref: s.Ref, Message: "no such schema (at " + at + ")"}
		}
		return typemodel.NamedRef(name), nil
	}
	if s.IsComposed() {
		return typemodel.Typ{}, &oaserrors.SchemaError{
			Path:    at,
			Kind:    oaserrors.SchemaTooComplex,
			Message: "oneOf, anyOf, allOf and not are not supported",
		}
	}

	switch len(s.Type) {
	case 0:
		if len(s.Properties) == 0 {
			return typemodel.Untyped, nil
		}
		return r.record(s, at)
	case 1:
	default:
		return typemodel.Typ{}, &oaserrors.SchemaError{
			Path:    at,
			Kind:    oaserrors.SchemaUnsupported,
			Message: fmt.Sprintf("multiple types %v", s.Type),
		}
	}

	switch s.Type[0] {
	case "string":
		return typemodel.String, nil
	case "number":
		return typemodel.Float64, nil
	case "integer":
		return typemodel.Int64, nil
	case "boolean":
		return typemodel.Bool, nil
	case "array":
		if s.Items == nil {
			return typemodel.Typ{}, &oaserrors.SchemaError{Path: at, Kind: oaserrors.SchemaUnsupported, Message: "array without items"}
		}
		elem, err := r.Resolve(s.Items, at+".items")
		if err != nil {
			return typemodel.Typ{}, err
		}
		return typemodel.SequenceOf(elem), nil
	case "object":
		return r.record(s, at)
	default:
		return typemodel.Typ{}, &oaserrors.SchemaError{
			Path:    at,
			Kind:    oaserrors.SchemaUnsupported,
			Message: fmt.Sprintf("type %q", s.Type[0]),
		}
	}
}

func (r *Resolver) record(s *parser.Schema, at string) (typemodel.Typ, error) {
	if len(s.Properties) == 0 {
		return typemodel.Typ{}, &oaserrors.SchemaError{Path: at, Kind: oaserrors.SchemaEmptyRecord, Message: "object has no properties"}
	}
	fields := make([]typemodel.Field, 0, len(s.Properties))
	for _, p := range s.Properties {
		pat := at + ".properties." + p.Name
		typ, err := r.Resolve(p.Schema, pat)
		if err != nil {
			return typemodel.Typ{}, err
		}
		if !s.IsRequired(p.Name) || (p.Schema != nil && p.Schema.Nullable) {
			typ = typemodel.OptionalOf(typ)
		}
		var desc string
		if p.Schema != nil {
			desc = p.Schema.Description
		}
		fields = append(fields, typemodel.Field{Name: p.Name, Type: typ, Description: desc})
	}
	rec, err := typemodel.RecordOf(fields...)
	if err != nil {
		if se, ok := err.(*oaserrors.SchemaError); ok {
			se.Path = at
		}
		return typemodel.Typ{}, err
	}
	return rec, nil
}

// BuildTable resolves every component schema of doc into a named-type table
// and rejects reference cycles.
func BuildTable(doc *parser.Document, logger parser.Logger) (*typemodel.Table, error) {
	r := New(doc, logger)
	table := typemodel.NewTable()
	for _, name := range doc.Components.SchemaOrder {
		s := doc.Components.Schemas[name]
		at := "components.schemas." + name
		typ, err := r.Resolve(s, at)
		if err != nil {
			return nil, err
		}
		if _, err := table.Define(name, typ, s.Description); err != nil {
			return nil, err
		}
		r.log.Debug("resolved schema", "name", name, "type", typ.String())
	}
	if err := table.CheckCycles(); err != nil {
		return nil, err
	}
	return table, nil
}
