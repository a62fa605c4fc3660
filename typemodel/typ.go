package typemodel

import (
	"fmt"
	"strings"

	"github.com/erraggy/hsrgen/oaserrors"
)

// Kind identifies the shape of a Typ.
type Kind int

const (
	// KindString is a string.
	KindString Kind = iota
	// KindFloat64 is a 64-bit float.
	KindFloat64
	// KindInt64 is a 64-bit integer.
	KindInt64
	// KindBool is a boolean.
	KindBool
	// KindSequence is an ordered list of one element type.
	KindSequence
	// KindRecord is an ordered set of named fields.
	KindRecord
	// KindNamed is a reference to an entry of the named-type table.
	KindNamed
	// KindUntyped accepts any JSON value.
	KindUntyped
	// KindOptional wraps a type that may be absent.
	KindOptional
)

var kindNames = [...]string{
	KindString:   "string",
	KindFloat64:  "float64",
	KindInt64:    "int64",
	KindBool:     "bool",
	KindSequence: "sequence",
	KindRecord:   "record",
	KindNamed:    "named",
	KindUntyped:  "untyped",
	KindOptional: "optional",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field is a record field.
type Field struct {
	Name        string
	Type        Typ
	Description string
}

// Typ is an immutable type value. The zero Typ is String.
type Typ struct {
	kind   Kind
	elem   *Typ
	fields []Field
	name   string
}

// Scalar and untyped values.
var (
	String  = Typ{kind: KindString}
	Float64 = Typ{kind: KindFloat64}
	Int64   = Typ{kind: KindInt64}
	Bool    = Typ{kind: KindBool}
	Untyped = Typ{kind: KindUntyped}
)

// SequenceOf returns a sequence of elem.
func SequenceOf(elem Typ) Typ {
	return Typ{kind: KindSequence, elem: &elem}
}

// OptionalOf returns elem marked optional. Wrapping an optional type returns
// it unchanged.
func OptionalOf(elem Typ) Typ {
	if elem.kind == KindOptional {
		return elem
	}
	return Typ{kind: KindOptional, elem: &elem}
}

// NamedRef returns a reference to the named-type table entry name.
func NamedRef(name string) Typ {
	return Typ{kind: KindNamed, name: name}
}

// RecordOf returns a record with the given fields in order. A record needs at
// least one field and field names must be unique.
func RecordOf(fields ...Field) (Typ, error) {
	if len(fields) == 0 {
		return Typ{}, &oaserrors.SchemaError{Kind: oaserrors.SchemaEmptyRecord, Message: "record has no fields"}
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return Typ{}, &oaserrors.SchemaError{
				Kind:    oaserrors.SchemaUnsupported,
				Message: fmt.Sprintf("duplicate field %q", f.Name),
			}
		}
		seen[f.Name] = true
	}
	return Typ{kind: KindRecord, fields: append([]Field(nil), fields...)}, nil
}

// Kind returns the shape of t.
func (t Typ) Kind() Kind { return t.kind }

// Elem returns the element type of a sequence or optional. It panics for
// other kinds.
func (t Typ) Elem() Typ {
	if t.elem == nil {
		panic("typemodel: Elem of " + t.kind.String())
	}
	return *t.elem
}

// Fields returns the fields of a record in declared order.
func (t Typ) Fields() []Field {
	return t.fields
}

// Name returns the referenced name of a Named type.
func (t Typ) Name() string { return t.name }

// IsScalar reports whether t is a string, number, integer or boolean.
func (t Typ) IsScalar() bool {
	switch t.kind {
	case KindString, KindFloat64, KindInt64, KindBool:
		return true
	}
	return false
}

// IsOptional reports whether t is an optional wrapper.
func (t Typ) IsOptional() bool { return t.kind == KindOptional }

// Required strips an optional wrapper.
func (t Typ) Required() Typ {
	if t.kind == KindOptional {
		return *t.elem
	}
	return t
}

// Equal reports structural equality. Named types are equal when their names
// are equal.
func (t Typ) Equal(o Typ) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindSequence, KindOptional:
		return t.elem.Equal(*o.elem)
	case KindNamed:
		return t.name == o.name
	case KindRecord:
		if len(t.fields) != len(o.fields) {
			return false
		}
		for i := range t.fields {
			if t.fields[i].Name != o.fields[i].Name || !t.fields[i].Type.Equal(o.fields[i].Type) {
				return false
			}
		}
	}
	return true
}

// IsComplex reports whether t is a record, or a sequence or optional whose
// element is complex. Named types are not followed; see Table.IsComplex.
func (t Typ) IsComplex() bool {
	switch t.kind {
	case KindRecord:
		return true
	case KindSequence, KindOptional:
		return t.elem.IsComplex()
	}
	return false
}

// String renders t for diagnostics, e.g. "[]Pet" or "{id:int64,tag:?string}".
func (t Typ) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Typ) write(b *strings.Builder) {
	switch t.kind {
	case KindSequence:
		b.WriteString("[]")
		t.elem.write(b)
	case KindOptional:
		b.WriteByte('?')
		t.elem.write(b)
	case KindNamed:
		b.WriteString(t.name)
	case KindUntyped:
		b.WriteString("any")
	case KindRecord:
		b.WriteByte('{')
		for i, f := range t.fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(f.Name)
			b.WriteByte(':')
			f.Type.write(b)
		}
		b.WriteByte('}')
	default:
		b.WriteString(t.kind.String())
	}
}

// RequireNominal fails with a not-nominally-typed SchemaError when t is or
// contains an anonymous record. at names the position being checked.
func RequireNominal(t Typ, at string) error {
	switch t.kind {
	case KindRecord:
		return &oaserrors.SchemaError{
			Path:    at,
			Kind:    oaserrors.SchemaNotNominal,
			Message: "inline object types must be declared as named component schemas",
		}
	case KindSequence, KindOptional:
		return RequireNominal(*t.elem, at)
	}
	return nil
}

// Walk calls fn for t and every type nested inside it, depth first.
func Walk(t Typ, fn func(Typ)) {
	fn(t)
	switch t.kind {
	case KindSequence, KindOptional:
		Walk(*t.elem, fn)
	case KindRecord:
		for _, f := range t.fields {
			Walk(f.Type, fn)
		}
	}
}
