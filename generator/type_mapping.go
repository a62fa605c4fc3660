package generator

import (
	"github.com/erraggy/hsrgen/typemodel"
)

// goType returns the Go type expression for t. Named types map to their Go
// type names; optional values become pointers except for any, which can
// already hold null.
func (m *model) goType(t typemodel.Typ) string {
	switch t.Kind() {
	case typemodel.KindString:
		return "string"
	case typemodel.KindFloat64:
		return "float64"
	case typemodel.KindInt64:
		return "int64"
	case typemodel.KindBool:
		return "bool"
	case typemodel.KindUntyped:
		return "any"
	case typemodel.KindSequence:
		return "[]" + m.goType(t.Elem())
	case typemodel.KindNamed:
		return m.types[t.Name()]
	case typemodel.KindOptional:
		if t.Elem().Kind() == typemodel.KindUntyped {
			return "any"
		}
		return "*" + m.goType(t.Elem())
	}
	// Records only appear at the top of a table entry and are emitted as
	// struct declarations.
	return "struct{}"
}

// scalarType returns the Go type used as the hsr type argument for a
// parameter whose resolved scalar is base.
func scalarType(base typemodel.Typ) string {
	switch base.Kind() {
	case typemodel.KindFloat64:
		return "float64"
	case typemodel.KindInt64:
		return "int64"
	case typemodel.KindBool:
		return "bool"
	}
	return "string"
}
