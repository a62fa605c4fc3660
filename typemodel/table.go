package typemodel

import (
	"fmt"
	"slices"

	"github.com/erraggy/hsrgen/oaserrors"
)

// Handle identifies an entry of a Table.
type Handle int

// Entry is a named type definition.
type Entry struct {
	Name        string
	Type        Typ
	Description string
}

// Table is the named-type table. Entries are stored in an arena in insertion
// order and addressed by Handle; Named types refer to entries by name.
type Table struct {
	entries []Entry
	index   map[string]Handle
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]Handle)}
}

// Define adds a named definition. A record is allowed at the top level of a
// definition; every other position must be nominal.
func (t *Table) Define(name string, typ Typ, description string) (Handle, error) {
	if _, dup := t.index[name]; dup {
		return 0, &oaserrors.SchemaError{
			Path:    "components.schemas." + name,
			Kind:    oaserrors.SchemaUnsupported,
			Message: "schema defined twice",
		}
	}
	at := "components.schemas." + name
	if typ.Kind() == KindRecord {
		for _, f := range typ.Fields() {
			if err := RequireNominal(f.Type, at+".properties."+f.Name); err != nil {
				return 0, err
			}
		}
	} else if err := RequireNominal(typ, at); err != nil {
		return 0, err
	}
	h := Handle(len(t.entries))
	t.entries = append(t.entries, Entry{Name: name, Type: typ, Description: description})
	t.index[name] = h
	return h, nil
}

// Lookup returns the handle for name.
func (t *Table) Lookup(name string) (Handle, bool) {
	h, ok := t.index[name]
	return h, ok
}

// Entry returns the entry for h.
func (t *Table) Entry(h Handle) Entry {
	return t.entries[h]
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Names returns the entry names sorted for deterministic emission.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		names = append(names, e.Name)
	}
	slices.Sort(names)
	return names
}

// Resolve follows Named references through alias entries until it reaches a
// type that is not Named.
func (t *Table) Resolve(typ Typ) (Typ, error) {
	var path []string
	for typ.Kind() == KindNamed {
		if slices.Contains(path, typ.Name()) {
			return Typ{}, &oaserrors.ReferenceError{
				Ref:        path[0],
				IsCircular: true,
				Cycle:      append(path, typ.Name()),
			}
		}
		path = append(path, typ.Name())
		h, ok := t.index[typ.Name()]
		if !ok {
			return Typ{}, &oaserrors.ReferenceError{Ref: typ.Name(), Message: "no such named type"}
		}
		typ = t.entries[h].Type
	}
	return typ, nil
}

// IsComplex reports whether typ is complex after following Named references
// inside it.
func (t *Table) IsComplex(typ Typ) bool {
	seen := make(map[string]bool)
	var visit func(Typ) bool
	visit = func(x Typ) bool {
		switch x.Kind() {
		case KindRecord:
			return true
		case KindSequence, KindOptional:
			return visit(x.Elem())
		case KindNamed:
			if seen[x.Name()] {
				return false
			}
			seen[x.Name()] = true
			h, ok := t.index[x.Name()]
			return ok && visit(t.entries[h].Type)
		}
		return false
	}
	return visit(typ)
}

// color marks DFS progress in CheckCycles.
type color uint8

const (
	white color = iota
	grey
	black
)

// CheckCycles rejects any cycle of Named references between entries and any
// reference to a missing entry.
func (t *Table) CheckCycles() error {
	colors := make([]color, len(t.entries))
	var stack []string

	var visit func(h Handle) error
	visit = func(h Handle) error {
		colors[h] = grey
		stack = append(stack, t.entries[h].Name)
		var err error
		Walk(t.entries[h].Type, func(x Typ) {
			if err != nil || x.Kind() != KindNamed {
				return
			}
			next, ok := t.index[x.Name()]
			if !ok {
				err = &oaserrors.ReferenceError{
					Ref:     x.Name(),
					Message: fmt.Sprintf("referenced from %s: no such named type", t.entries[h].Name),
				}
				return
			}
			switch colors[next] {
			case grey:
				start := slices.Index(stack, x.Name())
				err = &oaserrors.ReferenceError{
					Ref:        x.Name(),
					IsCircular: true,
					Cycle:      append(slices.Clone(stack[start:]), x.Name()),
				}
			case white:
				err = visit(next)
			}
		})
		if err != nil {
			return err
		}
		stack = stack[:len(stack)-1]
		colors[h] = black
		return nil
	}

	for _, name := range t.Names() {
		h := t.index[name]
		if colors[h] == white {
			if err := visit(h); err != nil {
				return err
			}
		}
	}
	return nil
}
