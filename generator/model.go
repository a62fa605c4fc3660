package generator

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/erraggy/hsrgen/internal/naming"
	"github.com/erraggy/hsrgen/oaserrors"
	"github.com/erraggy/hsrgen/parser"
	"github.com/erraggy/hsrgen/resolver"
	"github.com/erraggy/hsrgen/route"
	"github.com/erraggy/hsrgen/taxonomy"
)

// model is the validated input of the emitters. It is built once and only
// read afterwards.
type model struct {
	set    *route.Set
	errors []*taxonomy.ErrorType
	// types maps schema names to Go type names.
	types map[string]string
	ops   []*operation
}

// operation carries the Go names of one route.
type operation struct {
	route  *route.Route
	errors *taxonomy.ErrorType
	// Name is the exported method name, e.g. "GetPet".
	Name string
	// PathParams and QueryParams hold the Go parameter names, index aligned
	// with the route's parameter lists.
	PathParams  []string
	QueryParams []string
	// BodyParam is the Go name of the request body parameter.
	BodyParam string
}

// localNames are identifiers used inside generated function bodies, plus the
// package names those bodies refer to. Parameters never take these names.
var localNames = []string{
	"body", "c", "ctx", "err", "out", "present", "q", "query", "r", "req", "resp", "s", "svc", "w",
	"context", "errors", "fmt", "http", "hsr", "strings", "url",
}

// compile runs the schema resolver, the route builder and the error taxonomy
// builder, then assigns Go names.
func compile(doc *parser.Document, logger parser.Logger) (*model, error) {
	table, err := resolver.BuildTable(doc, logger)
	if err != nil {
		return nil, err
	}
	set, err := route.BuildSet(doc, table, logger)
	if err != nil {
		return nil, err
	}
	m := &model{
		set:    set,
		errors: taxonomy.BuildAll(set),
		types:  make(map[string]string, table.Len()),
	}
	if err := m.nameTypes(); err != nil {
		return nil, err
	}
	if err := m.nameOperations(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *model) nameTypes() error {
	owner := make(map[string]string)
	for _, name := range m.set.Table.Names() {
		goName := naming.TypeName(name)
		if prev, dup := owner[goName]; dup {
			return &oaserrors.CodegenError{
				Artifact: "types.go",
				Message:  fmt.Sprintf("schemas %q and %q both map to Go type %s", prev, name, goName),
			}
		}
		owner[goName] = name
		m.types[name] = goName
	}
	return nil
}

func (m *model) nameOperations() error {
	owner := make(map[string]*route.Route)
	for i, r := range m.set.Routes {
		op := &operation{route: r, errors: m.errors[i], Name: naming.TypeName(r.OperationID)}
		if prev, dup := owner[op.Name]; dup {
			return &oaserrors.RouteError{
				Method:  r.Method,
				Path:    r.Path(),
				Kind:    oaserrors.RouteOperation,
				Message: fmt.Sprintf("operationId %q maps to Go name %s, already used by %q", r.OperationID, op.Name, prev.OperationID),
			}
		}
		owner[op.Name] = r

		taken := make(map[string]bool, len(localNames))
		for _, n := range localNames {
			taken[n] = true
		}
		for _, p := range r.PathParams {
			name := naming.ParamName(p.Name, taken)
			taken[name] = true
			op.PathParams = append(op.PathParams, name)
		}
		for _, p := range r.QueryParams {
			name := naming.ParamName(p.Name, taken)
			taken[name] = true
			op.QueryParams = append(op.QueryParams, name)
		}
		if r.Body != nil {
			base := "body"
			if name := r.Body.Type.Name(); name != "" {
				base = m.types[name]
			}
			op.BodyParam = naming.ParamName(base, taken)
		}
		m.ops = append(m.ops, op)
	}
	return nil
}

// isPackageName reports whether name can be used as a package clause.
func isPackageName(name string) bool {
	return token.IsIdentifier(name) && name != "_" && !token.IsKeyword(name)
}

// checkUnique fails when two declarations across the package share a name.
func checkUnique(decls map[string]string, name, file string) error {
	if prev, dup := decls[name]; dup {
		return &oaserrors.CodegenError{
			Artifact: file,
			Message:  fmt.Sprintf("declaration %s collides with a declaration in %s", name, prev),
		}
	}
	decls[name] = file
	return nil
}

// sortedTypeNames returns the schema names ordered by Go type name.
func (m *model) sortedTypeNames() []string {
	names := m.set.Table.Names()
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(m.types[a], m.types[b])
	})
	return names
}
