package route

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/hsrgen/oaserrors"
	"github.com/erraggy/hsrgen/parser"
	"github.com/erraggy/hsrgen/resolver"
	"github.com/erraggy/hsrgen/typemodel"
)

// Param is a path or query parameter.
type Param struct {
	Name        string
	Description string
	// Type is the declared type; optional query parameters are wrapped in
	// typemodel.OptionalOf.
	Type typemodel.Typ
	// Base is the scalar Type resolves to after following named aliases.
	Base     typemodel.Typ
	Required bool
}

// Body is a JSON request body.
type Body struct {
	Type        typemodel.Typ
	Required    bool
	Description string
}

// Response is a declared response status and its optional JSON payload.
type Response struct {
	Status      int
	Type        *typemodel.Typ
	Description string
}

// Route is a validated operation.
type Route struct {
	OperationID string
	Summary     string
	Description string
	Deprecated  bool
	Method      string
	Template    Template
	// PathParams are in placeholder order.
	PathParams  []Param
	QueryParams []Param
	Body        *Body
	Success     Response
	// Errors are the declared 4xx responses in declared order.
	Errors []Response
	// Default is the payload type of the default response, if declared.
	Default *typemodel.Typ
}

// Path returns the raw path template.
func (r *Route) Path() string { return r.Template.Raw }

// Set is the ordered collection of routes of one document together with the
// named-type table their types refer to.
type Set struct {
	Title   string
	Version string
	Routes  []*Route
	Table   *typemodel.Table

	byID map[string]*Route
}

// Lookup returns the route with the given operation id.
func (s *Set) Lookup(operationID string) (*Route, bool) {
	r, ok := s.byID[operationID]
	return r, ok
}

// methodsWithBody are the methods that may carry a request body.
var methodsWithBody = []string{parser.MethodPost, parser.MethodPut, parser.MethodPatch}

// builder carries the document-wide state of route building.
type builder struct {
	doc      *parser.Document
	table    *typemodel.Table
	resolver *resolver.Resolver
	log      parser.Logger
}

// BuildSet builds one route per operation of doc, in path order and then in
// get, put, post, delete, options, head, patch order. table must be the
// named-type table built from the same document.
func BuildSet(doc *parser.Document, table *typemodel.Table, logger parser.Logger) (*Set, error) {
	b := &builder{
		doc:      doc,
		table:    table,
		resolver: resolver.New(doc, logger),
		log:      parser.OrNop(logger),
	}
	set := &Set{
		Title:   doc.Info.Title,
		Version: doc.Info.Version,
		Table:   table,
		byID:    make(map[string]*Route),
	}
	for _, item := range doc.Paths {
		for _, mo := range item.Operations() {
			r, err := b.build(item, mo.Method, mo.Operation)
			if err != nil {
				return nil, err
			}
			if prev, dup := set.byID[r.OperationID]; dup {
				return nil, &oaserrors.RouteError{
					Method:  mo.Method,
					Path:    item.Path,
					Kind:    oaserrors.RouteOperation,
					Message: fmt.Sprintf("duplicate operationId %q (also used by %s %s)", r.OperationID, prev.Method, prev.Path()),
				}
			}
			set.byID[r.OperationID] = r
			set.Routes = append(set.Routes, r)
			b.log.Debug("built route",
				"operation", r.OperationID,
				"method", r.Method,
				"path", r.Path(),
				"errors", len(r.Errors),
			)
		}
	}
	if err := checkPatterns(set.Routes); err != nil {
		return nil, err
	}
	return set, nil
}

// Build validates a single operation into a Route.
func Build(doc *parser.Document, table *typemodel.Table, item *parser.PathItem, method string, op *parser.Operation) (*Route, error) {
	b := &builder{doc: doc, table: table, resolver: resolver.New(doc, nil), log: parser.NopLogger{}}
	return b.build(item, method, op)
}

func (b *builder) build(item *parser.PathItem, method string, op *parser.Operation) (*Route, error) {
	fail := func(kind oaserrors.RouteErrorKind, format string, args ...any) error {
		return &oaserrors.RouteError{Method: method, Path: item.Path, Kind: kind, Message: fmt.Sprintf(format, args...)}
	}
	wrap := func(err error) error {
		if _, ok := err.(*oaserrors.RouteError); ok {
			return err
		}
		return fmt.Errorf("%s %s: %w", method, item.Path, err)
	}

	if op.OperationID == "" {
		return nil, fail(oaserrors.RouteOperation, "missing operationId")
	}
	tmpl, err := ParseTemplate(item.Path)
	if err != nil {
		re := err.(*oaserrors.RouteError)
		re.Method = method
		return nil, re
	}
	r := &Route{
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated,
		Method:      method,
		Template:    tmpl,
	}

	at := "paths." + item.Path + "." + strings.ToLower(method)
	params, err := b.mergeParameters(item.Parameters, op.Parameters, fail)
	if err != nil {
		return nil, wrap(err)
	}
	if err := b.classifyParameters(r, params, at, fail); err != nil {
		return nil, wrap(err)
	}
	if op.RequestBody != nil {
		if r.Body, err = b.requestBody(op.RequestBody, method, at+".requestBody", fail); err != nil {
			return nil, wrap(err)
		}
	}
	if err := b.responses(r, op, at+".responses", fail); err != nil {
		return nil, wrap(err)
	}
	return r, nil
}

type failFunc func(kind oaserrors.RouteErrorKind, format string, args ...any) error

// componentName validates "#/components/<section>/<name>" and returns name.
func componentName(ref, section string) (string, error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 4 || parts[0] != "#" || parts[1] != "components" || parts[2] != section || parts[3] == "" {
		return "", &oaserrors.ReferenceError{Ref: ref, Message: "expected #/components/" + section + "/<name>"}
	}
	return parts[3], nil
}

func (b *builder) derefParameter(p *parser.Parameter) (*parser.Parameter, error) {
	if p.Ref == "" {
		return p, nil
	}
	name, err := componentName(p.Ref, "parameters")
	if err != nil {
		return nil, err
	}
	target, ok := b.doc.Components.Parameters[name]
	if !ok || target.Ref != "" {
		return nil, &oaserrors.ReferenceError{Ref: p.Ref, Message: "no such parameter"}
	}
	return target, nil
}

// mergeParameters combines path-item and operation parameters. An operation
// parameter replaces a path-item parameter with the same name and location.
func (b *builder) mergeParameters(itemParams, opParams []*parser.Parameter, fail failFunc) ([]*parser.Parameter, error) {
	type key struct{ in, name string }
	deref := func(list []*parser.Parameter) ([]*parser.Parameter, error) {
		out := make([]*parser.Parameter, 0, len(list))
		seen := make(map[key]bool, len(list))
		for _, p := range list {
			p, err := b.derefParameter(p)
			if err != nil {
				return nil, err
			}
			k := key{p.In, p.Name}
			if seen[k] {
				return nil, fail(oaserrors.RouteParameter, "duplicate %s parameter %q", p.In, p.Name)
			}
			seen[k] = true
			out = append(out, p)
		}
		return out, nil
	}

	merged, err := deref(itemParams)
	if err != nil {
		return nil, err
	}
	ops, err := deref(opParams)
	if err != nil {
		return nil, err
	}
	for _, p := range ops {
		i := slices.IndexFunc(merged, func(m *parser.Parameter) bool { return m.In == p.In && m.Name == p.Name })
		if i >= 0 {
			merged[i] = p
		} else {
			merged = append(merged, p)
		}
	}
	return merged, nil
}

func (b *builder) classifyParameters(r *Route, params []*parser.Parameter, at string, fail failFunc) error {
	var pathParams []Param
	for _, p := range params {
		if p.Name == "" {
			return fail(oaserrors.RouteParameter, "parameter without a name")
		}
		pat := at + ".parameters." + p.Name
		switch p.In {
		case parser.ParamInPath, parser.ParamInQuery:
		case parser.ParamInHeader, parser.ParamInCookie:
			return fail(oaserrors.RouteParameter, "%s parameter %q: %s parameters are not supported", p.In, p.Name, p.In)
		default:
			return fail(oaserrors.RouteParameter, "parameter %q: unknown location %q", p.Name, p.In)
		}
		if p.Schema == nil {
			return fail(oaserrors.RouteParameter, "%s parameter %q has no schema", p.In, p.Name)
		}
		typ, err := b.resolver.Resolve(p.Schema, pat)
		if err != nil {
			return err
		}
		if err := typemodel.RequireNominal(typ, pat); err != nil {
			return err
		}
		base, err := b.table.Resolve(typ)
		if err != nil {
			return err
		}
		if !base.IsScalar() {
			return fail(oaserrors.RouteParameter, "%s parameter %q must be a string, number, integer or boolean, got %s", p.In, p.Name, typ)
		}
		param := Param{Name: p.Name, Description: p.Description, Type: typ, Base: base, Required: p.Required}
		if p.In == parser.ParamInPath {
			if !p.Required {
				return fail(oaserrors.RouteParameter, "path parameter %q must be required", p.Name)
			}
			pathParams = append(pathParams, param)
			continue
		}
		if !p.Required {
			param.Type = typemodel.OptionalOf(typ)
		}
		r.QueryParams = append(r.QueryParams, param)
	}

	placeholders := r.Template.Placeholders()
	if len(pathParams) != len(placeholders) {
		return fail(oaserrors.RoutePathArity, "path '%s' expected %d path parameter(s), found %d",
			r.Template.Raw, len(placeholders), len(pathParams))
	}
	r.PathParams = make([]Param, 0, len(placeholders))
	for _, name := range placeholders {
		i := slices.IndexFunc(pathParams, func(p Param) bool { return p.Name == name })
		if i < 0 {
			return fail(oaserrors.RouteParameter, "placeholder {%s} has no matching path parameter", name)
		}
		r.PathParams = append(r.PathParams, pathParams[i])
	}
	return nil
}

// jsonSchema returns the schema of the single application/json entry of
// content, or nil when content is empty.
func jsonSchema(content []*parser.MediaType, what string, fail failFunc) (*parser.Schema, error) {
	if len(content) == 0 {
		return nil, nil
	}
	if len(content) > 1 {
		names := make([]string, len(content))
		for i, mt := range content {
			names[i] = mt.Name
		}
		return nil, fail(oaserrors.RouteUnsupportedContent, "%s declares multiple media types %v", what, names)
	}
	mt := content[0]
	if mt.Name != parser.MediaTypeJSON {
		return nil, fail(oaserrors.RouteUnsupportedContent, "%s media type %q (only %s is supported)", what, mt.Name, parser.MediaTypeJSON)
	}
	if mt.Schema == nil {
		return nil, fail(oaserrors.RouteUnsupportedContent, "%s %s content has no schema", what, parser.MediaTypeJSON)
	}
	return mt.Schema, nil
}

func (b *builder) nominal(s *parser.Schema, at string) (typemodel.Typ, error) {
	typ, err := b.resolver.Resolve(s, at)
	if err != nil {
		return typemodel.Typ{}, err
	}
	if err := typemodel.RequireNominal(typ, at); err != nil {
		return typemodel.Typ{}, err
	}
	return typ, nil
}

func (b *builder) requestBody(rb *parser.RequestBody, method, at string, fail failFunc) (*Body, error) {
	if rb.Ref != "" {
		name, err := componentName(rb.Ref, "requestBodies")
		if err != nil {
			return nil, err
		}
		target, ok := b.doc.Components.RequestBodies[name]
		if !ok || target.Ref != "" {
			return nil, &oaserrors.ReferenceError{Ref: rb.Ref, Message: "no such request body"}
		}
		rb = target
	}
	if !slices.Contains(methodsWithBody, method) {
		return nil, fail(oaserrors.RouteUnsupportedContent, "request body is not allowed on %s", method)
	}
	s, err := jsonSchema(rb.Content, "request body", fail)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fail(oaserrors.RouteUnsupportedContent, "request body has no %s content", parser.MediaTypeJSON)
	}
	typ, err := b.nominal(s, at)
	if err != nil {
		return nil, err
	}
	return &Body{Type: typ, Required: rb.Required, Description: rb.Description}, nil
}

func (b *builder) derefResponse(resp *parser.Response) (*parser.Response, error) {
	if resp.Ref == "" {
		return resp, nil
	}
	name, err := componentName(resp.Ref, "responses")
	if err != nil {
		return nil, err
	}
	target, ok := b.doc.Components.Responses[name]
	if !ok || target.Ref != "" {
		return nil, &oaserrors.ReferenceError{Ref: resp.Ref, Message: "no such response"}
	}
	return target, nil
}

// parseStatus accepts a literal three-digit status code.
func parseStatus(code string) (int, bool) {
	if len(code) != 3 {
		return 0, false
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < 100 {
		return 0, false
	}
	return n, true
}

func (b *builder) responses(r *Route, op *parser.Operation, at string, fail failFunc) error {
	var sawSuccess bool
	for _, entry := range op.Responses {
		status, ok := parseStatus(entry.Code)
		if !ok {
			return fail(oaserrors.RouteBadStatusCode, "status %q is not a literal status code", entry.Code)
		}
		resp, err := b.derefResponse(entry.Response)
		if err != nil {
			return err
		}
		what := "response " + entry.Code
		s, err := jsonSchema(resp.Content, what, fail)
		if err != nil {
			return err
		}
		out := Response{Status: status, Description: resp.Description}
		if s != nil {
			typ, err := b.nominal(s, at+"."+entry.Code)
			if err != nil {
				return err
			}
			out.Type = &typ
		}

		switch {
		case status >= 200 && status < 300:
			if sawSuccess {
				return fail(oaserrors.RouteBadStatusCode, "second success status %d (already declared %d)", status, r.Success.Status)
			}
			sawSuccess = true
			r.Success = out
		case status >= 400 && status < 500:
			r.Errors = append(r.Errors, out)
		default:
			return fail(oaserrors.RouteBadStatusCode, "status %d is neither a 2xx success nor a 4xx client error", status)
		}
	}
	if !sawSuccess {
		return fail(oaserrors.RouteBadStatusCode, "no 2xx success response declared")
	}

	if op.Default != nil {
		resp, err := b.derefResponse(op.Default)
		if err != nil {
			return err
		}
		s, err := jsonSchema(resp.Content, "default response", fail)
		if err != nil {
			return err
		}
		if s == nil {
			return fail(oaserrors.RouteEmptyDefault, "default response must declare a %s body", parser.MediaTypeJSON)
		}
		typ, err := b.nominal(s, at+".default")
		if err != nil {
			return err
		}
		r.Default = &typ
	}
	return nil
}
