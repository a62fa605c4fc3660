package parser

import (
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/hsrgen/oaserrors"
)

// decoder walks a yaml.Node tree into a Document. Walking the node tree
// instead of decoding into maps keeps declared key order.
type decoder struct {
	source string
	log    Logger
}

// keyValue is a single mapping entry.
type keyValue struct {
	key   *yaml.Node
	value *yaml.Node
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	e := &oaserrors.ParseError{
		Path:    d.source,
		Message: fmt.Sprintf(format, args...),
	}
	if n != nil {
		e.Line = n.Line
		e.Column = n.Column
	}
	return e
}

func loc(n *yaml.Node) Location {
	return Location{Line: n.Line, Column: n.Column}
}

// deref follows alias nodes to their anchors.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	if n == nil {
		return true
	}
	if n.Kind != yaml.ScalarNode || n.Style != 0 {
		return false
	}
	switch n.Value {
	case "", "~", "null", "Null", "NULL":
		return true
	}
	return false
}

// mapping returns the entries of a mapping node, rejecting duplicate keys.
// A null value is treated as an empty mapping.
func (d *decoder) mapping(n *yaml.Node, what string) ([]keyValue, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "%s must be a mapping", what)
	}
	entries := make([]keyValue, 0, len(n.Content)/2)
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := deref(n.Content[i])
		if k.Kind != yaml.ScalarNode {
			return nil, d.errorf(k, "%s has a non-scalar key", what)
		}
		if seen[k.Value] {
			return nil, d.errorf(k, "duplicate key %q in %s", k.Value, what)
		}
		seen[k.Value] = true
		entries = append(entries, keyValue{key: k, value: deref(n.Content[i+1])})
	}
	return entries, nil
}

func (d *decoder) sequence(n *yaml.Node, what string) ([]*yaml.Node, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "%s must be a sequence", what)
	}
	items := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		items[i] = deref(c)
	}
	return items, nil
}

func (d *decoder) str(n *yaml.Node, what string) (string, error) {
	n = deref(n)
	if isNull(n) {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", d.errorf(n, "%s must be a scalar", what)
	}
	return n.Value, nil
}

func (d *decoder) boolean(n *yaml.Node, what string) (bool, error) {
	s, err := d.str(n, what)
	if err != nil || s == "" {
		return false, err
	}
	b, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		return false, d.errorf(n, "%s must be a boolean, got %q", what, s)
	}
	return b, nil
}

func (d *decoder) strings(n *yaml.Node, what string) ([]string, error) {
	items, err := d.sequence(n, what)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, err := d.str(item, what)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *decoder) document(root *yaml.Node) (*Document, error) {
	if root == nil || root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, d.errorf(root, "empty document")
	}
	body := deref(root.Content[0])
	entries, err := d.mapping(body, "document")
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	var sawVersion bool
	for _, e := range entries {
		switch e.key.Value {
		case "openapi":
			sawVersion = true
			if doc.OpenAPI, err = d.str(e.value, "openapi"); err != nil {
				return nil, err
			}
			if !strings.HasPrefix(doc.OpenAPI, "3.") {
				return nil, d.errorf(e.value, "unsupported OpenAPI version %q (expected 3.x)", doc.OpenAPI)
			}
		case "swagger":
			return nil, d.errorf(e.key, "OpenAPI 2.0 documents are not supported")
		case "info":
			if err := d.info(e.value, &doc.Info); err != nil {
				return nil, err
			}
		case "paths":
			if doc.Paths, err = d.paths(e.value); err != nil {
				return nil, err
			}
		case "components":
			if err := d.components(e.value, &doc.Components); err != nil {
				return nil, err
			}
		}
	}
	if !sawVersion {
		return nil, d.errorf(body, "missing openapi version field")
	}
	return doc, nil
}

func (d *decoder) info(n *yaml.Node, info *Info) error {
	entries, err := d.mapping(n, "info")
	if err != nil {
		return err
	}
	for _, e := range entries {
		var target *string
		switch e.key.Value {
		case "title":
			target = &info.Title
		case "version":
			target = &info.Version
		case "description":
			target = &info.Description
		default:
			continue
		}
		if *target, err = d.str(e.value, "info."+e.key.Value); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) paths(n *yaml.Node) ([]*PathItem, error) {
	entries, err := d.mapping(n, "paths")
	if err != nil {
		return nil, err
	}
	items := make([]*PathItem, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.key.Value, "x-") {
			continue
		}
		item, err := d.pathItem(e.key.Value, e.value)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *decoder) pathItem(path string, n *yaml.Node) (*PathItem, error) {
	entries, err := d.mapping(n, "path "+path)
	if err != nil {
		return nil, err
	}
	item := &PathItem{Path: path, Location: loc(n)}
	for _, e := range entries {
		what := "paths." + path + "." + e.key.Value
		var target **Operation
		switch e.key.Value {
		case "summary":
			item.Summary, err = d.str(e.value, what)
		case "description":
			item.Description, err = d.str(e.value, what)
		case "parameters":
			item.Parameters, err = d.parameters(e.value, what)
		case "$ref":
			err = d.errorf(e.key, "%s: path item references are not supported", what)
		case "get":
			target = &item.Get
		case "put":
			target = &item.Put
		case "post":
			target = &item.Post
		case "delete":
			target = &item.Delete
		case "options":
			target = &item.Options
		case "head":
			target = &item.Head
		case "patch":
			target = &item.Patch
		}
		if err != nil {
			return nil, err
		}
		if target != nil {
			if *target, err = d.operation(e.value, what); err != nil {
				return nil, err
			}
		}
	}
	return item, nil
}

func (d *decoder) operation(n *yaml.Node, what string) (*Operation, error) {
	entries, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	op := &Operation{Location: loc(n)}
	for _, e := range entries {
		field := what + "." + e.key.Value
		switch e.key.Value {
		case "operationId":
			op.OperationID, err = d.str(e.value, field)
		case "summary":
			op.Summary, err = d.str(e.value, field)
		case "description":
			op.Description, err = d.str(e.value, field)
		case "tags":
			op.Tags, err = d.strings(e.value, field)
		case "deprecated":
			op.Deprecated, err = d.boolean(e.value, field)
		case "parameters":
			op.Parameters, err = d.parameters(e.value, field)
		case "requestBody":
			op.RequestBody, err = d.requestBody(e.value, field)
		case "responses":
			err = d.responses(e.value, field, op)
		}
		if err != nil {
			return nil, err
		}
	}
	return op, nil
}

func (d *decoder) parameters(n *yaml.Node, what string) ([]*Parameter, error) {
	items, err := d.sequence(n, what)
	if err != nil {
		return nil, err
	}
	params := make([]*Parameter, 0, len(items))
	for i, item := range items {
		p, err := d.parameter(item, fmt.Sprintf("%s[%d]", what, i))
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func (d *decoder) parameter(n *yaml.Node, what string) (*Parameter, error) {
	entries, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	p := &Parameter{Location: loc(n)}
	for _, e := range entries {
		field := what + "." + e.key.Value
		switch e.key.Value {
		case "$ref":
			p.Ref, err = d.str(e.value, field)
		case "name":
			p.Name, err = d.str(e.value, field)
		case "in":
			p.In, err = d.str(e.value, field)
		case "description":
			p.Description, err = d.str(e.value, field)
		case "required":
			p.Required, err = d.boolean(e.value, field)
		case "schema":
			p.Schema, err = d.schema(e.value, field)
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (d *decoder) requestBody(n *yaml.Node, what string) (*RequestBody, error) {
	entries, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	rb := &RequestBody{Location: loc(n)}
	for _, e := range entries {
		field := what + "." + e.key.Value
		switch e.key.Value {
		case "$ref":
			rb.Ref, err = d.str(e.value, field)
		case "description":
			rb.Description, err = d.str(e.value, field)
		case "required":
			rb.Required, err = d.boolean(e.value, field)
		case "content":
			rb.Content, err = d.content(e.value, field)
		}
		if err != nil {
			return nil, err
		}
	}
	return rb, nil
}

func (d *decoder) responses(n *yaml.Node, what string, op *Operation) error {
	entries, err := d.mapping(n, what)
	if err != nil {
		return err
	}
	for _, e := range entries {
		code := e.key.Value
		if strings.HasPrefix(code, "x-") {
			continue
		}
		resp, err := d.response(e.value, what+"."+code)
		if err != nil {
			return err
		}
		if code == "default" {
			op.Default = resp
			continue
		}
		op.Responses = append(op.Responses, &ResponseEntry{Code: code, Response: resp, Location: loc(e.key)})
	}
	return nil
}

func (d *decoder) response(n *yaml.Node, what string) (*Response, error) {
	entries, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	r := &Response{Location: loc(n)}
	for _, e := range entries {
		field := what + "." + e.key.Value
		switch e.key.Value {
		case "$ref":
			r.Ref, err = d.str(e.value, field)
		case "description":
			r.Description, err = d.str(e.value, field)
		case "content":
			r.Content, err = d.content(e.value, field)
		}
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (d *decoder) content(n *yaml.Node, what string) ([]*MediaType, error) {
	entries, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	out := make([]*MediaType, 0, len(entries))
	for _, e := range entries {
		field := what + "." + e.key.Value
		mt := &MediaType{Name: e.key.Value, Location: loc(e.key)}
		fields, err := d.mapping(e.value, field)
		if err != nil {
			return nil, err
		}
		for _, f := range fields {
			if f.key.Value == "schema" {
				if mt.Schema, err = d.schema(f.value, field+".schema"); err != nil {
					return nil, err
				}
			}
		}
		out = append(out, mt)
	}
	return out, nil
}

func (d *decoder) schemas(n *yaml.Node, what string) ([]*Schema, error) {
	items, err := d.sequence(n, what)
	if err != nil {
		return nil, err
	}
	out := make([]*Schema, 0, len(items))
	for i, item := range items {
		s, err := d.schema(item, fmt.Sprintf("%s[%d]", what, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *decoder) schema(n *yaml.Node, what string) (*Schema, error) {
	n = deref(n)
	if n != nil && n.Kind == yaml.ScalarNode && !isNull(n) {
		// JSON Schema allows boolean schemas; "true" accepts anything.
		if b, err := strconv.ParseBool(n.Value); err == nil && b {
			return &Schema{Location: loc(n)}, nil
		}
		return nil, d.errorf(n, "%s must be a schema object", what)
	}
	entries, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	s := &Schema{}
	if n != nil {
		s.Location = loc(n)
	}
	for _, e := range entries {
		field := what + "." + e.key.Value
		switch e.key.Value {
		case "$ref":
			s.Ref, err = d.str(e.value, field)
		case "title":
			s.Title, err = d.str(e.value, field)
		case "description":
			s.Description, err = d.str(e.value, field)
		case "type":
			if e.value.Kind == yaml.SequenceNode {
				s.Type, err = d.strings(e.value, field)
			} else {
				var t string
				if t, err = d.str(e.value, field); err == nil && t != "" {
					s.Type = []string{t}
				}
			}
		case "format":
			s.Format, err = d.str(e.value, field)
		case "items":
			s.Items, err = d.schema(e.value, field)
		case "properties":
			s.Properties, err = d.properties(e.value, field)
		case "required":
			s.Required, err = d.strings(e.value, field)
		case "nullable":
			s.Nullable, err = d.boolean(e.value, field)
		case "enum":
			s.Enum, err = d.strings(e.value, field)
		case "oneOf":
			s.OneOf, err = d.schemas(e.value, field)
		case "anyOf":
			s.AnyOf, err = d.schemas(e.value, field)
		case "allOf":
			s.AllOf, err = d.schemas(e.value, field)
		case "not":
			s.Not, err = d.schema(e.value, field)
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (d *decoder) properties(n *yaml.Node, what string) ([]*Property, error) {
	entries, err := d.mapping(n, what)
	if err != nil {
		return nil, err
	}
	props := make([]*Property, 0, len(entries))
	for _, e := range entries {
		s, err := d.schema(e.value, what+"."+e.key.Value)
		if err != nil {
			return nil, err
		}
		props = append(props, &Property{Name: e.key.Value, Schema: s, Location: loc(e.key)})
	}
	return props, nil
}

func (d *decoder) components(n *yaml.Node, c *Components) error {
	entries, err := d.mapping(n, "components")
	if err != nil {
		return err
	}
	for _, e := range entries {
		section := "components." + e.key.Value
		fields, err := d.mapping(e.value, section)
		if err != nil {
			return err
		}
		switch e.key.Value {
		case "schemas":
			c.Schemas = make(map[string]*Schema, len(fields))
			for _, f := range fields {
				s, err := d.schema(f.value, section+"."+f.key.Value)
				if err != nil {
					return err
				}
				c.Schemas[f.key.Value] = s
				c.SchemaOrder = append(c.SchemaOrder, f.key.Value)
			}
		case "parameters":
			c.Parameters = make(map[string]*Parameter, len(fields))
			for _, f := range fields {
				if c.Parameters[f.key.Value], err = d.parameter(f.value, section+"."+f.key.Value); err != nil {
					return err
				}
			}
		case "responses":
			c.Responses = make(map[string]*Response, len(fields))
			for _, f := range fields {
				if c.Responses[f.key.Value], err = d.response(f.value, section+"."+f.key.Value); err != nil {
					return err
				}
			}
		case "requestBodies":
			c.RequestBodies = make(map[string]*RequestBody, len(fields))
			for _, f := range fields {
				if c.RequestBodies[f.key.Value], err = d.requestBody(f.value, section+"."+f.key.Value); err != nil {
					return err
				}
			}
		default:
			d.log.Debug("skipping components section", "section", e.key.Value)
		}
	}
	return nil
}
