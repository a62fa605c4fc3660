package generator

import (
	"github.com/erraggy/hsrgen/oaserrors"
	"github.com/erraggy/hsrgen/parser"
	"github.com/erraggy/hsrgen/taxonomy"
)

// Summary describes the compiled model of a document without emitting code.
type Summary struct {
	Title      string             `json:"title"`
	Version    string             `json:"version"`
	Types      []TypeSummary      `json:"types"`
	Operations []OperationSummary `json:"operations"`
}

// TypeSummary describes one named type.
type TypeSummary struct {
	Name   string `json:"name"`
	GoName string `json:"goName"`
	Type   string `json:"type"`
	// Complex is set for records, sequences and anything naming them.
	Complex bool `json:"complex"`
}

// OperationSummary describes one route and its error union.
type OperationSummary struct {
	OperationID   string   `json:"operationId"`
	GoName        string   `json:"goName"`
	Method        string   `json:"method"`
	Path          string   `json:"path"`
	PathParams    []string `json:"pathParams,omitempty"`
	QueryParams   []string `json:"queryParams,omitempty"`
	SuccessStatus int      `json:"successStatus"`
	SuccessType   string   `json:"successType,omitempty"`
	Errors        []string `json:"errors"`
}

// Inspect compiles the document at path using functional options and
// summarizes the result. Output options are ignored.
func Inspect(path string, opts ...Option) (*Summary, error) {
	g, err := newFromOptions(opts...)
	if err != nil {
		return nil, err
	}
	return g.Inspect(path)
}

// Inspect compiles the document at path and summarizes the result.
func (g *Generator) Inspect(path string) (*Summary, error) {
	parsed, err := g.parser().Parse(path)
	if err != nil {
		return nil, err
	}
	return g.InspectParsed(*parsed)
}

// InspectParsed compiles an already parsed document and summarizes the
// result.
func (g *Generator) InspectParsed(parsed parser.ParseResult) (*Summary, error) {
	if parsed.Document == nil {
		return nil, &oaserrors.CodegenError{Message: "no document to inspect"}
	}
	m, err := compile(parsed.Document, g.Logger)
	if err != nil {
		return nil, err
	}
	table := m.set.Table
	s := &Summary{Title: m.set.Title, Version: m.set.Version}
	for _, name := range m.sortedTypeNames() {
		h, _ := table.Lookup(name)
		entry := table.Entry(h)
		s.Types = append(s.Types, TypeSummary{
			Name:    name,
			GoName:  m.types[name],
			Type:    entry.Type.String(),
			Complex: table.IsComplex(entry.Type),
		})
	}
	for _, op := range m.ops {
		r := op.route
		sum := OperationSummary{
			OperationID:   r.OperationID,
			GoName:        op.Name,
			Method:        r.Method,
			Path:          r.Path(),
			SuccessStatus: r.Success.Status,
		}
		for _, p := range r.PathParams {
			sum.PathParams = append(sum.PathParams, p.Name)
		}
		for _, p := range r.QueryParams {
			sum.QueryParams = append(sum.QueryParams, p.Name)
		}
		if r.Success.Type != nil {
			sum.SuccessType = r.Success.Type.String()
		}
		for _, v := range op.errors.Variants {
			sum.Errors = append(sum.Errors, variantLabel(v))
		}
		s.Operations = append(s.Operations, sum)
	}
	return s, nil
}

func variantLabel(v taxonomy.Variant) string {
	if v.Payload != nil {
		return v.Name + "(" + v.Payload.String() + ")"
	}
	return v.Name
}
