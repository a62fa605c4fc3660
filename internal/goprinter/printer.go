// Package goprinter renders artifact files as formatted Go source.
package goprinter

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/erraggy/hsrgen/internal/artifact"
)

// Printer turns an artifact file into source bytes.
type Printer interface {
	Print(f *artifact.File) ([]byte, error)
}

// GoPrinter prints Go source and formats it goimports style, which also
// drops imports the file does not use.
type GoPrinter struct{}

var _ Printer = GoPrinter{}

// New returns a GoPrinter.
func New() GoPrinter { return GoPrinter{} }

// Print renders f and formats the result.
func (GoPrinter) Print(f *artifact.File) ([]byte, error) {
	src := Render(f)
	name := f.Name
	if name == "" {
		name = "generated.go"
	}
	formatted, err := imports.Process(name, src, nil)
	if err != nil {
		return nil, fmt.Errorf("goprinter: failed to format %s: %w", name, err)
	}
	return formatted, nil
}

// Render writes f as unformatted Go source.
func Render(f *artifact.File) []byte {
	w := &writer{}
	for _, h := range f.Header {
		w.line(0, "// "+h)
	}
	if len(f.Header) > 0 {
		w.blank()
	}
	w.line(0, "package "+f.Package)
	w.blank()

	if len(f.Imports) > 0 {
		w.line(0, "import (")
		for _, imp := range f.Imports {
			if imp.Name != "" {
				w.line(1, fmt.Sprintf("%s %q", imp.Name, imp.Path))
			} else {
				w.line(1, fmt.Sprintf("%q", imp.Path))
			}
		}
		w.line(0, ")")
		w.blank()
	}

	for _, d := range f.Decls {
		w.decl(d)
		w.blank()
	}
	return w.buf.Bytes()
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) line(depth int, s string) {
	w.buf.WriteString(strings.Repeat("\t", depth))
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

func (w *writer) blank() { w.buf.WriteByte('\n') }

func (w *writer) doc(depth int, doc string) {
	if doc == "" {
		return
	}
	for _, l := range strings.Split(doc, "\n") {
		if l == "" {
			w.line(depth, "//")
			continue
		}
		w.line(depth, "// "+l)
	}
}

func (w *writer) decl(d artifact.Decl) {
	switch d := d.(type) {
	case *artifact.Struct:
		w.structDecl(d)
	case *artifact.Alias:
		w.doc(0, d.Doc)
		w.line(0, fmt.Sprintf("type %s = %s", d.Name, d.Type))
	case *artifact.TypeDef:
		w.doc(0, d.Doc)
		w.line(0, fmt.Sprintf("type %s %s", d.Name, d.Type))
	case *artifact.Interface:
		w.doc(0, d.Doc)
		w.line(0, "type "+d.Name+" interface {")
		w.interfaceBody(d.Embeds, d.Methods)
		w.line(0, "}")
	case *artifact.Union:
		w.union(d)
	case *artifact.Var:
		w.doc(0, d.Doc)
		s := "var " + d.Name
		if d.Const {
			s = "const " + d.Name
		}
		if d.Type != "" {
			s += " " + d.Type
		}
		if d.Value != "" {
			s += " = " + d.Value
		}
		w.line(0, s)
	case *artifact.Func:
		w.fn(d)
	}
}

func (w *writer) structDecl(s *artifact.Struct) {
	w.doc(0, s.Doc)
	if len(s.Fields) == 0 {
		w.line(0, "type "+s.Name+" struct{}")
		return
	}
	w.line(0, "type "+s.Name+" struct {")
	for _, f := range s.Fields {
		w.doc(1, f.Doc)
		text := f.Type
		if f.Name != "" {
			text = f.Name + " " + f.Type
		}
		if f.Tag != "" {
			text += " `" + f.Tag + "`"
		}
		w.line(1, text)
	}
	w.line(0, "}")
}

func (w *writer) interfaceBody(embeds []string, methods []artifact.Method) {
	for _, e := range embeds {
		w.line(1, e)
	}
	for _, m := range methods {
		w.doc(1, m.Doc)
		w.line(1, m.Name+signature(m.Params, m.Results))
	}
}

func (w *writer) union(u *artifact.Union) {
	w.doc(0, u.Doc)
	w.line(0, "type "+u.Name+" interface {")
	w.interfaceBody(u.Embeds, u.Methods)
	w.line(1, u.Marker+"()")
	w.line(0, "}")
	for i := range u.Variants {
		v := &u.Variants[i]
		w.blank()
		w.structDecl(v)
	}
	w.blank()
	for _, v := range u.Variants {
		w.line(0, fmt.Sprintf("func (%s) %s() {}", v.Name, u.Marker))
	}
}

func (w *writer) fn(f *artifact.Func) {
	w.doc(0, f.Doc)
	head := "func "
	if f.Recv != nil {
		head += "(" + param(*f.Recv) + ") "
	}
	head += f.Name + signature(f.Params, f.Results)
	if len(f.Body) == 0 {
		w.line(0, head+" {}")
		return
	}
	w.line(0, head+" {")
	w.stmts(1, f.Body)
	w.line(0, "}")
}

func (w *writer) stmts(depth int, body []artifact.Stmt) {
	for _, s := range body {
		w.stmt(depth, s)
	}
}

func (w *writer) stmt(depth int, s artifact.Stmt) {
	switch s := s.(type) {
	case *artifact.Line:
		w.line(depth, s.Text)
	case *artifact.Comment:
		w.line(depth, "// "+s.Text)
	case *artifact.Return:
		if len(s.Values) == 0 {
			w.line(depth, "return")
			return
		}
		w.line(depth, "return "+strings.Join(s.Values, ", "))
	case *artifact.If:
		cond := s.Cond
		if s.Init != "" {
			cond = s.Init + "; " + cond
		}
		w.line(depth, "if "+cond+" {")
		w.stmts(depth+1, s.Then)
		if len(s.Else) > 0 {
			w.line(depth, "} else {")
			w.stmts(depth+1, s.Else)
		}
		w.line(depth, "}")
	case *artifact.ReturnFunc:
		w.line(depth, "return func"+signature(s.Params, s.Results)+" {")
		w.stmts(depth+1, s.Body)
		w.line(depth, "}")
	case *artifact.For:
		w.line(depth, "for "+s.Clause+" {")
		w.stmts(depth+1, s.Body)
		w.line(depth, "}")
	case *artifact.Switch:
		if s.Tag == "" {
			w.line(depth, "switch {")
		} else {
			w.line(depth, "switch "+s.Tag+" {")
		}
		for _, c := range s.Cases {
			if len(c.Exprs) == 0 {
				w.line(depth, "default:")
			} else {
				w.line(depth, "case "+strings.Join(c.Exprs, ", ")+":")
			}
			w.stmts(depth+1, c.Body)
		}
		w.line(depth, "}")
	}
}

func param(p artifact.Param) string {
	if p.Name == "" {
		return p.Type
	}
	return p.Name + " " + p.Type
}

func signature(params, results []artifact.Param) string {
	ps := make([]string, len(params))
	for i, p := range params {
		ps[i] = param(p)
	}
	s := "(" + strings.Join(ps, ", ") + ")"

	switch {
	case len(results) == 0:
		return s
	case len(results) == 1 && results[0].Name == "":
		return s + " " + results[0].Type
	}
	rs := make([]string, len(results))
	for i, r := range results {
		rs[i] = param(r)
	}
	return s + " (" + strings.Join(rs, ", ") + ")"
}
