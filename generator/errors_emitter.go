package generator

import (
	"fmt"
	"strconv"

	"github.com/erraggy/hsrgen/internal/artifact"
	"github.com/erraggy/hsrgen/taxonomy"
)

// errorsFile declares the error union of every operation: a sealed
// interface, one struct per variant, and the As<Op>Error converter.
func (e *emitter) errorsFile() *artifact.File {
	f := e.newFile("errors.go")
	f.AddImport("errors")
	f.AddImport("fmt")
	e.addRuntime(f)
	for _, op := range e.model.ops {
		f.Add(e.errorUnion(op))
		for _, v := range op.errors.Variants {
			f.Add(e.variantMethods(op, v)...)
		}
		f.Add(e.asErrorFunc(op))
	}
	return f
}

func unionName(op *operation) string { return op.Name + "Error" }

func variantName(op *operation, v taxonomy.Variant) string { return op.Name + v.Name }

func (e *emitter) errorUnion(op *operation) *artifact.Union {
	u := &artifact.Union{
		Doc: fmt.Sprintf("%s is the error of %s. Every variant reports the HTTP status it maps to.",
			unionName(op), op.Name),
		Name:   unionName(op),
		Embeds: []string{"error"},
		Methods: []artifact.Method{{
			Name:    "StatusCode",
			Results: []artifact.Param{{Type: "int"}},
		}},
		Marker: "is" + unionName(op),
	}
	for _, v := range op.errors.Variants {
		name := variantName(op, v)
		s := artifact.Struct{Name: name}
		switch v.Kind {
		case taxonomy.Declared:
			s.Doc = fmt.Sprintf("%s is the %d response of %s.", name, v.Status, op.Name)
			if d := cleanDescription(v.Description); d != "" {
				s.Doc += "\n" + d
			}
			if v.Payload != nil {
				s.Fields = []artifact.Field{{Name: "Body", Type: e.model.goType(*v.Payload)}}
			}
		case taxonomy.Default:
			s.Doc = fmt.Sprintf("%s is the default response of %s. A zero Status is reported as %d.",
				name, op.Name, taxonomy.DefaultStatus)
			s.Fields = []artifact.Field{
				{Name: "Status", Type: "int"},
				{Name: "Body", Type: e.model.goType(*v.Payload)},
			}
		case taxonomy.Unexpected:
			s.Doc = fmt.Sprintf("%s wraps any other failure of %s. Its status is the one the wrapped error\nreports through hsr.StatusOf.", name, op.Name)
			s.Fields = []artifact.Field{{Name: "Err", Type: "error"}}
		}
		u.Variants = append(u.Variants, s)
	}
	return u
}

func (e *emitter) variantMethods(op *operation, v taxonomy.Variant) []artifact.Decl {
	name := variantName(op, v)
	recv := &artifact.Param{Name: "e", Type: name}
	errorFunc := &artifact.Func{Recv: recv, Name: "Error", Results: []artifact.Param{{Type: "string"}}}
	statusFunc := &artifact.Func{Recv: recv, Name: "StatusCode", Results: []artifact.Param{{Type: "int"}}}
	prefix := op.route.OperationID + ": "
	status := op.errors.StatusOf(v)

	switch v.Kind {
	case taxonomy.Declared:
		recv.Name = ""
		errorFunc.Body = []artifact.Stmt{artifact.Ret(strconv.Quote(fmt.Sprintf("%sstatus %d", prefix, v.Status)))}
		statusFunc.Body = []artifact.Stmt{artifact.Ret(strconv.Itoa(status.Code))}
		return []artifact.Decl{errorFunc, statusFunc}

	case taxonomy.Default:
		errorFunc.Body = []artifact.Stmt{
			artifact.Ret(fmt.Sprintf("fmt.Sprintf(%s, e.StatusCode())", strconv.Quote(prefix+"status %d"))),
		}
		statusFunc.Body = []artifact.Stmt{
			&artifact.If{Cond: "e.Status == 0", Then: []artifact.Stmt{artifact.Ret(strconv.Itoa(status.Code))}},
			artifact.Ret("e.Status"),
		}
		return []artifact.Decl{errorFunc, statusFunc}
	}

	errorFunc.Body = []artifact.Stmt{
		&artifact.If{Cond: "e.Err == nil", Then: []artifact.Stmt{artifact.Ret(strconv.Quote(prefix + "unexpected error"))}},
		artifact.Ret(strconv.Quote(prefix) + " + e.Err.Error()"),
	}
	statusFunc.Body = []artifact.Stmt{artifact.Ret("hsr.StatusOf(e.Err)")}
	unwrap := &artifact.Func{
		Doc:     "Unwrap returns the wrapped error.",
		Recv:    recv,
		Name:    "Unwrap",
		Results: []artifact.Param{{Type: "error"}},
		Body:    []artifact.Stmt{artifact.Ret("e.Err")},
	}
	return []artifact.Decl{errorFunc, statusFunc, unwrap}
}

func (e *emitter) asErrorFunc(op *operation) *artifact.Func {
	union := unionName(op)
	unexpected := variantName(op, op.errors.Unexpected())
	return &artifact.Func{
		Doc: fmt.Sprintf("As%s returns the %s in err's chain, or wraps err in %s.\nIt returns nil for a nil err.",
			union, union, unexpected),
		Name:    "As" + union,
		Params:  []artifact.Param{{Name: "err", Type: "error"}},
		Results: []artifact.Param{{Type: union}},
		Body: []artifact.Stmt{
			&artifact.If{Cond: "err == nil", Then: []artifact.Stmt{artifact.Ret("nil")}},
			artifact.Raw("var target " + union),
			&artifact.If{Cond: "errors.As(err, &target)", Then: []artifact.Stmt{artifact.Ret("target")}},
			artifact.Ret(unexpected + "{Err: err}"),
		},
	}
}
