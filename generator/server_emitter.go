package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/hsrgen/internal/artifact"
	"github.com/erraggy/hsrgen/taxonomy"
)

// serviceFile declares the Service interface with one method per operation.
func (e *emitter) serviceFile() *artifact.File {
	f := e.newFile("service.go")
	f.AddImport("context")

	title := firstOf(e.model.set.Title, "the API")
	svc := &artifact.Interface{
		Doc:  fmt.Sprintf("Service is the server-side contract of %s. A method reports an error\nresponse by returning one of the variants of its error union.", title),
		Name: "Service",
	}
	for _, op := range e.model.ops {
		svc.Methods = append(svc.Methods, artifact.Method{
			Doc:     e.operationDoc(op),
			Name:    op.Name,
			Params:  e.operationParams(op),
			Results: e.operationResults(op),
		})
	}
	f.Add(svc)
	return f
}

func (e *emitter) operationDoc(op *operation) string {
	doc := docFor(op.Name, cleanDescription(firstOf(op.route.Summary, op.route.Description)))
	if op.route.Deprecated {
		if doc != "" {
			doc += "\n\n"
		}
		doc += "Deprecated: this operation is deprecated."
	}
	return doc
}

// operationParams returns ctx, the path parameters in placeholder order, the
// query parameters in declared order, and the body.
func (e *emitter) operationParams(op *operation) []artifact.Param {
	params := []artifact.Param{{Name: "ctx", Type: "context.Context"}}
	for i, p := range op.route.PathParams {
		params = append(params, artifact.Param{Name: op.PathParams[i], Type: e.model.goType(p.Type)})
	}
	for i, p := range op.route.QueryParams {
		params = append(params, artifact.Param{Name: op.QueryParams[i], Type: e.model.goType(p.Type)})
	}
	if b := op.route.Body; b != nil {
		typ := e.model.goType(b.Type)
		if !b.Required {
			typ = "*" + typ
		}
		params = append(params, artifact.Param{Name: op.BodyParam, Type: typ})
	}
	return params
}

func (e *emitter) operationResults(op *operation) []artifact.Param {
	if op.route.Success.Type == nil {
		return []artifact.Param{{Type: "error"}}
	}
	return []artifact.Param{{Type: e.model.goType(*op.route.Success.Type)}, {Type: "error"}}
}

// serverFile declares the request adapters and the bootstrap functions.
func (e *emitter) serverFile() *artifact.File {
	f := e.newFile("server.go")
	f.AddImport("context")
	f.AddImport("net/http")
	e.addRuntime(f)

	f.Add(&artifact.Struct{
		Name:   "server",
		Fields: []artifact.Field{{Name: "svc", Type: "Service"}},
	})
	for _, op := range e.model.ops {
		f.Add(e.handler(op), e.errorWriter(op))
	}

	var table strings.Builder
	table.WriteString("[]hsr.Route{\n")
	for _, op := range e.model.ops {
		fmt.Fprintf(&table, "{Method: %s, Path: %s, Pattern: %s, Handler: s.handle%s},\n",
			strconv.Quote(op.route.Method), strconv.Quote(op.route.Path()),
			strconv.Quote(muxPattern(op)), op.Name)
	}
	table.WriteString("}")

	f.Add(
		&artifact.Func{
			Doc:     "Routes returns the route table of svc in document order.",
			Name:    "Routes",
			Params:  []artifact.Param{{Name: "svc", Type: "Service"}},
			Results: []artifact.Param{{Type: "[]hsr.Route"}},
			Body: []artifact.Stmt{
				artifact.Raw("s := &server{svc: svc}"),
				artifact.Ret(table.String()),
			},
		},
		&artifact.Func{
			Doc:     "NewHandler returns an http.Handler that dispatches every route to svc.",
			Name:    "NewHandler",
			Params:  []artifact.Param{{Name: "svc", Type: "Service"}},
			Results: []artifact.Param{{Type: "http.Handler"}},
			Body:    []artifact.Stmt{artifact.Ret("hsr.NewMux(Routes(svc))")},
		},
		&artifact.Func{
			Doc:     "Serve serves svc until ctx is cancelled, then shuts down gracefully.",
			Name:    "Serve",
			Params:  []artifact.Param{{Name: "ctx", Type: "context.Context"}, {Name: "cfg", Type: "hsr.ServerConfig"}, {Name: "svc", Type: "Service"}},
			Results: []artifact.Param{{Type: "error"}},
			Body:    []artifact.Stmt{artifact.Ret("hsr.Serve(ctx, cfg, NewHandler(svc))")},
		},
	)
	return f
}

// muxPattern renders the ServeMux path pattern of op with the Go parameter
// names as wildcards.
func muxPattern(op *operation) string {
	return op.route.Template.Pattern(func(i int) string { return op.PathParams[i] })
}

func (e *emitter) handler(op *operation) *artifact.Func {
	r := op.route
	var body []artifact.Stmt
	writeErr := []artifact.Stmt{artifact.Raw("hsr.WriteError(w, err)"), artifact.Ret()}

	for i, p := range r.PathParams {
		body = append(body,
			artifact.Raw(fmt.Sprintf("%s, err := hsr.PathParam[%s](r.PathValue(%q), %s)",
				op.PathParams[i], scalarType(p.Base), op.PathParams[i], strconv.Quote(p.Name))),
			&artifact.If{Cond: "err != nil", Then: writeErr},
		)
	}
	if len(r.QueryParams) > 0 {
		body = append(body, artifact.Raw("q := r.URL.Query()"))
	}
	for i, p := range r.QueryParams {
		fn := "RequiredQuery"
		if !p.Required {
			fn = "OptionalQuery"
		}
		body = append(body,
			artifact.Raw(fmt.Sprintf("%s, err := hsr.%s[%s](q, %s)",
				op.QueryParams[i], fn, scalarType(p.Base), strconv.Quote(p.Name))),
			&artifact.If{Cond: "err != nil", Then: writeErr},
		)
	}
	if b := r.Body; b != nil {
		typ := e.model.goType(b.Type)
		if b.Required {
			body = append(body,
				artifact.Raw(fmt.Sprintf("var %s %s", op.BodyParam, typ)),
				&artifact.If{
					Init: fmt.Sprintf("err := hsr.DecodeJSON(r, &%s)", op.BodyParam),
					Cond: "err != nil",
					Then: writeErr,
				},
			)
		} else {
			body = append(body,
				artifact.Raw(fmt.Sprintf("%s := new(%s)", op.BodyParam, typ)),
				artifact.Raw(fmt.Sprintf("present, err := hsr.DecodeOptionalJSON(r, %s)", op.BodyParam)),
				&artifact.If{Cond: "err != nil", Then: writeErr},
				&artifact.If{Cond: "!present", Then: []artifact.Stmt{artifact.Raw(op.BodyParam + " = nil")}},
			)
		}
	}

	args := []string{"r.Context()"}
	args = append(args, op.PathParams...)
	args = append(args, op.QueryParams...)
	if op.BodyParam != "" {
		args = append(args, op.BodyParam)
	}
	call := fmt.Sprintf("s.svc.%s(%s)", op.Name, strings.Join(args, ", "))
	onErr := []artifact.Stmt{artifact.Raw(fmt.Sprintf("write%sError(w, err)", op.Name)), artifact.Ret()}
	status := strconv.Itoa(r.Success.Status)

	if r.Success.Type == nil {
		body = append(body,
			&artifact.If{Init: "err := " + call, Cond: "err != nil", Then: onErr},
			artifact.Raw("hsr.WriteStatus(w, "+status+")"),
		)
	} else {
		body = append(body,
			artifact.Raw("resp, err := "+call),
			&artifact.If{Cond: "err != nil", Then: onErr},
			artifact.Raw("hsr.WriteJSON(w, "+status+", resp)"),
		)
	}

	return &artifact.Func{
		Recv:   &artifact.Param{Name: "s", Type: "*server"},
		Name:   "handle" + op.Name,
		Params: []artifact.Param{{Name: "w", Type: "http.ResponseWriter"}, {Name: "r", Type: "*http.Request"}},
		Body:   body,
	}
}

// errorWriter converts a service error into the operation's union and
// writes the variant with its status. Payload variants serialize their body.
func (e *emitter) errorWriter(op *operation) *artifact.Func {
	var cases []artifact.Case
	for _, v := range op.errors.Variants {
		if v.Kind == taxonomy.Unexpected {
			continue
		}
		stmt := artifact.Raw("hsr.WriteStatus(w, e.StatusCode())")
		if v.Payload != nil {
			stmt = artifact.Raw("hsr.WriteJSON(w, e.StatusCode(), e.Body)")
		}
		cases = append(cases, artifact.Case{Exprs: []string{variantName(op, v)}, Body: []artifact.Stmt{stmt}})
	}
	cases = append(cases, artifact.Case{Body: []artifact.Stmt{artifact.Raw("hsr.WriteError(w, e)")}})

	return &artifact.Func{
		Name:   "write" + op.Name + "Error",
		Params: []artifact.Param{{Name: "w", Type: "http.ResponseWriter"}, {Name: "err", Type: "error"}},
		Body: []artifact.Stmt{&artifact.Switch{
			Tag:   fmt.Sprintf("e := As%s(err).(type)", unionName(op)),
			Cases: cases,
		}},
	}
}
