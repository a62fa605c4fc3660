package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/hsrgen"
	"github.com/erraggy/hsrgen/internal/artifact"
)

// clientFile declares the Client type, its options, and one method per
// operation.
func (e *emitter) clientFile() *artifact.File {
	f := e.newFile("client.go")
	for _, imp := range []string{"context", "errors", "net/http", "net/url", "strings"} {
		f.AddImport(imp)
	}
	e.addRuntime(f)

	title := firstOf(e.model.set.Title, "the API")
	f.Add(
		&artifact.Var{
			Doc:   "DefaultUserAgent is the User-Agent NewClient configures.",
			Const: true,
			Name:  "DefaultUserAgent",
			Value: strconv.Quote(e.userAgent()),
		},
		&artifact.Struct{
			Doc:  fmt.Sprintf("Client calls %s over HTTP.", title),
			Name: "Client",
			Fields: []artifact.Field{
				{Doc: "BaseURL is the server URL without a trailing slash.", Name: "BaseURL", Type: "string"},
				{Doc: "HTTPClient sends the requests.", Name: "HTTPClient", Type: "hsr.Doer"},
				{Doc: "UserAgent is sent with every request when non-empty.", Name: "UserAgent", Type: "string"},
				{Doc: "RequestEditors run on every request before it is sent.", Name: "RequestEditors", Type: "[]hsr.RequestEditorFn"},
			},
		},
		&artifact.TypeDef{
			Doc:  "ClientOption configures a Client.",
			Name: "ClientOption",
			Type: "func(*Client) error",
		},
		&artifact.Func{
			Doc:     "NewClient returns a Client for baseURL.",
			Name:    "NewClient",
			Params:  []artifact.Param{{Name: "baseURL", Type: "string"}, {Name: "opts", Type: "...ClientOption"}},
			Results: []artifact.Param{{Type: "*Client"}, {Type: "error"}},
			Body: []artifact.Stmt{
				artifact.Raw(`c := &Client{BaseURL: strings.TrimSuffix(baseURL, "/"), HTTPClient: http.DefaultClient, UserAgent: DefaultUserAgent}`),
				&artifact.For{Clause: "_, opt := range opts", Body: []artifact.Stmt{
					&artifact.If{Init: "err := opt(c)", Cond: "err != nil", Then: []artifact.Stmt{artifact.Ret("nil", "err")}},
				}},
				artifact.Ret("c", "nil"),
			},
		},
		clientOption("WithHTTPClient", "sets the transport used to send requests.", "doer", "hsr.Doer",
			&artifact.If{Cond: "doer == nil", Then: []artifact.Stmt{artifact.Ret(`errors.New("http client cannot be nil")`)}},
			artifact.Raw("c.HTTPClient = doer"),
		),
		clientOption("WithRequestEditor", "adds a function that can modify every request.", "fn", "hsr.RequestEditorFn",
			artifact.Raw("c.RequestEditors = append(c.RequestEditors, fn)"),
		),
		clientOption("WithUserAgent", "sets the User-Agent header.", "ua", "string",
			artifact.Raw("c.UserAgent = ua"),
		),
	)
	for _, op := range e.model.ops {
		f.Add(e.clientMethod(op))
	}
	return f
}

func (e *emitter) userAgent() string {
	if e.gen.UserAgent != "" {
		return e.gen.UserAgent
	}
	return fmt.Sprintf("%s/generated/%s", hsrgen.UserAgent(), firstOf(e.model.set.Title, "API Client"))
}

func clientOption(name, doc, param, typ string, body ...artifact.Stmt) *artifact.Func {
	return &artifact.Func{
		Doc:     name + " " + doc,
		Name:    name,
		Params:  []artifact.Param{{Name: param, Type: typ}},
		Results: []artifact.Param{{Type: "ClientOption"}},
		Body: []artifact.Stmt{&artifact.ReturnFunc{
			Params:  []artifact.Param{{Name: "c", Type: "*Client"}},
			Results: []artifact.Param{{Type: "error"}},
			Body:    append(body, artifact.Ret("nil")),
		}},
	}
}

// pathExpr builds the Go expression for the request path by substituting
// path parameters into the template segments in order.
func pathExpr(op *operation) string {
	var parts []string
	var lit strings.Builder
	i := 0
	for _, seg := range op.route.Template.Segments {
		lit.WriteByte('/')
		if !seg.Param {
			lit.WriteString(seg.Value)
			continue
		}
		parts = append(parts, strconv.Quote(lit.String()), "hsr.PathEscape("+op.PathParams[i]+")")
		lit.Reset()
		i++
	}
	if len(op.route.Template.Segments) == 0 || op.route.Template.TrailingSlash {
		lit.WriteByte('/')
	}
	if lit.Len() > 0 {
		parts = append(parts, strconv.Quote(lit.String()))
	}
	return strings.Join(parts, " + ")
}

// clientDoc extends the operation doc with how undeclared statuses surface.
func (e *emitter) clientDoc(op *operation) string {
	unexpected := variantName(op, op.errors.Unexpected())
	var note string
	if v, ok := op.errors.Default(); ok {
		note = fmt.Sprintf("A status the contract does not list is decoded as %s. "+
			"When that body is not valid JSON the error is %s wrapping the decode error.",
			variantName(op, v), unexpected)
	} else {
		note = fmt.Sprintf("A status the contract does not list is returned as %s wrapping an *hsr.ClientError.",
			unexpected)
	}
	doc := e.operationDoc(op)
	if doc == "" {
		doc = fmt.Sprintf("%s calls %s %s.", op.Name, op.route.Method, op.route.Path())
	}
	return doc + "\n\n" + note
}

func (e *emitter) clientMethod(op *operation) *artifact.Func {
	r := op.route
	hasOut := r.Success.Type != nil
	ret := func(values ...string) *artifact.Return {
		if hasOut {
			return artifact.Ret(append([]string{"out"}, values...)...)
		}
		return artifact.Ret(values...)
	}
	unexpected := variantName(op, op.errors.Unexpected())

	var body []artifact.Stmt
	if hasOut {
		body = append(body, artifact.Raw("var out "+e.model.goType(*r.Success.Type)))
	}

	fields := []string{
		"Method: " + strconv.Quote(r.Method),
		"BaseURL: c.BaseURL",
		"Path: " + pathExpr(op),
	}
	if len(r.QueryParams) > 0 {
		body = append(body, artifact.Raw("query := url.Values{}"))
		for i, p := range r.QueryParams {
			name := op.QueryParams[i]
			if p.Required {
				body = append(body, artifact.Raw(fmt.Sprintf("query.Set(%s, hsr.Format(%s))", strconv.Quote(p.Name), name)))
				continue
			}
			body = append(body, &artifact.If{
				Cond: name + " != nil",
				Then: []artifact.Stmt{artifact.Raw(fmt.Sprintf("query.Set(%s, hsr.Format(*%s))", strconv.Quote(p.Name), name))},
			})
		}
		fields = append(fields, "Query: query")
	}
	if r.Body != nil && r.Body.Required {
		fields = append(fields, "Body: "+op.BodyParam)
	}
	fields = append(fields, "UserAgent: c.UserAgent", "Editors: c.RequestEditors")
	body = append(body, artifact.Raw("req := hsr.Request{\n"+strings.Join(fields, ",\n")+",\n}"))
	if r.Body != nil && !r.Body.Required {
		body = append(body, &artifact.If{
			Cond: op.BodyParam + " != nil",
			Then: []artifact.Stmt{artifact.Raw("req.Body = " + op.BodyParam)},
		})
	}

	body = append(body,
		artifact.Raw("resp, err := hsr.Do(ctx, c.HTTPClient, req)"),
		&artifact.If{Cond: "err != nil", Then: []artifact.Stmt{ret(unexpected + "{Err: err}")}},
		artifact.Raw("defer hsr.CloseBody(resp)"),
	)

	decodeInto := func(target string) *artifact.If {
		return &artifact.If{
			Init: fmt.Sprintf("err := hsr.DecodeResponse(resp, &%s)", target),
			Cond: "err != nil",
			Then: []artifact.Stmt{ret(unexpected + "{Err: err}")},
		}
	}

	var cases []artifact.Case
	success := artifact.Case{Exprs: []string{strconv.Itoa(r.Success.Status)}}
	if hasOut {
		success.Body = []artifact.Stmt{decodeInto("out"), ret("nil")}
	} else {
		success.Body = []artifact.Stmt{ret("nil")}
	}
	cases = append(cases, success)

	for _, v := range op.errors.Declared() {
		c := artifact.Case{Exprs: []string{strconv.Itoa(v.Status)}}
		if v.Payload == nil {
			c.Body = []artifact.Stmt{ret(variantName(op, v) + "{}")}
		} else {
			c.Body = []artifact.Stmt{
				artifact.Raw("var body " + e.model.goType(*v.Payload)),
				decodeInto("body"),
				ret(variantName(op, v) + "{Body: body}"),
			}
		}
		cases = append(cases, c)
	}

	fallback := artifact.Case{}
	if v, ok := op.errors.Default(); ok {
		fallback.Body = []artifact.Stmt{
			artifact.Raw("var body " + e.model.goType(*v.Payload)),
			decodeInto("body"),
			ret(variantName(op, v) + "{Status: resp.StatusCode, Body: body}"),
		}
	} else {
		fallback.Body = []artifact.Stmt{ret(unexpected + "{Err: &hsr.ClientError{Status: resp.StatusCode}}")}
	}
	cases = append(cases, fallback)
	body = append(body, &artifact.Switch{Tag: "resp.StatusCode", Cases: cases})

	return &artifact.Func{
		Doc:     e.clientDoc(op),
		Recv:    &artifact.Param{Name: "c", Type: "*Client"},
		Name:    op.Name,
		Params:  e.operationParams(op),
		Results: e.operationResults(op),
		Body:    body,
	}
}
