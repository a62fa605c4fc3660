package goprinter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/hsrgen/internal/artifact"
)

func TestPrint_Declarations(t *testing.T) {
	f := &artifact.File{
		Name:    "types.go",
		Package: "api",
		Header:  []string{"Code generated by hsrgen. DO NOT EDIT."},
		Imports: []artifact.Import{{Path: "context"}, {Path: "fmt"}},
	}
	f.Add(
		&artifact.Struct{
			Doc:  "Pet is a pet.",
			Name: "Pet",
			Fields: []artifact.Field{
				{Name: "ID", Type: "int64", Tag: `json:"id"`},
				{Name: "Tag", Type: "*string", Tag: `json:"tag,omitempty"`},
			},
		},
		&artifact.Alias{Name: "Pets", Type: "[]Pet"},
		&artifact.TypeDef{Name: "ClientOption", Type: "func(*Client) error"},
		&artifact.Interface{
			Name: "Service",
			Methods: []artifact.Method{{
				Name:    "GetPet",
				Params:  []artifact.Param{{Name: "ctx", Type: "context.Context"}, {Name: "petID", Type: "int64"}},
				Results: []artifact.Param{{Type: "Pet"}, {Type: "error"}},
			}},
		},
	)

	out, err := New().Print(f)
	require.NoError(t, err)
	src := string(out)

	assert.True(t, strings.HasPrefix(src, "// Code generated by hsrgen. DO NOT EDIT.\n\npackage api\n"))
	assert.Contains(t, src, `"context"`)
	assert.NotContains(t, src, `"fmt"`, "unused imports are removed")
	assert.Contains(t, src, "// Pet is a pet.\ntype Pet struct {\n")
	assert.Contains(t, src, "ID  int64   `json:\"id\"`")
	assert.Contains(t, src, "type Pets = []Pet\n")
	assert.Contains(t, src, "type ClientOption func(*Client) error\n")
	assert.Contains(t, src, "GetPet(ctx context.Context, petID int64) (Pet, error)")
}

func TestPrint_Union(t *testing.T) {
	f := &artifact.File{Name: "errors.go", Package: "api"}
	f.Add(&artifact.Union{
		Name:    "GetPetError",
		Embeds:  []string{"error"},
		Methods: []artifact.Method{{Name: "StatusCode", Results: []artifact.Param{{Type: "int"}}}},
		Marker:  "isGetPetError",
		Variants: []artifact.Struct{
			{Name: "GetPetE404"},
			{Name: "GetPetUnexpected", Fields: []artifact.Field{{Name: "Err", Type: "error"}}},
		},
	})

	out, err := New().Print(f)
	require.NoError(t, err)
	src := string(out)

	assert.Contains(t, src, "type GetPetError interface {\n\terror\n\tStatusCode() int\n\tisGetPetError()\n}")
	assert.Contains(t, src, "type GetPetE404 struct{}")
	assert.Contains(t, src, "func (GetPetE404) isGetPetError()       {}")
	assert.Contains(t, src, "func (GetPetUnexpected) isGetPetError() {}")
}

func TestPrint_FuncBody(t *testing.T) {
	f := &artifact.File{Name: "client.go", Package: "api"}
	f.Add(&artifact.Func{
		Doc:     "Classify names a status.",
		Recv:    &artifact.Param{Name: "c", Type: "*Client"},
		Name:    "Classify",
		Params:  []artifact.Param{{Name: "code", Type: "int"}},
		Results: []artifact.Param{{Name: "name", Type: "string"}, {Name: "ok", Type: "bool"}},
		Body: []artifact.Stmt{
			&artifact.Comment{Text: "status classes"},
			&artifact.If{Cond: "code < 0", Then: []artifact.Stmt{artifact.Ret(`""`, "false")}},
			&artifact.Switch{Tag: "code / 100", Cases: []artifact.Case{
				{Exprs: []string{"2"}, Body: []artifact.Stmt{artifact.Ret(`"success"`, "true")}},
				{Exprs: []string{"4", "5"}, Body: []artifact.Stmt{artifact.Raw(`name = "error"`)}},
				{Body: []artifact.Stmt{&artifact.If{
					Init: "x := code", Cond: "x == 0",
					Then: []artifact.Stmt{artifact.Raw(`name = "zero"`)},
					Else: []artifact.Stmt{artifact.Raw(`name = "other"`)},
				}}},
			}},
			artifact.Ret("name", "false"),
		},
	})

	out, err := New().Print(f)
	require.NoError(t, err)
	want := `package api

// Classify names a status.
func (c *Client) Classify(code int) (name string, ok bool) {
	// status classes
	if code < 0 {
		return "", false
	}
	switch code / 100 {
	case 2:
		return "success", true
	case 4, 5:
		name = "error"
	default:
		if x := code; x == 0 {
			name = "zero"
		} else {
			name = "other"
		}
	}
	return name, false
}
`
	assert.Equal(t, want, string(out))
}

func TestPrint_InvalidSource(t *testing.T) {
	f := &artifact.File{Name: "bad.go", Package: "api"}
	f.Add(&artifact.Func{Name: "Broken", Body: []artifact.Stmt{artifact.Raw("x := := 1")}})

	_, err := New().Print(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goprinter: failed to format bad.go")
}

func TestRender_Empty(t *testing.T) {
	out := Render(&artifact.File{Package: "api"})
	assert.Equal(t, "package api\n\n", string(out))
}

func TestPrint_ConstAndFor(t *testing.T) {
	f := &artifact.File{Name: "client.go", Package: "api"}
	f.Add(
		&artifact.Var{Doc: "DefaultUserAgent is sent by default.", Const: true, Name: "DefaultUserAgent", Value: `"hsrgen"`},
		&artifact.Var{Name: "_", Type: "error", Value: "nil"},
		&artifact.Func{
			Name:    "apply",
			Params:  []artifact.Param{{Name: "opts", Type: "...func() error"}},
			Results: []artifact.Param{{Type: "error"}},
			Body: []artifact.Stmt{
				&artifact.For{Clause: "_, opt := range opts", Body: []artifact.Stmt{
					&artifact.If{Init: "err := opt()", Cond: "err != nil", Then: []artifact.Stmt{artifact.Ret("err")}},
				}},
				artifact.Ret("nil"),
			},
		},
	)

	out, err := New().Print(f)
	require.NoError(t, err)
	src := string(out)
	assert.Contains(t, src, "// DefaultUserAgent is sent by default.\nconst DefaultUserAgent = \"hsrgen\"\n")
	assert.Contains(t, src, "var _ error = nil\n")
	assert.Contains(t, src, "\tfor _, opt := range opts {\n\t\tif err := opt(); err != nil {\n\t\t\treturn err\n\t\t}\n\t}\n")
}

func TestPrint_ReturnFunc(t *testing.T) {
	f := &artifact.File{Name: "client.go", Package: "api"}
	f.Add(&artifact.Func{
		Name:    "WithUserAgent",
		Params:  []artifact.Param{{Name: "ua", Type: "string"}},
		Results: []artifact.Param{{Type: "func(*string) error"}},
		Body: []artifact.Stmt{&artifact.ReturnFunc{
			Params:  []artifact.Param{{Name: "dst", Type: "*string"}},
			Results: []artifact.Param{{Type: "error"}},
			Body:    []artifact.Stmt{artifact.Raw("*dst = ua"), artifact.Ret("nil")},
		}},
	})

	out, err := New().Print(f)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\treturn func(dst *string) error {\n\t\t*dst = ua\n\t\treturn nil\n\t}\n")
}
