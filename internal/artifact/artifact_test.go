package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAddImport(t *testing.T) {
	f := &File{Package: "api"}
	f.AddImport("context")
	f.AddImport("net/http")
	f.AddImport("context")
	assert.Equal(t, []Import{{Path: "context"}, {Path: "net/http"}}, f.Imports)
}

func TestLookupAndNames(t *testing.T) {
	f := &File{Package: "api"}
	f.Add(
		&Struct{Name: "Pet"},
		&Alias{Name: "Pets", Type: "[]Pet"},
		&Func{Recv: &Param{Name: "e", Type: "*CreatePetE403"}, Name: "StatusCode"},
		&Func{Name: "NewClient"},
	)

	assert.Equal(t, []string{"Pet", "Pets", "CreatePetE403.StatusCode", "NewClient"}, f.Names())

	alias, ok := f.Lookup("Pets").(*Alias)
	require.True(t, ok)
	assert.Equal(t, "[]Pet", alias.Type)
	assert.Nil(t, f.Lookup("Missing"))
}

func TestWalk(t *testing.T) {
	body := []Stmt{
		Raw("q := r.URL.Query()"),
		&If{Cond: "ok", Then: []Stmt{Raw("a()")}, Else: []Stmt{Raw("b()")}},
		&Switch{Tag: "resp.StatusCode", Cases: []Case{
			{Exprs: []string{"200"}, Body: []Stmt{Ret("nil")}},
			{Body: []Stmt{Ret("err")}},
		}},
	}

	var lines, returns int
	Walk(body, func(s Stmt) {
		switch s.(type) {
		case *Line:
			lines++
		case *Return:
			returns++
		}
	})
	assert.Equal(t, 3, lines)
	assert.Equal(t, 2, returns)
}

func TestIfErr(t *testing.T) {
	s := IfErr("nil", "err")
	assert.Equal(t, "err != nil", s.Cond)
	require.Len(t, s.Then, 1)
	assert.Equal(t, []string{"nil", "err"}, s.Then[0].(*Return).Values)
}
