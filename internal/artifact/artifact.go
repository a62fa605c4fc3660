// Package artifact is a small syntax tree for the Go files hsrgen emits.
//
// Emitters build these nodes and a printer renders them. Type and expression
// positions hold Go source text; the tree models declarations and control
// flow, which is what the emitters reason about.
package artifact

// File is one generated source file.
type File struct {
	Name    string
	Package string
	// Header lines are printed as line comments above the package clause.
	Header  []string
	Imports []Import
	Decls   []Decl
}

// Import is a single import spec. Name is empty for the default name.
type Import struct {
	Name string
	Path string
}

// AddImport adds path to the import list if it is not already present.
func (f *File) AddImport(path string) {
	for _, imp := range f.Imports {
		if imp.Path == path {
			return
		}
	}
	f.Imports = append(f.Imports, Import{Path: path})
}

// Add appends declarations to the file.
func (f *File) Add(decls ...Decl) {
	f.Decls = append(f.Decls, decls...)
}

// Decl is a top-level declaration.
type Decl interface {
	declNode()
}

// Struct declares a named struct type.
type Struct struct {
	Doc    string
	Name   string
	Fields []Field
}

// Field is a struct field. An empty Name declares an embedded field.
type Field struct {
	Doc  string
	Name string
	Type string
	Tag  string
}

// Alias declares `type Name = Type`.
type Alias struct {
	Doc  string
	Name string
	Type string
}

// TypeDef declares a defined type, `type Name Type`.
type TypeDef struct {
	Doc  string
	Name string
	Type string
}

// Interface declares a named interface type.
type Interface struct {
	Doc     string
	Name    string
	Embeds  []string
	Methods []Method
}

// Method is an interface method.
type Method struct {
	Doc     string
	Name    string
	Params  []Param
	Results []Param
}

// Param is a parameter or result. Name may be empty.
type Param struct {
	Name string
	Type string
}

// Union declares a sealed interface and its variants. Every variant gets an
// unexported marker method so that only the listed types satisfy the
// interface.
type Union struct {
	Doc      string
	Name     string
	Embeds   []string
	Methods  []Method
	Marker   string
	Variants []Struct
}

// Var declares a package-level variable, or a constant when Const is set.
type Var struct {
	Doc   string
	Const bool
	Name  string
	Type  string
	Value string
}

// Func declares a function, or a method when Recv is set.
type Func struct {
	Doc     string
	Recv    *Param
	Name    string
	Params  []Param
	Results []Param
	Body    []Stmt
}

func (*Struct) declNode()    {}
func (*Alias) declNode()     {}
func (*TypeDef) declNode()   {}
func (*Interface) declNode() {}
func (*Union) declNode()     {}
func (*Var) declNode()       {}
func (*Func) declNode()      {}

// Stmt is a statement inside a function body.
type Stmt interface {
	stmtNode()
}

// Line is a single simple statement, such as an assignment or a call.
type Line struct {
	Text string
}

// Return returns the listed values.
type Return struct {
	Values []string
}

// If is an if statement with an optional init statement and else branch.
type If struct {
	Init string
	Cond string
	Then []Stmt
	Else []Stmt
}

// Switch is an expression or type switch. Tag may be empty.
type Switch struct {
	Tag   string
	Cases []Case
}

// Case is one switch arm. A case with no expressions is the default arm.
type Case struct {
	Exprs []string
	Body  []Stmt
}

// For is a for statement. Clause is everything between "for" and the body,
// for example "_, opt := range opts".
type For struct {
	Clause string
	Body   []Stmt
}

// ReturnFunc returns a function literal.
type ReturnFunc struct {
	Params  []Param
	Results []Param
	Body    []Stmt
}

// Comment is a line comment inside a body.
type Comment struct {
	Text string
}

func (*Line) stmtNode()       {}
func (*Return) stmtNode()     {}
func (*If) stmtNode()         {}
func (*Switch) stmtNode()     {}
func (*For) stmtNode()        {}
func (*ReturnFunc) stmtNode() {}
func (*Comment) stmtNode()    {}

// Raw builds a Line statement.
func Raw(text string) *Line { return &Line{Text: text} }

// Ret builds a Return statement.
func Ret(values ...string) *Return { return &Return{Values: values} }

// IfErr builds the usual `if err != nil { return ... }` check.
func IfErr(values ...string) *If {
	return &If{Cond: "err != nil", Then: []Stmt{Ret(values...)}}
}
