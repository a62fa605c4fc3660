package generator

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/erraggy/hsrgen/internal/goprinter"
	"github.com/erraggy/hsrgen/oaserrors"
	"github.com/erraggy/hsrgen/parser"
)

// DefaultRuntimeImport is the import path of the runtime support package the
// generated code depends on.
const DefaultRuntimeImport = "github.com/erraggy/hsrgen/hsr"

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "types.go", "client.go")
	Name string
	// Content is the generated Go source code
	Content []byte
}

// GenerateResult contains the results of generating code from a document
type GenerateResult struct {
	// Files contains all generated files, in a fixed order
	Files []GeneratedFile
	// SourcePath is the path or name of the input document
	SourcePath string
	// PackageName is the Go package name used in generation
	PackageName string
	// Title and Version come from the document's info object
	Title   string
	Version string
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to compile and emit code
	GenerateTime time.Duration
	// GeneratedTypes is the count of named types emitted
	GeneratedTypes int
	// GeneratedOperations is the count of operations emitted
	GeneratedOperations int
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator compiles documents into Go source
type Generator struct {
	// PackageName is the Go package name for generated code.
	// If empty, defaults to "api"
	PackageName string

	// GenerateClient enables client generation
	GenerateClient bool

	// GenerateServer enables service contract and server adapter generation
	GenerateServer bool

	// GenerateTypes enables schema type generation.
	// Types are always generated when either client or server is enabled
	GenerateTypes bool

	// RuntimeImport is the import path of the hsr runtime package.
	// If empty, defaults to DefaultRuntimeImport
	RuntimeImport string

	// UserAgent is the default User-Agent of the generated client.
	// If empty, one is derived from the document title
	UserAgent string

	// MaxInputSize limits the size of the input document.
	// Zero uses parser.DefaultMaxInputSize; negative disables the limit
	MaxInputSize int64

	// Logger receives debug output from every compilation stage
	Logger parser.Logger

	// Printer renders the emitted files. If nil, goprinter.New() is used
	Printer goprinter.Printer
}

// New creates a new Generator that emits types, server and client
func New() *Generator {
	return &Generator{
		PackageName:    "api",
		GenerateClient: true,
		GenerateServer: true,
		GenerateTypes:  true,
		RuntimeImport:  DefaultRuntimeImport,
	}
}

func (g *Generator) parser() *parser.Parser {
	return &parser.Parser{Logger: g.Logger, MaxInputSize: g.MaxInputSize}
}

// Generate compiles the document at path.
func (g *Generator) Generate(path string) (*GenerateResult, error) {
	parsed, err := g.parser().Parse(path)
	if err != nil {
		return nil, err
	}
	return g.GenerateParsed(*parsed)
}

// GenerateReader compiles the document read from r.
func (g *Generator) GenerateReader(r io.Reader) (*GenerateResult, error) {
	parsed, err := g.parser().ParseReader(r)
	if err != nil {
		return nil, err
	}
	return g.GenerateParsed(*parsed)
}

// GenerateParsed compiles an already parsed document. Compilation fails on
// the first error and never returns partial output.
func (g *Generator) GenerateParsed(parsed parser.ParseResult) (*GenerateResult, error) {
	if parsed.Document == nil {
		return nil, &oaserrors.CodegenError{Message: "no document to generate from"}
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	log := parser.OrNop(g.Logger)

	m, err := compile(parsed.Document, g.Logger)
	if err != nil {
		return nil, err
	}

	e := &emitter{
		gen:     g,
		model:   m,
		source:  filepath.Base(parsed.SourcePath),
		runtime: g.runtimeImport(),
	}
	files, err := e.emit()
	if err != nil {
		return nil, err
	}

	printer := g.Printer
	if printer == nil {
		printer = goprinter.New()
	}
	result := &GenerateResult{
		SourcePath:  parsed.SourcePath,
		PackageName: g.packageName(),
		Title:       m.set.Title,
		Version:     m.set.Version,
		SourceSize:  parsed.SourceSize,
		LoadTime:    parsed.LoadTime,
	}
	for _, f := range files {
		content, err := printer.Print(f)
		if err != nil {
			return nil, &oaserrors.CodegenError{Artifact: f.Name, Message: "failed to print generated code", Cause: err}
		}
		result.Files = append(result.Files, GeneratedFile{Name: f.Name, Content: content})
		log.Debug("generated file", "name", f.Name, "bytes", len(content))
	}
	if g.typesEnabled() {
		result.GeneratedTypes = m.set.Table.Len()
	}
	if g.GenerateClient || g.GenerateServer {
		result.GeneratedOperations = len(m.set.Routes)
	}
	result.GenerateTime = time.Since(start)
	return result, nil
}

func (g *Generator) validate() error {
	if !g.GenerateClient && !g.GenerateServer && !g.GenerateTypes {
		return &oaserrors.ConfigError{Message: "nothing to generate: enable types, client or server"}
	}
	if name := g.packageName(); !isPackageName(name) {
		return &oaserrors.ConfigError{Option: "package", Value: name, Message: "not a valid Go package name"}
	}
	return nil
}

func (g *Generator) packageName() string {
	if g.PackageName == "" {
		return "api"
	}
	return g.PackageName
}

func (g *Generator) runtimeImport() string {
	if g.RuntimeImport == "" {
		return DefaultRuntimeImport
	}
	return g.RuntimeImport
}

func (g *Generator) typesEnabled() bool {
	return g.GenerateTypes || g.GenerateClient || g.GenerateServer
}

// Generate compiles the document at path using functional options.
//
//	result, err := generator.Generate("openapi.yaml",
//	    generator.WithPackageName("petstore"),
//	    generator.WithServer(false),
//	)
func Generate(path string, opts ...Option) (*GenerateResult, error) {
	g, err := newFromOptions(opts...)
	if err != nil {
		return nil, err
	}
	return g.Generate(path)
}

// GenerateReader compiles the document read from r using functional options.
func GenerateReader(r io.Reader, opts ...Option) (*GenerateResult, error) {
	if r == nil {
		return nil, &oaserrors.ConfigError{Option: "reader", Message: "reader cannot be nil"}
	}
	g, err := newFromOptions(opts...)
	if err != nil {
		return nil, err
	}
	return g.GenerateReader(r)
}

// GenerateParsed compiles an already parsed document using functional options.
func GenerateParsed(parsed parser.ParseResult, opts ...Option) (*GenerateResult, error) {
	g, err := newFromOptions(opts...)
	if err != nil {
		return nil, err
	}
	return g.GenerateParsed(parsed)
}

func newFromOptions(opts ...Option) (*Generator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}
	return &Generator{
		PackageName:    cfg.packageName,
		GenerateClient: cfg.generateClient,
		GenerateServer: cfg.generateServer,
		GenerateTypes:  cfg.generateTypes,
		RuntimeImport:  cfg.runtimeImport,
		UserAgent:      cfg.userAgent,
		MaxInputSize:   cfg.maxInputSize,
		Logger:         cfg.logger,
		Printer:        cfg.printer,
	}, nil
}
