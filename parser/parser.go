package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/hsrgen/oaserrors"
)

// DefaultMaxInputSize is the input size limit used when none is configured.
const DefaultMaxInputSize int64 = 10 * 1024 * 1024

// Parser loads OpenAPI 3 documents.
type Parser struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
	// MaxInputSize is the maximum input size in bytes.
	// Zero means DefaultMaxInputSize; a negative value disables the limit.
	MaxInputSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{}
}

func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

func (p *Parser) maxInputSize() int64 {
	if p.MaxInputSize == 0 {
		return DefaultMaxInputSize
	}
	return p.MaxInputSize
}

// ParseResult contains the parsed document and metadata about its source.
// Callers should treat it as read-only.
type ParseResult struct {
	// SourcePath is the file path the document was read from, or a
	// placeholder name for reader and byte input.
	SourcePath string
	// Document is the parsed document.
	Document *Document
	// SourceSize is the size of the input in bytes.
	SourceSize int64
	// LoadTime is the time spent reading the input.
	LoadTime time.Duration
}

// Parse reads and parses the document at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return nil, &oaserrors.ReadError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	data, err := p.readAll(f, path)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)

	res, err := p.parse(data, path)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader parses a document from r.
// SourcePath is set to "ParseReader.yaml".
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	const source = "ParseReader.yaml"
	start := time.Now()
	data, err := p.readAll(r, source)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)

	res, err := p.parse(data, source)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses a document from data.
// SourcePath is set to "ParseBytes.yaml".
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	const source = "ParseBytes.yaml"
	if err := p.checkSize(int64(len(data)), source); err != nil {
		return nil, err
	}
	return p.parse(data, source)
}

func (p *Parser) readAll(r io.Reader, source string) ([]byte, error) {
	limit := p.maxInputSize()
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &oaserrors.ReadError{Path: source, Cause: err}
	}
	if err := p.checkSize(int64(len(data)), source); err != nil {
		return nil, err
	}
	return data, nil
}

func (p *Parser) checkSize(size int64, source string) error {
	limit := p.maxInputSize()
	if limit > 0 && size > limit {
		return &oaserrors.ResourceLimitError{
			ResourceType: "input_size",
			Limit:        limit,
			Message:      fmt.Sprintf("%s is too large", source),
		}
	}
	return nil
}

// parse decodes data as YAML. JSON input is a subset of YAML and takes the
// same path.
func (p *Parser) parse(data []byte, source string) (*ParseResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "empty document"}
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "invalid YAML or JSON", Cause: err}
	}
	d := &decoder{source: source, log: p.log()}
	doc, err := d.document(&root)
	if err != nil {
		return nil, err
	}
	p.log().Debug("parsed document",
		"source", source,
		"openapi", doc.OpenAPI,
		"paths", len(doc.Paths),
		"schemas", len(doc.Components.Schemas),
	)
	return &ParseResult{
		SourcePath: source,
		Document:   doc,
		SourceSize: int64(len(data)),
	}, nil
}
