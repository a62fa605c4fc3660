// Package commands provides CLI command handlers for hsrgen.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/hsrgen"
	"github.com/erraggy/hsrgen/internal/cliutil"
	"github.com/erraggy/hsrgen/internal/config"
	"github.com/erraggy/hsrgen/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = cliutil.StdinFilePath

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// RenderDetail renders a value as JSON or YAML.
func RenderDetail(w io.Writer, node any, format string) error {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(node, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(node)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}

	if _, err := fmt.Fprintln(w, strings.TrimRight(string(data), "\n")); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// RenderSummaryTable renders a fixed-width table with headers.
func RenderSummaryTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				cliutil.Writef(w, "  ")
			}
			if i == len(cells)-1 {
				cliutil.Writef(w, "%s", cell)
			} else {
				cliutil.Writef(w, "%-*s", widths[i], cell)
			}
		}
		cliutil.Writef(w, "\n")
	}
	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
}

// OutputSpecHeader writes the common contract header.
func OutputSpecHeader(w io.Writer, specPath, title, version string) {
	cliutil.Writef(w, "hsrgen version: %s\n", hsrgen.Version())
	cliutil.Writef(w, "Contract: %s\n", cliutil.DisplayPath(specPath))
	cliutil.Writef(w, "Title: %s\n", title)
	cliutil.Writef(w, "API Version: %s\n", version)
}

// loadConfig reads the project configuration from path, or discovers it when
// path is empty, and applies overlay on top of the environment.
func loadConfig(path string, overlay *config.Config) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, _, err = config.Discover()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.FinalizeWith(overlay); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a text logger on stderr at the configured level, or at
// debug level when verbose is set.
func newLogger(cfg *config.Config, verbose bool) parser.Logger {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return parser.NewSlogAdapter(slog.New(handler))
}
