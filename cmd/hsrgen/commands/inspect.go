package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/erraggy/hsrgen/generator"
	"github.com/erraggy/hsrgen/internal/cliutil"
	"github.com/erraggy/hsrgen/internal/config"
	"github.com/erraggy/hsrgen/parser"
)

// InspectFlags contains flags for the inspect command
type InspectFlags struct {
	Config       string
	Format       string
	MaxInputSize string
	Verbose      bool
}

// SetupInspectFlags creates and configures a FlagSet for the inspect command.
func SetupInspectFlags() (*flag.FlagSet, *InspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags := &InspectFlags{}

	fs.StringVar(&flags.Config, "config", "", "configuration file (default: hsrgen.toml if present)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.MaxInputSize, "max-input-size", "", "largest accepted contract, e.g. 10MB or unlimited")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: hsrgen inspect [flags] [<file>|-]\n\n")
		cliutil.Writef(fs.Output(), "Compile a contract and summarize its named types, routes and error unions.\n")
		cliutil.Writef(fs.Output(), "Nothing is written; contract errors are reported exactly as generate would.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  hsrgen inspect petstore.yaml\n")
		cliutil.Writef(fs.Output(), "  hsrgen inspect -f json petstore.yaml | jq '.operations[].errors'\n")
	}
	return fs, flags
}

// HandleInspect executes the inspect command
func HandleInspect(args []string) error {
	fs, flags := SetupInspectFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("inspect command accepts at most one file path or '-' for stdin")
	}

	overlay := &config.Config{MaxInputSize: flags.MaxInputSize}
	if fs.NArg() == 1 {
		overlay.Input = fs.Arg(0)
	}
	cfg, err := loadConfig(flags.Config, overlay)
	if err != nil {
		return err
	}
	if cfg.Input == "" {
		fs.Usage()
		return fmt.Errorf("no contract given: pass a file path or set input in %s", config.DefaultFile)
	}
	return runInspect(os.Stdout, cfg, flags.Format, newLogger(cfg, flags.Verbose))
}

func runInspect(w io.Writer, cfg *config.Config, format string, logger parser.Logger) error {
	p := &parser.Parser{Logger: logger, MaxInputSize: cfg.MaxInputSizeBytes()}
	var parsed *parser.ParseResult
	var err error
	if cfg.Input == StdinFilePath {
		parsed, err = p.ParseReader(os.Stdin)
	} else {
		parsed, err = p.Parse(cfg.Input)
	}
	if err != nil {
		return fmt.Errorf("parsing contract: %w", err)
	}

	g := generator.New()
	g.Logger = logger
	summary, err := g.InspectParsed(*parsed)
	if err != nil {
		return fmt.Errorf("compiling contract: %w", err)
	}

	if format != FormatText {
		return RenderDetail(w, summary, format)
	}

	OutputSpecHeader(w, cfg.Input, summary.Title, summary.Version)
	cliutil.Writef(w, "Source Size: %s\n", config.HumanSize(parsed.SourceSize))
	cliutil.Writef(w, "Load Time: %v\n\n", parsed.LoadTime)

	cliutil.Writef(w, "Types (%d):\n", len(summary.Types))
	rows := make([][]string, 0, len(summary.Types))
	for _, t := range summary.Types {
		rows = append(rows, []string{t.Name, t.GoName, t.Type})
	}
	RenderSummaryTable(w, []string{"NAME", "GO NAME", "TYPE"}, rows)

	cliutil.Writef(w, "\nOperations (%d):\n", len(summary.Operations))
	rows = make([][]string, 0, len(summary.Operations))
	for _, op := range summary.Operations {
		success := strconv.Itoa(op.SuccessStatus)
		if op.SuccessType != "" {
			success += " " + op.SuccessType
		}
		rows = append(rows, []string{op.Method, op.Path, op.GoName, success, strings.Join(op.Errors, " | ")})
	}
	RenderSummaryTable(w, []string{"METHOD", "PATH", "OPERATION", "SUCCESS", "ERRORS"}, rows)
	return nil
}
