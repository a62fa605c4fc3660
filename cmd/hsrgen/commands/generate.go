package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/hsrgen/generator"
	"github.com/erraggy/hsrgen/internal/cliutil"
	"github.com/erraggy/hsrgen/internal/config"
	"github.com/erraggy/hsrgen/internal/fileutil"
	"github.com/erraggy/hsrgen/parser"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Config       string
	Output       string
	PackageName  string
	Client       bool
	Server       bool
	Types        bool
	Runtime      string
	UserAgent    string
	MaxInputSize string
	Check        bool
	Watch        bool
	Verbose      bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Config, "config", "", "configuration file (default: hsrgen.toml if present)")
	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (default: .)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (default: .)")
	fs.StringVar(&flags.PackageName, "p", "", "Go package name for generated code (default: api)")
	fs.StringVar(&flags.PackageName, "package", "", "Go package name for generated code (default: api)")
	fs.BoolVar(&flags.Client, "client", false, "generate the typed client")
	fs.BoolVar(&flags.Server, "server", false, "generate the service interface and handlers")
	fs.BoolVar(&flags.Types, "types", false, "generate type definitions and error unions")
	fs.StringVar(&flags.Runtime, "runtime", "", "import path of the hsr runtime package")
	fs.StringVar(&flags.UserAgent, "user-agent", "", "default User-Agent of the generated client")
	fs.StringVar(&flags.MaxInputSize, "max-input-size", "", "largest accepted contract, e.g. 10MB or unlimited")
	fs.BoolVar(&flags.Check, "check", false, "fail if generated files are out of date instead of writing them")
	fs.BoolVar(&flags.Watch, "watch", false, "regenerate whenever the contract changes")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: hsrgen generate [flags] [<file>|-]\n\n")
		cliutil.Writef(fs.Output(), "Generate a Go package from an OpenAPI 3 contract.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  hsrgen generate -p petstore -o ./petstore petstore.yaml\n")
		cliutil.Writef(fs.Output(), "  hsrgen generate --client -o ./client openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  hsrgen generate --check\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | hsrgen generate -o ./api -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Without --client, --server or --types everything is generated\n")
		cliutil.Writef(fs.Output(), "  - types.go and errors.go are always written when client or server is enabled\n")
		cliutil.Writef(fs.Output(), "  - The contract defaults to the input setting of hsrgen.toml\n")
		cliutil.Writef(fs.Output(), "  - Files whose content is unchanged are not rewritten\n")
	}

	return fs, flags
}

// overlay converts the flags that were set on the command line into a
// configuration overlay.
func (f *GenerateFlags) overlay(fs *flag.FlagSet) *config.Config {
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	o := &config.Config{
		Output:       f.Output,
		MaxInputSize: f.MaxInputSize,
		Generate: config.GenerateConfig{
			Package:   f.PackageName,
			Runtime:   f.Runtime,
			UserAgent: f.UserAgent,
		},
	}
	if set["client"] || set["server"] || set["types"] {
		client, server, types := f.Client, f.Server, f.Types
		o.Generate.Client = &client
		o.Generate.Server = &server
		o.Generate.Types = &types
	}
	if fs.NArg() == 1 {
		o.Input = fs.Arg(0)
	}
	return o
}

// HandleGenerate executes the generate command
func HandleGenerate(ctx context.Context, args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("generate command accepts at most one file path or '-' for stdin")
	}

	cfg, err := loadConfig(flags.Config, flags.overlay(fs))
	if err != nil {
		return err
	}
	if cfg.Input == "" {
		fs.Usage()
		return fmt.Errorf("no contract given: pass a file path or set input in %s", config.DefaultFile)
	}
	if flags.Watch && (flags.Check || cfg.Input == StdinFilePath) {
		return fmt.Errorf("--watch cannot be combined with --check or stdin input")
	}

	logger := newLogger(cfg, flags.Verbose)
	run := func() error {
		return runGenerate(os.Stdout, cfg, flags.Check, logger)
	}
	if err := run(); err != nil {
		if !flags.Watch {
			return err
		}
		logger.Error("generation failed", "error", err)
	}
	if !flags.Watch {
		return nil
	}
	cliutil.Writef(os.Stderr, "Watching %s for changes (Ctrl+C to stop)\n", cfg.Input)
	return Watch(ctx, cfg.Input, DefaultDebounce, run, logger)
}

func runGenerate(w io.Writer, cfg *config.Config, check bool, logger parser.Logger) error {
	startTime := time.Now()
	opts := cfg.GeneratorOptions(logger)

	var result *generator.GenerateResult
	var err error
	if cfg.Input == StdinFilePath {
		result, err = generator.GenerateReader(os.Stdin, opts...)
	} else {
		result, err = generator.Generate(cfg.Input, opts...)
	}
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	var written []string
	if check {
		err = result.CheckFiles(cfg.Output)
	} else {
		written, err = result.WriteFiles(cfg.Output)
	}
	totalTime := time.Since(startTime)

	OutputSpecHeader(w, cfg.Input, result.Title, result.Version)
	cliutil.Writef(w, "Source Size: %s\n", config.HumanSize(result.SourceSize))
	cliutil.Writef(w, "Package: %s\n", result.PackageName)
	cliutil.Writef(w, "Types: %d\n", result.GeneratedTypes)
	cliutil.Writef(w, "Operations: %d\n", result.GeneratedOperations)
	cliutil.Writef(w, "Total Time: %v\n\n", totalTime)

	if check {
		if errors.Is(err, fileutil.ErrOutOfDate) {
			cliutil.Writef(w, "✗ Generated files in %s are out of date\n", cfg.Output)
			return err
		}
		if err != nil {
			return fmt.Errorf("checking files: %w", err)
		}
		cliutil.Writef(w, "✓ Generated files in %s are up to date\n", cfg.Output)
		return nil
	}
	if err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	changed := make(map[string]bool, len(written))
	for _, name := range written {
		changed[name] = true
	}
	cliutil.Writef(w, "Generated Files (%d):\n", len(result.Files))
	for _, file := range result.Files {
		state := "unchanged"
		if changed[file.Name] {
			state = "written"
		}
		cliutil.Writef(w, "  - %s/%s (%s, %s)\n", cfg.Output, file.Name, config.HumanSize(int64(len(file.Content))), state)
	}
	cliutil.Writef(w, "\n✓ Generation successful (%d written, %d unchanged)\n", len(written), len(result.Files)-len(written))
	return nil
}
