package generator

import (
	"github.com/erraggy/hsrgen/internal/goprinter"
	"github.com/erraggy/hsrgen/oaserrors"
	"github.com/erraggy/hsrgen/parser"
)

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

type generateConfig struct {
	packageName    string
	generateClient bool
	generateServer bool
	generateTypes  bool
	runtimeImport  string
	userAgent      string
	maxInputSize   int64
	logger         parser.Logger
	printer        goprinter.Printer
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		packageName:    "api",
		generateClient: true,
		generateServer: true,
		generateTypes:  true,
		runtimeImport:  DefaultRuntimeImport,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithPackageName specifies the Go package name for generated code
// Default: "api"
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if !isPackageName(name) {
			return &oaserrors.ConfigError{Option: "package", Value: name, Message: "not a valid Go package name"}
		}
		cfg.packageName = name
		return nil
	}
}

// WithClient enables or disables client generation
// Default: true
func WithClient(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateClient = enabled
		return nil
	}
}

// WithServer enables or disables service contract and server generation
// Default: true
func WithServer(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateServer = enabled
		return nil
	}
}

// WithTypes enables or disables type generation
// Note: Types are always generated when client or server is enabled
// Default: true
func WithTypes(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.generateTypes = enabled
		return nil
	}
}

// WithRuntimeImport sets the import path of the hsr runtime package
// Default: DefaultRuntimeImport
func WithRuntimeImport(path string) Option {
	return func(cfg *generateConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "runtime", Message: "runtime import path cannot be empty"}
		}
		cfg.runtimeImport = path
		return nil
	}
}

// WithUserAgent sets the default User-Agent of the generated client
func WithUserAgent(ua string) Option {
	return func(cfg *generateConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithMaxInputSize sets the maximum input size in bytes.
// Zero uses the parser default; a negative value disables the limit
func WithMaxInputSize(n int64) Option {
	return func(cfg *generateConfig) error {
		cfg.maxInputSize = n
		return nil
	}
}

// WithLogger sets a structured logger for debug output
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithPrinter replaces the printer that renders emitted files
func WithPrinter(p goprinter.Printer) Option {
	return func(cfg *generateConfig) error {
		if p == nil {
			return &oaserrors.ConfigError{Option: "printer", Message: "printer cannot be nil"}
		}
		cfg.printer = p
		return nil
	}
}
