// Package config loads hsrgen project configuration from an hsrgen.toml file
// with HSRGEN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/pelletier/go-toml/v2"

	"github.com/erraggy/hsrgen/generator"
	"github.com/erraggy/hsrgen/oaserrors"
	"github.com/erraggy/hsrgen/parser"
)

const (
	// DefaultFile is the project configuration file looked up in the working
	// directory.
	DefaultFile = "hsrgen.toml"

	// Unlimited disables the input size limit when used as max_input_size.
	Unlimited = "unlimited"

	EnvConfig       = "HSRGEN_CONFIG"
	EnvInput        = "HSRGEN_INPUT"
	EnvOutput       = "HSRGEN_OUTPUT"
	EnvMaxInputSize = "HSRGEN_MAX_INPUT_SIZE"
	EnvPackage      = "HSRGEN_PACKAGE"
	EnvTypes        = "HSRGEN_TYPES"
	EnvClient       = "HSRGEN_CLIENT"
	EnvServer       = "HSRGEN_SERVER"
	EnvRuntime      = "HSRGEN_RUNTIME"
	EnvUserAgent    = "HSRGEN_USER_AGENT"
	EnvLogLevel     = "HSRGEN_LOG_LEVEL"
)

// Config is the root project configuration.
type Config struct {
	// Input is the contract document to compile.
	Input string `toml:"input"`
	// Output is the directory generated files are written to.
	// Default: "."
	Output string `toml:"output"`
	// MaxInputSize is a human size such as "10MB", or "unlimited".
	// Default: the parser limit
	MaxInputSize string         `toml:"max_input_size"`
	Generate     GenerateConfig `toml:"generate"`
	Log          LogConfig      `toml:"log"`

	maxInputSizeVal int64
}

// GenerateConfig selects what is generated.
type GenerateConfig struct {
	// Package is the Go package name. Default: "api"
	Package string `toml:"package"`
	// Types, Client and Server default to true when unset.
	Types  *bool `toml:"types"`
	Client *bool `toml:"client"`
	Server *bool `toml:"server"`
	// Runtime is the import path of the hsr runtime package.
	Runtime   string `toml:"runtime"`
	UserAgent string `toml:"user_agent"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn or error. Default: "info"
	Level string `toml:"level"`
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "read config", Cause: err}
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "parse config", Cause: err}
	}
	return &cfg, nil
}

// Discover loads the file named by HSRGEN_CONFIG, or DefaultFile in the
// working directory. A missing DefaultFile yields an empty configuration;
// a missing HSRGEN_CONFIG file is an error.
func Discover() (*Config, string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, "", nil
	}
	if err != nil {
		return nil, DefaultFile, err
	}
	return cfg, DefaultFile, nil
}

// Finalize applies defaults, loads environment overrides, and validates the
// configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// FinalizeWith is Finalize with command-line overrides applied after the
// environment, so precedence runs defaults < file < env < overlay.
func (c *Config) FinalizeWith(overlay *Config) error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	if overlay != nil {
		c.Merge(overlay)
	}
	return c.validate()
}

// Merge applies values from overlay that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Input != "" {
		c.Input = overlay.Input
	}
	if overlay.Output != "" {
		c.Output = overlay.Output
	}
	if overlay.MaxInputSize != "" {
		c.MaxInputSize = overlay.MaxInputSize
	}
	c.Generate.Merge(&overlay.Generate)
	if overlay.Log.Level != "" {
		c.Log.Level = overlay.Log.Level
	}
}

// Merge applies values from overlay that differ from zero values.
func (g *GenerateConfig) Merge(overlay *GenerateConfig) {
	if overlay.Package != "" {
		g.Package = overlay.Package
	}
	if overlay.Types != nil {
		g.Types = overlay.Types
	}
	if overlay.Client != nil {
		g.Client = overlay.Client
	}
	if overlay.Server != nil {
		g.Server = overlay.Server
	}
	if overlay.Runtime != "" {
		g.Runtime = overlay.Runtime
	}
	if overlay.UserAgent != "" {
		g.UserAgent = overlay.UserAgent
	}
}

func (c *Config) loadDefaults() {
	if c.Output == "" {
		c.Output = "."
	}
	if c.Generate.Package == "" {
		c.Generate.Package = "api"
	}
	if c.Generate.Runtime == "" {
		c.Generate.Runtime = generator.DefaultRuntimeImport
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) loadEnv() error {
	strs := []struct {
		env string
		dst *string
	}{
		{EnvInput, &c.Input},
		{EnvOutput, &c.Output},
		{EnvMaxInputSize, &c.MaxInputSize},
		{EnvPackage, &c.Generate.Package},
		{EnvRuntime, &c.Generate.Runtime},
		{EnvUserAgent, &c.Generate.UserAgent},
		{EnvLogLevel, &c.Log.Level},
	}
	for _, s := range strs {
		if v := os.Getenv(s.env); v != "" {
			*s.dst = v
		}
	}

	bools := []struct {
		env string
		dst **bool
	}{
		{EnvTypes, &c.Generate.Types},
		{EnvClient, &c.Generate.Client},
		{EnvServer, &c.Generate.Server},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		on, err := strconv.ParseBool(v)
		if err != nil {
			return &oaserrors.ConfigError{Option: b.env, Value: v, Message: "invalid boolean", Cause: err}
		}
		*b.dst = &on
	}
	return nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.MaxInputSize) {
	case "":
		c.maxInputSizeVal = 0
	case Unlimited:
		c.maxInputSizeVal = -1
	default:
		size, err := units.FromHumanSize(c.MaxInputSize)
		if err != nil {
			return &oaserrors.ConfigError{Option: "max_input_size", Value: c.MaxInputSize, Message: "invalid size", Cause: err}
		}
		if size <= 0 {
			return &oaserrors.ConfigError{Option: "max_input_size", Value: c.MaxInputSize, Message: "must be positive"}
		}
		c.maxInputSizeVal = size
	}
	if _, err := c.slogLevel(); err != nil {
		return err
	}
	return nil
}

// MaxInputSizeBytes returns the parsed input limit: 0 for the parser
// default, -1 for unlimited.
func (c *Config) MaxInputSizeBytes() int64 {
	return c.maxInputSizeVal
}

// Level returns the slog level named by Log.Level.
func (c *Config) Level() slog.Level {
	l, _ := c.slogLevel()
	return l
}

func (c *Config) slogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, &oaserrors.ConfigError{Option: "log.level", Value: c.Log.Level, Message: "unknown level", Cause: err}
	}
	return l, nil
}

func enabled(b *bool) bool { return b == nil || *b }

// GeneratorOptions returns the generator options described by c.
func (c *Config) GeneratorOptions(logger parser.Logger) []generator.Option {
	opts := []generator.Option{
		generator.WithPackageName(c.Generate.Package),
		generator.WithTypes(enabled(c.Generate.Types)),
		generator.WithClient(enabled(c.Generate.Client)),
		generator.WithServer(enabled(c.Generate.Server)),
		generator.WithRuntimeImport(c.Generate.Runtime),
		generator.WithMaxInputSize(c.maxInputSizeVal),
		generator.WithLogger(logger),
	}
	if c.Generate.UserAgent != "" {
		opts = append(opts, generator.WithUserAgent(c.Generate.UserAgent))
	}
	return opts
}

// HumanSize formats a byte count for display.
func HumanSize(n int64) string {
	return units.HumanSize(float64(n))
}

// String describes the effective configuration on one line.
func (c *Config) String() string {
	limit := "default"
	switch {
	case c.maxInputSizeVal < 0:
		limit = Unlimited
	case c.maxInputSizeVal > 0:
		limit = HumanSize(c.maxInputSizeVal)
	}
	return fmt.Sprintf("input=%s output=%s package=%s types=%t client=%t server=%t max_input_size=%s",
		c.Input, c.Output, c.Generate.Package,
		enabled(c.Generate.Types), enabled(c.Generate.Client), enabled(c.Generate.Server), limit)
}
