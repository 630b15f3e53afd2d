package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/zeusync/gmruntime/internal/core/observability/log"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GMRUNTIME_"

// Config locates the game data and tunes the loader.
type Config struct {
	DataDir           string `json:"data_dir" yaml:"data_dir" toml:"data_dir" env:"DATA_DIR"`
	PackFile          string `json:"pack_file" yaml:"pack_file" toml:"pack_file" env:"PACK_FILE"`
	OverridesDir      string `json:"overrides_dir" yaml:"overrides_dir" toml:"overrides_dir" env:"OVERRIDES_DIR"`
	LogLevel          string `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	DumpFunctions     bool   `json:"dump_functions" yaml:"dump_functions" toml:"dump_functions" env:"DUMP_FUNCTIONS"`
	DumpFunctionsPath string `json:"dump_functions_path" yaml:"dump_functions_path" toml:"dump_functions_path" env:"DUMP_FUNCTIONS_PATH"`
	BuiltinsFile      string `json:"builtins_file" yaml:"builtins_file" toml:"builtins_file" env:"BUILTINS_FILE"`
}

func Default() *Config {
	return &Config{
		DataDir:           ".",
		PackFile:          "game.pack",
		OverridesDir:      "replacement_scripts",
		LogLevel:          "info",
		DumpFunctionsPath: "used_functions.txt",
	}
}

// LoadYAML decodes r over the defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return c, nil
}

// LoadTOML decodes r over the defaults.
func LoadTOML(r io.Reader) (*Config, error) {
	c := Default()
	if _, err := toml.NewDecoder(r).Decode(c); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return c, nil
}

// LoadJSON decodes r over the defaults.
func LoadJSON(r io.Reader) (*Config, error) {
	c := Default()
	if err := json.NewDecoder(r).Decode(c); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return c, nil
}

// LoadFile picks the decoder from the file extension.
func LoadFile(path string) (*Config, error) {
	var load func(io.Reader) (*Config, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		load = LoadYAML
	case ".toml":
		load = LoadTOML
	case ".json":
		load = LoadJSON
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return load(f)
}

// ApplyEnv overrides c with any GMRUNTIME_ variables that are set.
func ApplyEnv(c *Config) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve builds the effective configuration: defaults, then the file at
// path if one is given, then the environment.
func Resolve(path string) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.PackFile == "" {
		return fmt.Errorf("%w: pack_file is empty", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.DumpFunctions && c.DumpFunctionsPath == "" {
		return fmt.Errorf("%w: dump_functions needs dump_functions_path", ErrInvalidConfig)
	}
	return nil
}

// Level is the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

func (c *Config) PackPath() string {
	return c.resolve(c.PackFile)
}

func (c *Config) OverridePath() string {
	return c.resolve(c.OverridesDir)
}

func (c *Config) DumpPath() string {
	if !c.DumpFunctions {
		return ""
	}
	return c.resolve(c.DumpFunctionsPath)
}

// BuiltinsPath is the file listing natively implemented functions, or
// empty when none is configured.
func (c *Config) BuiltinsPath() string {
	if c.BuiltinsFile == "" {
		return ""
	}
	return c.resolve(c.BuiltinsFile)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}
