// Package config loads the imppc configuration file.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "imppc.yaml"

// Emit values.
const (
	EmitNone     = "none"
	EmitTokens   = "tokens"
	EmitAST      = "ast"
	EmitTypedAST = "typed-ast"
)

// Format values.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Color values.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the contents of an imppc.yaml file.
type Config struct {
	// Emit selects the dump written by "imppc compile".
	Emit string `yaml:"emit"`
	// Format is the dump format.
	Format string `yaml:"format"`
	// Color controls colored output.
	Color string `yaml:"color"`

	Warnings Warnings `yaml:"warnings"`
	Test     Test     `yaml:"test"`
}

// Warnings controls how analyzer warnings are treated.
type Warnings struct {
	AsErrors bool `yaml:"as_errors"`
	Disabled bool `yaml:"disabled"`
}

// Test configures "imppc test".
type Test struct {
	Dir     string `yaml:"dir"`
	Jobs    int    `yaml:"jobs"`
	Pattern string `yaml:"pattern"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Emit:   EmitNone,
		Format: FormatText,
		Color:  ColorAuto,
		Test: Test{
			Dir:     "tests",
			Jobs:    runtime.GOMAXPROCS(0),
			Pattern: "*.impp",
		},
	}
}

// Load reads the configuration file at path. Keys missing from the file
// keep their default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// Parse decodes a configuration from YAML.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find loads FileName from dir if it exists, and returns the defaults
// otherwise.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks that every field holds a supported value.
func (c *Config) Validate() error {
	if err := oneOf("emit", c.Emit, EmitNone, EmitTokens, EmitAST, EmitTypedAST); err != nil {
		return err
	}
	if err := oneOf("format", c.Format, FormatText, FormatJSON); err != nil {
		return err
	}
	if err := oneOf("color", c.Color, ColorAuto, ColorAlways, ColorNever); err != nil {
		return err
	}
	if c.Test.Jobs < 1 {
		return errors.Errorf("test.jobs must be at least 1, got %d", c.Test.Jobs)
	}
	if c.Test.Pattern == "" {
		return errors.New("test.pattern must not be empty")
	}
	return nil
}

// UseColor reports whether output should be colored, given whether the
// output is a terminal.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return terminal
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return errors.Errorf("%s: unsupported value %q (want one of %v)", key, value, allowed)
}
