package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, EmitNone, cfg.Emit)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "*.impp", cfg.Test.Pattern)
	assert.Equal(t, "tests", cfg.Test.Dir)
	assert.GreaterOrEqual(t, cfg.Test.Jobs, 1)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
emit: typed-ast
format: json
warnings:
  as_errors: true
test:
  jobs: 3
`))
	require.NoError(t, err)
	assert.Equal(t, EmitTypedAST, cfg.Emit)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.Warnings.AsErrors)
	assert.False(t, cfg.Warnings.Disabled)
	assert.Equal(t, 3, cfg.Test.Jobs)

	// unset keys keep their defaults
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "*.impp", cfg.Test.Pattern)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"unknown_key", "emitt: ast\n", "field emitt not found"},
		{"unknown_nested_key", "warnings:\n  fatal: true\n", "field fatal not found"},
		{"bad_emit", "emit: llvm\n", `emit: unsupported value "llvm"`},
		{"bad_format", "format: xml\n", `format: unsupported value "xml"`},
		{"bad_color", "color: sometimes\n", `color: unsupported value "sometimes"`},
		{"bad_jobs", "test:\n  jobs: 0\n", "test.jobs must be at least 1, got 0"},
		{"empty_pattern", "test:\n  pattern: \"\"\n", "test.pattern must not be empty"},
		{"wrong_type", "warnings:\n  as_errors: maybe\n", "cannot unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestLoadAndFind(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("color: never\n"), 0o644))
	cfg, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, ColorNever, cfg.Color)

	require.NoError(t, os.WriteFile(path, []byte("color: [\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "loading "+path)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading ")
}

func TestUseColor(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.UseColor(true))
	assert.False(t, cfg.UseColor(false))

	cfg.Color = ColorAlways
	assert.True(t, cfg.UseColor(false))

	cfg.Color = ColorNever
	assert.False(t, cfg.UseColor(true))
}
