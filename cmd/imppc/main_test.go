package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs imppc with args and returns its exit code and output.
// Color is off unless args turn it back on.
func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	code := exitOK
	old := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = old })

	var stdout, stderr bytes.Buffer
	cmd := newImppcCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color=never"}, args...))
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		code = exitUsage
	}
	return code, stdout.String(), stderr.String()
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const sumSrc = `routine sum(n : integer) : integer is
  var s is 0
  for i in 1..n loop
    s := s + i
  end
  return s
end
`

func TestCompileOK(t *testing.T) {
	path := writeSource(t, t.TempDir(), "sum.impp", sumSrc)

	code, stdout, stderr := execute(t, "compile", path)
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "ok "+path+"\n", stderr)
}

func TestCompileEmitTokens(t *testing.T) {
	path := writeSource(t, t.TempDir(), "x.impp", "var x is 1\n")

	code, stdout, _ := execute(t, "compile", "--emit", "tokens", path)
	require.Equal(t, exitOK, code)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 2+5)
	assert.True(t, strings.HasPrefix(lines[0], "POSITION"))
	assert.Contains(t, lines[3], fmt.Sprintf("%-12s %s", "NAME", `"x"`))
	assert.Contains(t, lines[5], fmt.Sprintf("%-12s %s", "LITERAL", `"1"`))
	assert.Contains(t, lines[6], fmt.Sprintf("%-12s %s", "EOF", `""`))
}

func TestCompileEmitJSON(t *testing.T) {
	path := writeSource(t, t.TempDir(), "x.impp", "var x is 1\n")

	code, stdout, _ := execute(t, "compile", "--emit", "ast", "--format", "json", path)
	require.Equal(t, exitOK, code)

	var tree map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	assert.Equal(t, "File", tree["node"])

	code, stdout, _ = execute(t, "compile", "--emit=tokens", "--format=json", path)
	require.Equal(t, exitOK, code)
	var toks []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &toks))
	assert.Len(t, toks, 5)
}

func TestCompileEmitTypedAST(t *testing.T) {
	path := writeSource(t, t.TempDir(), "x.impp", "var x is 1 + 2 * 3\n")

	code, stdout, _ := execute(t, "compile", "--emit", "typed-ast", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "BasicLit "+path+":1:12 integer 7 : integer = 7\n")
}

func TestCompileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.impp", "var x is 1\nvar x is 2\n")

	code, stdout, stderr := execute(t, "compile", "--emit", "ast", bad)
	assert.Equal(t, exitFailed, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Semantic error")
	assert.Contains(t, stderr, "error: "+bad+":2:5: x redeclared in this block\n")

	code, _, stderr = execute(t, "compile", filepath.Join(dir, "missing.impp"))
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "error: reading ")

	code, _, stderr = execute(t, "compile", "--emit", "llvm", bad)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "must be one of tokens, ast, typed-ast, none")

	code, _, _ = execute(t, "compile")
	assert.Equal(t, exitUsage, code)
}

func TestCompileWarnings(t *testing.T) {
	path := writeSource(t, t.TempDir(), "w.impp", "routine f() is\n  while true loop print 1 end\nend\n")

	code, _, stderr := execute(t, "compile", path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "infinite loop")
	assert.Contains(t, stderr, "ok "+path+" (1 warning(s))")

	code, _, stderr = execute(t, "compile", "--warnings-as-errors", path)
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr, "warnings treated as errors")

	code, _, stderr = execute(t, "compile", "--no-warnings", "--warnings-as-errors", path)
	assert.Equal(t, exitOK, code)
	assert.NotContains(t, stderr, "infinite loop")
}

func TestCompileConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "x.impp", "var x is 1 + 2 * 3\n")
	cfg := writeSource(t, dir, "imppc.yaml", "emit: typed-ast\ncolor: never\n")

	code, stdout, _ := execute(t, "--config", cfg, "compile", path)
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "integer = 7")

	// flags override the file
	code, stdout, _ = execute(t, "--config", cfg, "compile", "--emit", "none", path)
	require.Equal(t, exitOK, code)
	assert.Empty(t, stdout)

	bad := writeSource(t, dir, "bad.yaml", "emit: llvm\n")
	code, _, stderr := execute(t, "--config", bad, "compile", path)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unsupported value "llvm"`)

	code, _, stderr = execute(t, "--color", "sometimes", "compile", path)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `color: unsupported value "sometimes"`)
}

func TestTestCommand(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.impp", sumSrc)
	writeSource(t, dir, "sub/b.impp", "var b : boolean is 2\n")
	writeSource(t, dir, "notes.txt", "not a source")

	code, stdout, stderr := execute(t, "test", "-j", "2", dir)
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stdout, "ok    a.impp\n")
	assert.Contains(t, stdout, "FAIL  "+filepath.Join("sub", "b.impp")+"\n")
	assert.Contains(t, stdout, "1/2 files passed\n")
	assert.Contains(t, stderr, "cannot use 2 as boolean")

	code, stdout, _ = execute(t, "test", "--pattern", "a.*", dir)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "1/1 files passed\n")

	code, _, stderr = execute(t, "test", "--jobs", "0", dir)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "test.jobs must be at least 1")

	code, _, stderr = execute(t, "test", filepath.Join(dir, "nope"))
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "walking")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := execute(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "imppc version dev\n", stdout)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", errorMessage(errors.New("boom")))

	var one *multierror.Error
	one = multierror.Append(one, errors.New("only"))
	assert.Equal(t, "only", errorMessage(one))

	var two *multierror.Error
	two = multierror.Append(two, errors.New("first"), errors.New("second"))
	assert.Equal(t, "2 errors occurred:\n    1) first\n    2) second", errorMessage(&failure{two}))
}

func TestDetailedError(t *testing.T) {
	err := errors.Wrap(errors.New("inner"), "outer")
	msg := detailedError(err)
	assert.True(t, strings.HasPrefix(msg, "outer: inner\n"))
	assert.Contains(t, msg, "CAUSED BY...")
	assert.Contains(t, msg, "TestDetailedError")

	// every wrapper with a stack is listed, not only the root
	err = errors.Wrap(errors.Wrap(errors.New("root"), "middle"), "top")
	msg = detailedError(&failure{err})
	assert.True(t, strings.HasPrefix(msg, "top: middle: root\n"))
	assert.Equal(t, 2, strings.Count(msg, "CAUSED BY..."))
}

func TestFormatLiteral(t *testing.T) {
	assert.Equal(t, `""`, formatLiteral(""))
	assert.Equal(t, `"x"`, formatLiteral("x"))
	assert.Equal(t, `"\n"`, formatLiteral("\n"))
	assert.Equal(t, `"a\"b"`, formatLiteral(`a"b`))
}
