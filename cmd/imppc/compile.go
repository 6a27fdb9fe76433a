package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/you-not-fish/impp/internal/compiler"
	"github.com/you-not-fish/impp/internal/config"
	"github.com/you-not-fish/impp/internal/syntax"
)

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }
func (e *enumValue) Type() string   { return "string" }

func (e *enumValue) Set(s string) error {
	for _, a := range e.allowed {
		if s == a {
			e.value = s
			return nil
		}
	}
	return errors.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func newCompileCmd(g *globals) *cobra.Command {
	emit := newEnumValue(config.EmitNone,
		config.EmitTokens, config.EmitAST, config.EmitTypedAST, config.EmitNone)
	format := newEnumValue(config.FormatText, config.FormatText, config.FormatJSON)
	var warningsAsErrors, noWarnings bool

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Check a source file and optionally dump its intermediate forms",
		Long: "Check a source file and optionally dump its intermediate forms\n" +
			"\n" +
			"The file is lexed, parsed and analyzed. Diagnostics are written to stderr;\n" +
			"the dump selected by --emit is written to stdout.",
		Args: cobra.ExactArgs(1),
		Run: runFunc(g, func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("emit") {
				cfg.Emit = emit.String()
			}
			if flags.Changed("format") {
				cfg.Format = format.String()
			}
			if flags.Changed("warnings-as-errors") {
				cfg.Warnings.AsErrors = warningsAsErrors
			}
			if flags.Changed("no-warnings") {
				cfg.Warnings.Disabled = noWarnings
			}
			return runCompile(cmd, cfg, args[0])
		}),
	}

	cmd.Flags().Var(emit, "emit", "Dump to write: tokens, ast, typed-ast or none")
	cmd.Flags().Var(format, "format", "Dump format: text or json")
	cmd.Flags().BoolVar(&warningsAsErrors, "warnings-as-errors", false, "Fail when the analyzer reports warnings")
	cmd.Flags().BoolVar(&noWarnings, "no-warnings", false, "Do not report analyzer warnings")

	return cmd
}

func runCompile(cmd *cobra.Command, cfg *config.Config, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	res, cerr := compiler.Compile(cmd.Context(), path, src, compiler.Options{
		WarningsAsErrors: cfg.Warnings.AsErrors,
		DisableWarnings:  cfg.Warnings.Disabled,
	})

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	useColor := cfg.UseColor(!color.NoColor)
	if len(res.Diags) > 0 {
		if err := res.WriteDiagnostics(stderr, 0, useColor); err != nil {
			return errors.Wrap(err, "writing diagnostics")
		}
	}
	if cerr != nil {
		return &failure{cerr}
	}

	if err := emitResult(stdout, res, cfg.Emit, cfg.Format); err != nil {
		return errors.Wrap(err, "writing output")
	}

	colored(useColor, color.FgGreen, color.Bold).Fprint(stderr, "ok")
	fmt.Fprintf(stderr, " %s", path)
	if n := res.Warnings(); n > 0 {
		fmt.Fprintf(stderr, " (%d warning(s))", n)
	}
	fmt.Fprintln(stderr)
	return nil
}

// colored returns a color that is applied only when on is set, whatever
// the terminal detection of the color package decided.
func colored(on bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// emitResult writes the dump selected by emit in the given format.
func emitResult(w io.Writer, res *compiler.Result, emit, format string) error {
	json := format == config.FormatJSON
	switch emit {
	case config.EmitTokens:
		if json {
			return syntax.FprintTokensJSON(w, res.Tokens)
		}
		writeTokens(w, res.Tokens)
	case config.EmitAST:
		return writeTree(w, res.File, json)
	case config.EmitTypedAST:
		return writeTree(w, res.Typed, json)
	}
	return nil
}

func writeTree(w io.Writer, f *syntax.File, json bool) error {
	if json {
		return syntax.FprintJSON(w, f)
	}
	syntax.Fprint(w, f)
	return nil
}

// writeTokens prints one token per line as a table.
func writeTokens(w io.Writer, toks []syntax.Lexeme) {
	fmt.Fprintf(w, "%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Fprintf(w, "%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
	for _, l := range toks {
		fmt.Fprintf(w, "%-20s %-12s %s\n", l.Pos, l.Tok, formatLiteral(l.Lit))
	}
}

// formatLiteral quotes a literal with control characters escaped.
func formatLiteral(lit string) string {
	if lit == "" {
		return `""`
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
