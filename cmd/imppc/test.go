package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/impp/internal/compiler"
	"github.com/you-not-fish/impp/internal/config"
)

func newTestCmd(g *globals) *cobra.Command {
	var jobs int
	var pattern string
	var warningsAsErrors bool

	cmd := &cobra.Command{
		Use:   "test [dir]",
		Short: "Check every source file under a directory",
		Long: "Check every source file under a directory\n" +
			"\n" +
			"Each file matching --pattern is compiled on its own, several at a time.\n" +
			"A line per file reports ok or FAIL; the command fails if any file does.",
		Args: cobra.MaximumNArgs(1),
		Run: runFunc(g, func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("jobs") {
				cfg.Test.Jobs = jobs
			}
			if flags.Changed("pattern") {
				cfg.Test.Pattern = pattern
			}
			if flags.Changed("warnings-as-errors") {
				cfg.Warnings.AsErrors = warningsAsErrors
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			dir := cfg.Test.Dir
			if len(args) > 0 {
				dir = args[0]
			}
			return runTest(cmd, cfg, dir)
		}),
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of files compiled in parallel (default: from config or GOMAXPROCS)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob matched against file names (default \"*.impp\")")
	cmd.Flags().BoolVar(&warningsAsErrors, "warnings-as-errors", false, "Fail files for which the analyzer reports warnings")

	return cmd
}

func runTest(cmd *cobra.Command, cfg *config.Config, dir string) error {
	results, err := compiler.CompileDir(cmd.Context(), dir, cfg.Test.Pattern, cfg.Test.Jobs, compiler.Options{
		WarningsAsErrors: cfg.Warnings.AsErrors,
		DisableWarnings:  cfg.Warnings.Disabled,
	})
	var failed *multierror.Error
	if err != nil && !errors.As(err, &failed) {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	useColor := cfg.UseColor(!color.NoColor)
	ok := colored(useColor, color.FgGreen)
	fail := colored(useColor, color.FgRed, color.Bold)

	passed := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		name := res.Filename
		if rel, err := filepath.Rel(dir, name); err == nil {
			name = rel
		}
		if res.Err == nil {
			passed++
			ok.Fprint(stdout, "ok  ")
		} else {
			fail.Fprint(stdout, "FAIL")
		}
		fmt.Fprintf(stdout, "  %s\n", name)
		if len(res.Diags) > 0 {
			if err := res.WriteDiagnostics(stderr, 0, useColor); err != nil {
				return errors.Wrap(err, "writing diagnostics")
			}
		}
	}
	fmt.Fprintf(stdout, "%d/%d files passed\n", passed, len(results))

	if failed != nil {
		return &failure{failed}
	}
	return nil
}
