package spectest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/you-not-fish/impp/internal/compiler"
	"github.com/you-not-fish/impp/internal/syntax"
)

// Mismatch reports an assertion whose expected output differs from the
// actual one.
type Mismatch struct {
	Case string
	Assertion
	Got string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("line %d: %s of test %q differs (-want +got):\n%s",
		m.Line, m.Fence, m.Case, Diff(m.Content, m.Got))
}

// Run compiles the case's source and checks every assertion. All
// mismatches are reported, combined into one error. A compilation error
// not expected by an error fence also fails the case.
func (c *Case) Run(ctx context.Context) error {
	res, cerr := compiler.Compile(ctx, "", []byte(c.Source), compiler.Options{})
	if err := ctx.Err(); err != nil {
		return err
	}

	var result *multierror.Error
	wantErr := false
	for _, a := range c.Assertions {
		var got string
		switch a.Fence {
		case FenceAST:
			got = dump(res.File)
		case FenceTypedAST:
			got = dump(res.Typed)
		case FenceError:
			wantErr = true
			if cerr != nil {
				got = cerr.Error()
			}
		case FenceWarnings:
			got = warnings(res.Diags)
		}
		if got != a.Content {
			result = multierror.Append(result, &Mismatch{Case: c.Name, Assertion: a, Got: got})
		}
	}
	if cerr != nil && !wantErr {
		result = multierror.Append(result, errors.Wrapf(cerr, "test %q", c.Name))
	}
	return result.ErrorOrNil()
}

func dump(f *syntax.File) string {
	if f == nil {
		return ""
	}
	var buf bytes.Buffer
	syntax.Fprint(&buf, f)
	return strings.TrimSuffix(buf.String(), "\n")
}

func warnings(diags hcl.Diagnostics) string {
	var lines []string
	for _, d := range diags {
		if d.Severity != hcl.DiagWarning {
			continue
		}
		if d.Subject == nil {
			lines = append(lines, d.Detail)
			continue
		}
		lines = append(lines, fmt.Sprintf("%d:%d: %s", d.Subject.Start.Line, d.Subject.Start.Column, d.Detail))
	}
	return strings.Join(lines, "\n")
}

// Diff returns a line diff of two texts. Removed lines are prefixed with
// "-", added lines with "+" and common lines with a space.
func Diff(want, got string) string {
	differ := diffmatchpatch.New()
	differ.DiffTimeout = 0

	a, b, lines := differ.DiffLinesToChars(want+"\n", got+"\n")
	diffs := differ.DiffCharsToLines(differ.DiffMain(a, b, false), lines)

	var buf strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix + line)
		}
	}
	return buf.String()
}
