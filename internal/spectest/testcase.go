// Package spectest runs end-to-end front end cases described in Markdown.
//
// A case starts at a heading of the form "Test: <name>" and collects the
// fenced code blocks that follow it, up to the next such heading. Exactly
// one block must be the program source, tagged impp; the others are
// assertions on what compiling it produces.
package spectest

import (
	"bytes"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence is the info string of a fenced code block in a case.
type Fence string

const (
	FenceSource   Fence = "impp"      // program source
	FenceAST      Fence = "ast"       // text dump of the parsed tree
	FenceTypedAST Fence = "typed-ast" // text dump of the analyzed tree
	FenceError    Fence = "error"     // the error stopping the compilation
	FenceWarnings Fence = "warnings"  // one analyzer warning per line
)

func (f Fence) isAssertion() bool {
	switch f {
	case FenceAST, FenceTypedAST, FenceError, FenceWarnings:
		return true
	}
	return false
}

// Assertion is one expected output of a case.
type Assertion struct {
	Fence   Fence
	Content string // block contents without the final newline
	Line    int    // line of the block in the Markdown file
}

// Case is a program and the assertions made about compiling it.
type Case struct {
	Name       string
	Line       int
	Source     string
	Assertions []Assertion
}

const headingPrefix = "Test: "

// LoadFile reads the cases of a Markdown file.
func LoadFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	cases, err := Extract(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cases, nil
}

// Extract parses a Markdown document and returns its cases in order.
// Tagged blocks outside a case, unknown tags and cases without a source
// block or without assertions are errors. Untagged blocks are ignored.
func Extract(source []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var (
		cases []Case
		cur   *Case
	)
	finish := func() error {
		if cur == nil {
			return nil
		}
		if err := cur.validate(); err != nil {
			return err
		}
		cases = append(cases, *cur)
		return nil
	}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			title := nodeText(n, source)
			if !strings.HasPrefix(title, headingPrefix) {
				return ast.WalkSkipChildren, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			cur = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(title, headingPrefix)),
				Line: lineOf(n, source),
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			fence := Fence(n.Language(source))
			line := lineOf(n, source)
			if fence == "" {
				return ast.WalkContinue, nil
			}
			if fence != FenceSource && !fence.isAssertion() {
				return ast.WalkStop, errors.Errorf("line %d: unknown fence %q", line, fence)
			}
			if cur == nil {
				return ast.WalkStop, errors.Errorf("line %d: %s fence outside of a test case", line, fence)
			}

			content := strings.TrimSuffix(blockText(n, source), "\n")
			if fence == FenceSource {
				if cur.Source != "" {
					return ast.WalkStop, errors.Errorf("line %d: second %s fence in test %q", line, fence, cur.Name)
				}
				cur.Source = content
				break
			}
			cur.Assertions = append(cur.Assertions, Assertion{Fence: fence, Content: content, Line: line})
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

func (c *Case) validate() error {
	if c.Source == "" {
		return errors.Errorf("line %d: test %q has no %s fence", c.Line, c.Name, FenceSource)
	}
	if len(c.Assertions) == 0 {
		return errors.Errorf("line %d: test %q has no assertions", c.Line, c.Name)
	}
	return nil
}

func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockText(b *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := b.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based line of a block node's first line. Code
// blocks report the line after their opening fence.
func lineOf(n ast.Node, source []byte) int {
	if n.Lines().Len() == 0 {
		return 0
	}
	offs := n.Lines().At(0).Start
	return bytes.Count(source[:offs], []byte("\n")) + 1
}
