package spectest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestCases(t *testing.T) {
	files, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".md"), func(t *testing.T) {
			cases, err := LoadFile(file)
			be.Err(t, err, nil)

			for _, tc := range cases {
				t.Run(tc.Name, func(t *testing.T) {
					be.Err(t, tc.Run(context.Background()), nil)
				})
			}
		})
	}
}

func TestExtract(t *testing.T) {
	src := "# Title\n\nSome prose.\n\n```\nuntagged\n```\n\n" +
		"## Test: first\n\n```impp\nvar x is 1\n```\n\n```error\n1:1: boom\n```\n\n" +
		"## Notes\n\n" +
		"## Test: second\n\n```impp\nvar a is 1\nvar b is 2\n```\n\n```warnings\n```\n"

	cases, err := Extract([]byte(src))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	be.Equal(t, cases[0].Name, "first")
	be.Equal(t, cases[0].Line, 9)
	be.Equal(t, cases[0].Source, "var x is 1")
	be.Equal(t, len(cases[0].Assertions), 1)
	be.Equal(t, cases[0].Assertions[0].Fence, FenceError)
	be.Equal(t, cases[0].Assertions[0].Content, "1:1: boom")
	be.Equal(t, cases[0].Assertions[0].Line, 16)

	be.Equal(t, cases[1].Name, "second")
	be.Equal(t, cases[1].Source, "var a is 1\nvar b is 2")
	be.Equal(t, len(cases[1].Assertions), 1)
	be.Equal(t, cases[1].Assertions[0].Fence, FenceWarnings)
	be.Equal(t, cases[1].Assertions[0].Content, "")
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"outside", "```impp\nvar x is 1\n```\n", "line 2: impp fence outside of a test case"},
		{"unknown", "## Test: a\n\n```llvm\nret\n```\n", `line 4: unknown fence "llvm"`},
		{"no_source", "## Test: a\n\n```error\nx\n```\n", `line 1: test "a" has no impp fence`},
		{"no_assertions", "## Test: a\n\n```impp\nvar x is 1\n```\n", `line 1: test "a" has no assertions`},
		{"two_sources", "## Test: a\n\n```impp\nvar x is 1\n```\n\n```impp\nvar y is 1\n```\n", `line 8: second impp fence in test "a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract([]byte(tt.src))
			be.Err(t, err, tt.msg)
		})
	}
}

func TestRunReportsMismatches(t *testing.T) {
	tc := Case{
		Name:   "wrong",
		Source: "routine f() is\n  while true loop print 1 end\nend",
		Assertions: []Assertion{
			{Fence: FenceWarnings, Content: "2:9: loop never ends", Line: 3},
			{Fence: FenceError, Content: "1:1: nothing", Line: 7},
		},
	}
	err := tc.Run(context.Background())
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "2 errors occurred"))
	be.True(t, strings.Contains(err.Error(), "-2:9: loop never ends\n+2:9: infinite loop\n"))
	be.True(t, strings.Contains(err.Error(), `line 7: error of test "wrong" differs`))
}

func TestRunUnexpectedError(t *testing.T) {
	tc := Case{
		Name:       "bad",
		Source:     "var x is 1 / 0",
		Assertions: []Assertion{{Fence: FenceWarnings}},
	}
	err := tc.Run(context.Background())
	be.Err(t, err, `test "bad": 1:14: division by zero`)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tc := Case{Name: "c", Source: "var x is 1", Assertions: []Assertion{{Fence: FenceWarnings}}}
	be.Err(t, tc.Run(ctx), context.Canceled)
}

func TestDiff(t *testing.T) {
	be.Equal(t, Diff("a\nb\nc", "a\nx\nc"), " a\n-b\n+x\n c\n")
	be.Equal(t, Diff("same", "same"), " same\n")
}
