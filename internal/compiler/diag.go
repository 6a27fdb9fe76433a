package compiler

import (
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/pkg/errors"

	"github.com/you-not-fish/impp/internal/sema"
	"github.com/you-not-fish/impp/internal/syntax"
)

// errorDiagnostic converts a stage error into a diagnostic. Errors without
// a source position get no subject range.
func (r *Result) errorDiagnostic(err error) *hcl.Diagnostic {
	d := &hcl.Diagnostic{Severity: hcl.DiagError, Summary: "Error", Detail: err.Error()}

	var (
		lerr *syntax.LexicalError
		perr *syntax.SyntaxError
		serr *sema.SemanticError
	)
	switch {
	case errors.As(err, &lerr):
		d.Summary, d.Detail = "Lexical error", lerr.Msg
		d.Subject = r.rangeAt(lerr.Pos)
	case errors.As(err, &perr):
		d.Summary, d.Detail = "Syntax error", perr.Msg
		d.Subject = r.rangeAt(perr.Pos)
	case errors.As(err, &serr):
		d.Summary, d.Detail = "Semantic error", serr.Msg
		d.Subject = r.rangeAt(serr.Pos)
	}
	return d
}

func (r *Result) warningDiagnostic(pos syntax.Pos, msg string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  "Warning",
		Detail:   msg,
		Subject:  r.rangeAt(pos),
	}
}

// rangeAt returns the source range of the character at pos. At the end
// of a line or of the file the range is empty.
func (r *Result) rangeAt(pos syntax.Pos) *hcl.Range {
	if !pos.IsValid() {
		return nil
	}
	start := hcl.Pos{Line: int(pos.Line()), Column: int(pos.Col()), Byte: pos.Offset()}
	end := start
	if offs := pos.Offset(); offs < len(r.Source) && r.Source[offs] != '\n' {
		end.Column++
		end.Byte++
	}
	return &hcl.Range{Filename: r.Filename, Start: start, End: end}
}

// WriteDiagnostics prints the result's diagnostics to w with source
// snippets. width wraps long messages; zero disables wrapping.
func (r *Result) WriteDiagnostics(w io.Writer, width uint, color bool) error {
	files := map[string]*hcl.File{r.Filename: {Bytes: r.Source}}
	return hcl.NewDiagnosticTextWriter(w, files, width, color).WriteDiagnostics(r.Diags)
}
