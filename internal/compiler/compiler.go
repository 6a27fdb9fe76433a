// Package compiler drives the front end over one source file or a tree of
// files: lexing, parsing and semantic analysis, with diagnostics collected
// for presentation.
package compiler

import (
	"context"
	"time"

	"github.com/golang/glog"
	"github.com/hashicorp/hcl/v2"
	"github.com/pkg/errors"

	"github.com/you-not-fish/impp/internal/sema"
	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// Options controls a compilation.
type Options struct {
	// WarningsAsErrors makes a compilation with warnings fail.
	WarningsAsErrors bool

	// DisableWarnings drops warnings instead of reporting them.
	DisableWarnings bool
}

// Result holds everything a compilation produced. Fields for stages that
// did not run are nil.
type Result struct {
	Filename string
	Source   []byte

	Tokens []syntax.Lexeme
	File   *syntax.File // tree as parsed
	Typed  *syntax.File // annotated and folded tree
	Unit   *types.Unit
	Info   *sema.Info

	// Diags holds the warnings, in discovery order, followed by the
	// error that stopped the compilation, if any.
	Diags hcl.Diagnostics

	// Err is the error returned by Compile.
	Err error
}

// Warnings returns the number of warning diagnostics.
func (r *Result) Warnings() int {
	n := 0
	for _, d := range r.Diags {
		if d.Severity == hcl.DiagWarning {
			n++
		}
	}
	return n
}

// ErrWarnings is returned by Compile when warnings are treated as errors.
var ErrWarnings = errors.New("warnings treated as errors")

// Compile runs the front end over src. It always returns a Result; the
// error is the first lexical, syntax or semantic error, ErrWarnings, or
// the context's error.
func Compile(ctx context.Context, filename string, src []byte, opts Options) (*Result, error) {
	res := &Result{Filename: filename, Source: src}
	err := res.compile(ctx, opts)
	res.Err = err
	return res, err
}

func (r *Result) compile(ctx context.Context, opts Options) error {
	filename, src := r.Filename, r.Source

	fail := func(err error) error {
		r.Diags = append(r.Diags, r.errorDiagnostic(err))
		return err
	}

	start := time.Now()
	toks, err := syntax.Tokenize(filename, src)
	if err != nil {
		return fail(err)
	}
	r.Tokens = toks
	if glog.V(3) {
		glog.V(3).Infof("%s: lexed %d tokens in %v", filename, len(toks), time.Since(start))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start = time.Now()
	file, err := syntax.Parse(toks)
	if err != nil {
		return fail(err)
	}
	r.File = file
	if glog.V(3) {
		glog.V(3).Infof("%s: parsed %d declarations in %v", filename, len(file.Decls), time.Since(start))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start = time.Now()
	conf := &sema.Config{}
	if !opts.DisableWarnings {
		conf.Warn = func(pos syntax.Pos, msg string) {
			r.Diags = append(r.Diags, r.warningDiagnostic(pos, msg))
		}
	}
	r.Info = &sema.Info{}
	typed, unit, err := sema.Check(file, conf, r.Info)
	r.Unit = unit
	if err != nil {
		return fail(err)
	}
	r.Typed = typed
	if glog.V(3) {
		glog.V(3).Infof("%s: analyzed in %v with %d warnings", filename, time.Since(start), r.Warnings())
	}

	if opts.WarningsAsErrors && r.Warnings() > 0 {
		return errors.Wrapf(ErrWarnings, "%s: %d warning(s)", filename, r.Warnings())
	}
	return nil
}
