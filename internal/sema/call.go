package sema

import (
	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// call analyzes a routine call and returns its annotated copy. x is set to
// a value of the routine's result type, or to novalue if it has none.
func (c *Checker) call(x *operand, e *syntax.CallExpr) *syntax.CallExpr {
	r, ok := c.lookup(e.Fun).(*types.Routine)
	if !ok {
		c.errorf(e.Fun.Pos(), "%s is not a routine", e.Fun.Value)
	}
	sig := r.Signature()

	if len(e.Args) != sig.NumParams() {
		c.errorf(e.Pos(), "wrong number of arguments in call to %s: got %d, want %d",
			e.Fun.Value, len(e.Args), sig.NumParams())
	}

	out := *e
	out.Args = make([]syntax.Expr, len(e.Args))
	context := "argument to " + e.Fun.Value
	for i, arg := range e.Args {
		var a operand
		out.Args[i] = c.expr(&a, arg)
		c.assignment(&a, sig.Param(i).Type(), context)
	}

	if sig.Result() == nil {
		x.mode = novalue
		x.pos = e.Pos()
		x.typ = nil
		x.val = nil
	} else {
		x.setValue(e.Pos(), sig.Result())
	}
	return &out
}
