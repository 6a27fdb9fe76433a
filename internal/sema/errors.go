// Package sema implements semantic analysis for the Imperative language:
// name resolution over a scope stack, type checking with implicit
// coercions, constant folding and return-path analysis.
package sema

import (
	"fmt"

	"github.com/you-not-fish/impp/internal/syntax"
)

// SemanticError represents a violation of the language's static rules.
type SemanticError struct {
	Pos syntax.Pos
	Msg string
}

// Error implements the error interface.
func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// WarningHandler is a function called for each warning.
type WarningHandler func(pos syntax.Pos, msg string)

// bailout unwinds the checker to Check on the first error.
type bailout struct{ err *SemanticError }

// errorf reports a semantic error at pos and stops the analysis.
func (c *Checker) errorf(pos syntax.Pos, format string, args ...interface{}) {
	panic(bailout{&SemanticError{Pos: pos, Msg: fmt.Sprintf(format, args...)}})
}

// warnf reports a non-fatal diagnostic at pos.
func (c *Checker) warnf(pos syntax.Pos, format string, args ...interface{}) {
	c.warnings++
	if c.conf.Warn != nil {
		c.conf.Warn(pos, fmt.Sprintf(format, args...))
	}
}

// recover turns a bailout into an error result. Other panics propagate.
func (c *Checker) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	b, ok := e.(bailout)
	if !ok {
		panic(e)
	}
	*errp = b.err
}

// invalidOp reports an invalid operation error.
func (c *Checker) invalidOp(pos syntax.Pos, format string, args ...interface{}) {
	c.errorf(pos, "invalid operation: "+format, args...)
}
