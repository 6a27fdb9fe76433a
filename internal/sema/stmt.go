package sema

import (
	"go/constant"

	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// block analyzes b in a new scope and returns its annotated copy. The
// result reports whether every path through b ends in a return.
func (c *Checker) block(b *syntax.Block, comment string) (*syntax.Block, bool) {
	c.openScope(b, comment)
	defer c.closeScope()

	out := *b
	var returns bool
	out.Stmts, returns = c.stmtList(b.Stmts)
	return &out, returns
}

// stmtList analyzes list in the current scope. Statements following one
// that always returns are dropped.
func (c *Checker) stmtList(list []syntax.Stmt) ([]syntax.Stmt, bool) {
	out := make([]syntax.Stmt, 0, len(list))
	for i, s := range list {
		ns, returns := c.stmt(s)
		out = append(out, ns)
		if returns {
			if i+1 < len(list) {
				c.warnf(list[i+1].Pos(), "unreachable code")
			}
			return out, true
		}
	}
	return out, false
}

// stmt analyzes a single statement and reports whether it always returns.
func (c *Checker) stmt(s syntax.Stmt) (syntax.Stmt, bool) {
	switch s := s.(type) {
	case *syntax.DeclStmt:
		out := *s
		out.Decl = c.decl(s.Decl)
		return &out, false

	case *syntax.AssignStmt:
		return c.assignStmt(s), false

	case *syntax.CallStmt:
		var x operand
		out := *s
		out.Call = c.call(&x, s.Call)
		out.Call.SetTypeInfo(x.typeAndValue())
		return &out, false

	case *syntax.IfStmt:
		return c.ifStmt(s)

	case *syntax.WhileStmt:
		return c.whileStmt(s)

	case *syntax.ForStmt:
		return c.forStmt(s)

	case *syntax.PrintStmt:
		out := *s
		out.Args = make([]syntax.Expr, len(s.Args))
		for i, arg := range s.Args {
			var x operand
			out.Args[i] = c.expr(&x, arg)
		}
		return &out, false

	case *syntax.ReturnStmt:
		return c.returnStmt(s), true
	}

	c.errorf(s.Pos(), "unexpected statement %T", s)
	return nil, false
}

func (c *Checker) assignStmt(s *syntax.AssignStmt) *syntax.AssignStmt {
	out := *s

	var lhs operand
	target, v := c.modifiable(&lhs, s.Lhs)
	if v.ReadOnly() {
		c.errorf(s.Lhs.Pos(), "cannot assign to %s (loop iterator)", syntax.ExprString(s.Lhs))
	}
	target.SetTypeInfo(lhs.typeAndValue())
	out.Lhs = target

	var x operand
	out.Rhs = c.expr(&x, s.Rhs)
	c.assignment(&x, lhs.typ, "assignment")
	return &out
}

// condition analyzes a boolean condition.
func (c *Checker) condition(x *operand, e syntax.Expr, what string) syntax.Expr {
	out := c.expr(x, e)
	if !types.IsBooleanType(x.typ) {
		c.errorf(e.Pos(), "non-boolean condition in %s statement", what)
	}
	return out
}

// ifStmt analyzes an if statement. It always returns only if both
// branches do and the else branch is not empty. A constant condition
// prunes the branch that cannot run.
func (c *Checker) ifStmt(s *syntax.IfStmt) (*syntax.IfStmt, bool) {
	out := *s

	var x operand
	out.Cond = c.condition(&x, s.Cond, "if")

	var thenReturns, elseReturns bool
	out.Then, thenReturns = c.block(s.Then, "then")
	if s.Else != nil {
		out.Else, elseReturns = c.block(s.Else, "else")
	}
	returns := thenReturns && s.Else != nil && len(s.Else.Stmts) > 0 && elseReturns

	if !x.isConst() {
		return &out, returns
	}
	// Pruning must not change whether the statement returns, so a
	// statement whose branches both return is kept whole.
	if constant.BoolVal(x.val) {
		c.warnf(s.Cond.Pos(), "condition is always true")
		if !returns {
			out.Else = nil
		}
	} else {
		c.warnf(s.Cond.Pos(), "condition is always false")
		if !returns {
			empty := *out.Then
			empty.Stmts = nil
			out.Then = &empty
		}
	}
	return &out, returns
}

// whileStmt analyzes a while loop. Only a loop that never ends can
// guarantee a return through its body.
func (c *Checker) whileStmt(s *syntax.WhileStmt) (*syntax.WhileStmt, bool) {
	out := *s

	var x operand
	out.Cond = c.condition(&x, s.Cond, "while")

	var bodyReturns bool
	out.Body, bodyReturns = c.block(s.Body, "loop")

	if !x.isConst() {
		return &out, false
	}
	if constant.BoolVal(x.val) {
		c.warnf(s.Cond.Pos(), "infinite loop")
		return &out, bodyReturns
	}
	c.warnf(s.Cond.Pos(), "loop body is never executed")
	return &out, false
}

// forStmt analyzes a for loop and resolves its kind. A bare integer
// source n becomes the range 1..n (n..1 when reversed); a bare array
// source is traversed element by element.
//
// The loop guarantees a return only if its body does and the range has
// constant bounds that run in the loop's direction.
func (c *Checker) forStmt(s *syntax.ForStmt) (*syntax.ForStmt, bool) {
	out := *s

	var start operand
	out.Start = c.expr(&start, s.Start)

	var iterType types.Type
	entered := false
	switch {
	case s.End != nil:
		var end operand
		out.End = c.expr(&end, s.End)
		if !types.IsIntegerType(start.typ) {
			c.errorf(s.Start.Pos(), "range bound must be an integer, got %s", start.typ)
		}
		if !types.IsIntegerType(end.typ) {
			c.errorf(s.End.Pos(), "range bound must be an integer, got %s", end.typ)
		}
		out.Kind = syntax.RangeLoop
		iterType = types.Typ[types.Integer]
		entered = c.rangeEntered(s, &start, &end)

	case isArray(start.typ):
		out.Kind = syntax.ArrayLoop
		iterType = start.typ.(*types.Array).Elem()

	case types.IsIntegerType(start.typ):
		var one operand
		one.setConst(s.Start.Pos(), types.Typ[types.Integer], constant.MakeInt64(1))
		if s.Reverse {
			out.End = literal(&one)
			entered = c.rangeEntered(s, &start, &one)
		} else {
			out.Start, out.End = literal(&one), out.Start
			entered = c.rangeEntered(s, &one, &start)
		}
		out.Kind = syntax.RangeLoop
		iterType = types.Typ[types.Integer]

	default:
		c.errorf(s.Start.Pos(), "cannot range over %s (type %s)", syntax.ExprString(s.Start), start.typ)
	}

	c.openScope(s, "loop")
	c.declare(s.Iter, types.NewIter(s.Iter.Pos(), s.Iter.Value, iterType))
	body := *s.Body
	var bodyReturns bool
	body.Stmts, bodyReturns = c.stmtList(s.Body.Stmts)
	out.Body = &body
	c.closeScope()

	return &out, bodyReturns && entered
}

// rangeEntered reports whether a range loop provably runs at least once.
// A constant range that runs against the loop's direction is reported.
func (c *Checker) rangeEntered(s *syntax.ForStmt, start, end *operand) bool {
	if !start.isConst() || !end.isConst() {
		return false
	}
	lo, _ := constant.Int64Val(start.val)
	hi, _ := constant.Int64Val(end.val)
	switch {
	case !s.Reverse && lo > hi:
		c.warnf(s.Start.Pos(), "empty range %d..%d: bounds are descending", lo, hi)
		return false
	case s.Reverse && lo < hi:
		c.warnf(s.Start.Pos(), "empty reverse range %d..%d: bounds are ascending", lo, hi)
		return false
	}
	return true
}

func (c *Checker) returnStmt(s *syntax.ReturnStmt) *syntax.ReturnStmt {
	if c.routine == nil {
		c.errorf(s.Pos(), "return statement outside routine")
	}
	name := c.routine.Name()
	result := c.routine.Signature().Result()

	if s.Result == nil {
		if result != nil {
			c.errorf(s.Pos(), "missing return value in routine %s (want %s)", name, result)
		}
		return s
	}
	if result == nil {
		c.errorf(s.Result.Pos(), "too many return values: routine %s has no result", name)
	}

	out := *s
	var x operand
	out.Result = c.expr(&x, s.Result)
	c.assignment(&x, result, "return statement")
	return &out
}

func isArray(t types.Type) bool {
	_, ok := t.(*types.Array)
	return ok
}
