package sema

import (
	"go/constant"

	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// expr analyzes e, sets x to the result and returns the replacement of e.
// An expression that folds to a constant is replaced by a literal; any
// other expression is replaced by an annotated copy.
//
// expr is used wherever a value is required: a call to a routine without
// result is an error here.
func (c *Checker) expr(x *operand, e syntax.Expr) syntax.Expr {
	*x = operand{pos: e.Pos()}

	var out syntax.Expr
	switch e := e.(type) {
	case *syntax.BasicLit:
		c.basicLit(x, e)
		lit := *e
		lit.SetTypeInfo(x.typeAndValue())
		return &lit

	case *syntax.Operation:
		if e.Y == nil {
			out = c.unary(x, e)
		} else {
			out = c.binary(x, e)
		}

	case *syntax.CallExpr:
		call := c.call(x, e)
		if x.mode == novalue {
			c.errorf(e.Pos(), "routine %s has no result and cannot be used as a value", e.Fun.Value)
		}
		out = call

	case *syntax.ModifiablePrimary:
		out, _ = c.modifiable(x, e)

	default:
		c.errorf(e.Pos(), "unexpected expression %T", e)
	}

	if x.isConst() {
		return literal(x)
	}
	out.SetTypeInfo(x.typeAndValue())
	return out
}

func (c *Checker) unary(x *operand, e *syntax.Operation) *syntax.Operation {
	out := *e
	out.X = c.expr(x, e.X)

	switch e.Op {
	case syntax.Not:
		if !types.IsBooleanType(x.typ) {
			c.invalidOp(e.Pos(), "operator not requires a boolean operand, got %s", x.typ)
		}
	case syntax.Add, syntax.Sub:
		if !types.IsNumericType(x.typ) {
			c.invalidOp(e.Pos(), "operator %s requires a numeric operand, got %s", e.Op, x.typ)
		}
	default:
		c.invalidOp(e.Pos(), "%s is not a unary operator", e.Op)
	}

	if x.isConst() {
		x.setConst(e.Pos(), x.typ, c.foldUnary(e.Pos(), e.Op, x))
	} else {
		x.setValue(e.Pos(), x.typ)
	}
	return &out
}

func (c *Checker) binary(x *operand, e *syntax.Operation) *syntax.Operation {
	out := *e
	var y operand
	out.X = c.expr(x, e.X)
	out.Y = c.expr(&y, e.Y)

	op := e.Op
	var typ types.Type
	switch {
	case op.IsLogical():
		if !types.IsBooleanType(x.typ) || !types.IsBooleanType(y.typ) {
			c.invalidOp(e.Pos(), "operator %s requires boolean operands, got %s and %s", op, x.typ, y.typ)
		}
		typ = types.Typ[types.Boolean]

	case op.IsRelational():
		if !types.IsNumericType(x.typ) || !types.IsNumericType(y.typ) {
			c.invalidOp(e.Pos(), "operator %s requires numeric operands, got %s and %s", op, x.typ, y.typ)
		}
		typ = types.Typ[types.Boolean]

	case op.IsArithmetic():
		if !types.IsNumericType(x.typ) || !types.IsNumericType(y.typ) {
			c.invalidOp(e.Pos(), "operator %s requires numeric operands, got %s and %s", op, x.typ, y.typ)
		}
		if op == syntax.Div || types.IsRealType(x.typ) || types.IsRealType(y.typ) {
			typ = types.Typ[types.Real]
		} else {
			typ = types.Typ[types.Integer]
		}
		if (op == syntax.Div || op == syntax.Rem) && y.isConst() && isZero(y.val) {
			c.errorf(e.Y.Pos(), "division by zero")
		}

	default:
		c.invalidOp(e.Pos(), "%s is not a binary operator", op)
	}

	if x.isConst() && y.isConst() {
		x.setConst(e.Pos(), typ, c.foldBinary(e.Pos(), op, x, &y, typ))
	} else {
		x.setValue(e.Pos(), typ)
	}
	return &out
}

// modifiable analyzes a variable reference with its access chain. It
// returns the annotated copy of e and the variable the chain starts from.
func (c *Checker) modifiable(x *operand, e *syntax.ModifiablePrimary) (*syntax.ModifiablePrimary, *types.Var) {
	out := *e
	v, ok := c.lookup(e.Base).(*types.Var)
	if !ok {
		c.errorf(e.Base.Pos(), "%s is not a variable", e.Base.Value)
	}

	typ := v.Type()
	if len(e.Chain) > 0 {
		out.Chain = make([]syntax.Access, len(e.Chain))
	}
	for i, a := range e.Chain {
		switch a := a.(type) {
		case *syntax.FieldAccess:
			rec, ok := typ.(*types.Record)
			if !ok {
				c.errorf(a.Sel.Pos(), "cannot select field %s (type %s is not a record)", a.Sel.Value, typ)
			}
			f, _ := rec.LookupField(a.Sel.Value)
			if f == nil {
				c.errorf(a.Sel.Pos(), "%s has no field %s", rec, a.Sel.Value)
			}
			c.recordUse(a.Sel, f)
			out.Chain[i] = a
			typ = f.Type()

		case *syntax.IndexAccess:
			arr, ok := typ.(*types.Array)
			if !ok {
				c.errorf(a.Pos(), "cannot index %s (type %s is not an array)", e.Base.Value, typ)
			}
			var ix operand
			na := *a
			na.Index = c.expr(&ix, a.Index)
			if !types.IsIntegerType(ix.typ) {
				c.errorf(a.Index.Pos(), "array index must be an integer, got %s", ix.typ)
			}
			if ix.isConst() && !arr.Unbound() {
				if n, _ := constant.Int64Val(ix.val); n < 1 || n > arr.Len() {
					c.errorf(a.Index.Pos(), "index %d out of bounds [1..%d]", n, arr.Len())
				}
			}
			out.Chain[i] = &na
			typ = arr.Elem()
		}
	}

	x.setVar(e.Pos(), typ)
	return &out, v
}
