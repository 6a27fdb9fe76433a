package sema

import (
	"go/constant"
	"go/token"
	"math"
	"strconv"

	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// Integer constants are kept as exact go/constant values and checked
// against int64 after every operation; reals are evaluated in float64.

var intOps = [...]token.Token{
	syntax.Add: token.ADD,
	syntax.Sub: token.SUB,
	syntax.Mul: token.MUL,
	syntax.Rem: token.REM,
}

var relOps = [...]token.Token{
	syntax.Eql: token.EQL,
	syntax.Neq: token.NEQ,
	syntax.Lss: token.LSS,
	syntax.Leq: token.LEQ,
	syntax.Gtr: token.GTR,
	syntax.Geq: token.GEQ,
}

// basicLit sets x to the constant denoted by lit.
func (c *Checker) basicLit(x *operand, lit *syntax.BasicLit) {
	switch lit.Kind {
	case syntax.IntLit:
		n, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			c.errorf(lit.Pos(), "constant %s overflows integer", lit.Value)
		}
		x.setConst(lit.Pos(), types.Typ[types.Integer], constant.MakeInt64(n))

	case syntax.RealLit:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			c.errorf(lit.Pos(), "constant %s overflows real", lit.Value)
		}
		x.setConst(lit.Pos(), types.Typ[types.Real], constant.MakeFloat64(f))

	case syntax.BoolLit:
		x.setConst(lit.Pos(), types.Typ[types.Boolean], constant.MakeBool(lit.Value == "true"))

	default:
		c.errorf(lit.Pos(), "unexpected literal %s", lit.Value)
	}
}

// literal returns a new literal node standing for the constant x.
func literal(x *operand) *syntax.BasicLit {
	lit := new(syntax.BasicLit)
	lit.SetPos(x.pos)
	switch {
	case types.IsBooleanType(x.typ):
		lit.Kind = syntax.BoolLit
	case types.IsIntegerType(x.typ):
		lit.Kind = syntax.IntLit
	default:
		lit.Kind = syntax.RealLit
	}
	lit.Value = syntax.ConstString(x.val)
	lit.SetTypeInfo(x.typeAndValue())
	return lit
}

// foldUnary evaluates op applied to the constant x.
func (c *Checker) foldUnary(pos syntax.Pos, op syntax.Operator, x *operand) constant.Value {
	switch op {
	case syntax.Not:
		return constant.MakeBool(!constant.BoolVal(x.val))
	case syntax.Add:
		// unary plus is the absolute value
		if constant.Sign(x.val) >= 0 {
			return x.val
		}
		fallthrough
	case syntax.Sub:
		if types.IsRealType(x.typ) {
			return constant.MakeFloat64(-toFloat(x.val))
		}
		return c.checkInt(pos, constant.UnaryOp(token.SUB, x.val, 0))
	}
	c.errorf(pos, "unexpected unary operator %s", op)
	return nil
}

// foldBinary evaluates x op y for constants x and y of already checked
// operand types; typ is the result type.
func (c *Checker) foldBinary(pos syntax.Pos, op syntax.Operator, x, y *operand, typ types.Type) constant.Value {
	switch {
	case op.IsLogical():
		a, b := constant.BoolVal(x.val), constant.BoolVal(y.val)
		switch op {
		case syntax.And:
			return constant.MakeBool(a && b)
		case syntax.Or:
			return constant.MakeBool(a || b)
		case syntax.Xor:
			return constant.MakeBool(a != b)
		}

	case op.IsRelational():
		return constant.MakeBool(constant.Compare(x.val, relOps[op], y.val))

	case types.IsIntegerType(typ):
		return c.checkInt(pos, constant.BinaryOp(x.val, intOps[op], y.val))

	default:
		a, b := toFloat(x.val), toFloat(y.val)
		var f float64
		switch op {
		case syntax.Add:
			f = a + b
		case syntax.Sub:
			f = a - b
		case syntax.Mul:
			f = a * b
		case syntax.Div:
			f = a / b
		case syntax.Rem:
			f = math.Mod(a, b)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			c.errorf(pos, "constant %s %s %s overflows real", syntax.ConstString(x.val), op, syntax.ConstString(y.val))
		}
		return constant.MakeFloat64(f)
	}
	c.errorf(pos, "unexpected binary operator %s", op)
	return nil
}

// checkInt reports an error if the integer constant v does not fit in
// 64 bits.
func (c *Checker) checkInt(pos syntax.Pos, v constant.Value) constant.Value {
	if _, ok := constant.Int64Val(v); !ok {
		c.errorf(pos, "constant %s overflows integer", v.ExactString())
	}
	return v
}

func toFloat(v constant.Value) float64 {
	f, _ := constant.Float64Val(constant.ToFloat(v))
	return f
}

// isZero reports whether the numeric constant v is zero.
func isZero(v constant.Value) bool {
	return constant.Sign(v) == 0
}
