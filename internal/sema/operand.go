package sema

import (
	"go/constant"

	"github.com/you-not-fish/impp/internal/syntax"
	"github.com/you-not-fish/impp/internal/types"
)

// operandMode describes the mode of an operand.
type operandMode int

const (
	invalid   operandMode = iota // operand is invalid
	novalue                      // call of a routine without result
	constant_                    // operand is a constant value
	variable                     // operand denotes a storage location
	value                        // operand is a computed value
)

var operandModeNames = [...]string{
	invalid:   "invalid",
	novalue:   "no value",
	constant_: "constant",
	variable:  "variable",
	value:     "value",
}

// operand represents the result of analyzing an expression.
type operand struct {
	mode operandMode
	pos  syntax.Pos
	typ  types.Type
	val  constant.Value // only valid when mode == constant_
}

// String returns a string representation of the operand for debugging.
func (x *operand) String() string {
	if x.mode == invalid {
		return "invalid operand"
	}
	if x.typ == nil {
		return operandModeNames[x.mode]
	}
	if x.mode == constant_ {
		return x.typ.String() + " constant " + x.val.ExactString()
	}
	return x.typ.String() + " " + operandModeNames[x.mode]
}

// setConst sets the operand to a constant value.
func (x *operand) setConst(pos syntax.Pos, typ types.Type, val constant.Value) {
	x.mode = constant_
	x.pos = pos
	x.typ = typ
	x.val = val
}

// setVar sets the operand to a variable.
func (x *operand) setVar(pos syntax.Pos, typ types.Type) {
	x.mode = variable
	x.pos = pos
	x.typ = typ
	x.val = nil
}

// setValue sets the operand to a computed value.
func (x *operand) setValue(pos syntax.Pos, typ types.Type) {
	x.mode = value
	x.pos = pos
	x.typ = typ
	x.val = nil
}

// isConst reports whether x is a compile-time constant.
func (x *operand) isConst() bool {
	return x.mode == constant_
}

// typeAndValue returns the annotation recorded on the expression node.
func (x *operand) typeAndValue() syntax.TypeAndValue {
	tv := syntax.TypeAndValue{Type: x.typ}
	if x.mode == constant_ {
		tv.Value = x.val
	}
	return tv
}
