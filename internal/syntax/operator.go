package syntax

import "fmt"

// Operator is a unary or binary expression operator.
type Operator uint8

const (
	_ Operator = iota

	// arithmetic
	Add // +
	Sub // -
	Mul // *
	Div // /
	Rem // %

	// relational
	Eql // =
	Neq // /=
	Lss // <
	Leq // <=
	Gtr // >
	Geq // >=

	// logical
	And // and
	Or  // or
	Xor // xor
	Not // not
)

var operatorNames = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Rem: "%",
	Eql: "=",
	Neq: "/=",
	Lss: "<",
	Leq: "<=",
	Gtr: ">",
	Geq: ">=",
	And: "and",
	Or:  "or",
	Xor: "xor",
	Not: "not",
}

func (op Operator) String() string {
	if op > 0 && int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", op)
}

func (op Operator) IsArithmetic() bool { return Add <= op && op <= Rem }
func (op Operator) IsRelational() bool { return Eql <= op && op <= Geq }
func (op Operator) IsLogical() bool    { return And <= op && op <= Not }

// binaryOps maps operator tokens to their binary operator.
var binaryOps = map[Token]Operator{
	_Add: Add, _Sub: Sub,
	_Mul: Mul, _Div: Div, _Rem: Rem,
	_Eql: Eql, _Neq: Neq, _Lss: Lss, _Leq: Leq, _Gtr: Gtr, _Geq: Geq,
	_And: And, _Or: Or, _Xor: Xor,
}

// unaryOps maps prefix tokens to their unary operator.
var unaryOps = map[Token]Operator{
	_Add: Add,
	_Sub: Sub,
	_Not: Not,
}
