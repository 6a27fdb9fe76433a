// Package syntax implements lexical and syntactic analysis for the
// Imperative language: a scanner, a clean-up stage over its token stream,
// and a recursive-descent parser producing the AST.
package syntax

import "fmt"

// Token represents the kind of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF     Token = iota // end of file
	_Error                // lexical error
	_NewLine              // significant line break

	// Literals
	_Name    // identifier: foo, Point
	_Literal // integer or real literal (see LitKind)

	// Operators
	_Assign // :=
	_Arrow  // =>

	_Eql // =
	_Neq // /=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	_Add // +
	_Sub // -

	_Mul // *
	_Div // /
	_Rem // %

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Comma  // ,
	_Semi   // ;
	_Colon  // :
	_Dot    // .
	_DotDot // ..

	// Keywords
	_And
	_Array
	_Boolean
	_Else
	_End
	_False
	_For
	_If
	_In
	_Integer
	_Is
	_Loop
	_Not
	_Or
	_Print
	_Real
	_Record
	_Return
	_Reverse
	_Routine
	_Then
	_True
	_Type
	_Var
	_While
	_Xor

	tokenCount
)

var tokenNames = [...]string{
	_EOF:     "EOF",
	_Error:   "ERROR",
	_NewLine: "NEWLINE",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign: ":=",
	_Arrow:  "=>",

	_Eql: "=",
	_Neq: "/=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",

	_Mul: "*",
	_Div: "/",
	_Rem: "%",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Comma:  ",",
	_Semi:   ";",
	_Colon:  ":",
	_Dot:    ".",
	_DotDot: "..",

	_And:     "and",
	_Array:   "array",
	_Boolean: "boolean",
	_Else:    "else",
	_End:     "end",
	_False:   "false",
	_For:     "for",
	_If:      "if",
	_In:      "in",
	_Integer: "integer",
	_Is:      "is",
	_Loop:    "loop",
	_Not:     "not",
	_Or:      "or",
	_Print:   "print",
	_Real:    "real",
	_Record:  "record",
	_Return:  "return",
	_Reverse: "reverse",
	_Routine: "routine",
	_Then:    "then",
	_True:    "true",
	_Type:    "type",
	_Var:     "var",
	_While:   "while",
	_Xor:     "xor",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _And && t <= _Xor
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Rem
}

// IsSeparator reports whether t separates statements.
func (t Token) IsSeparator() bool {
	return t == _NewLine || t == _Semi
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// LitKind represents the kind of a literal.
type LitKind uint8

const (
	IntLit  LitKind = iota // 42
	RealLit                // 3.14
	BoolLit                // true, false
)

var litKindNames = [...]string{
	IntLit:  "integer",
	RealLit: "real",
	BoolLit: "boolean",
}

func (k LitKind) String() string {
	if k <= BoolLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token, _Xor-_And+1)
	for t := _And; t <= _Xor; t++ {
		keywords[tokenNames[t]] = t
	}
}

// LookupKeyword returns the keyword token for ident, or _Name if ident
// is not a keyword. Keywords are case-sensitive.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
