package syntax

import (
	"fmt"

	"github.com/golang/glog"
)

// SyntaxError represents a grammar violation.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// bailout carries the first syntax error up to Parse.
type bailout struct{ err *SyntaxError }

// Parser is a recursive-descent parser over a materialized token list.
// Parsing stops at the first syntax error; there is no recovery.
type Parser struct {
	toks []Lexeme
	idx  int // index of the current token

	// Current token info (cached from toks[idx])
	tok  Token
	lit  string
	kind LitKind
	pos  Pos
}

// NewParser creates a parser over toks. A missing trailing EOF is implied.
func NewParser(toks []Lexeme) *Parser {
	p := &Parser{toks: toks, idx: -1}
	p.next()
	return p
}

// Parse parses toks into a File.
func Parse(toks []Lexeme) (*File, error) {
	return NewParser(toks).Parse()
}

// ParseFile tokenizes and parses src.
func ParseFile(filename string, src []byte) (*File, error) {
	toks, err := Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) next() {
	if p.idx+1 < len(p.toks) {
		p.idx++
		l := p.toks[p.idx]
		p.tok, p.lit, p.kind, p.pos = l.Tok, l.Lit, l.Kind, l.Pos
		return
	}
	// Ran off the end: stay on a synthesized EOF.
	if p.tok != _EOF {
		if n := len(p.toks); n > 0 {
			p.pos = p.toks[n-1].Pos
		}
		p.tok, p.lit = _EOF, ""
	}
}

// got consumes the current token if it is tok.
func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

// want consumes tok or fails.
func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected %s, found %s", tokDesc(tok), p.found())
	}
}

// expect is like want but returns the position of the consumed token.
func (p *Parser) expect(tok Token) Pos {
	pos := p.pos
	p.want(tok)
	return pos
}

// separator consumes a statement separator: a newline, or ';' optionally
// followed by a newline. The separator may be omitted before EOF and
// before the keywords closing a body.
func (p *Parser) separator() {
	switch p.tok {
	case _NewLine, _Semi:
		p.skipSeparators()
	case _EOF, _End, _Else:
	default:
		p.syntaxError("expected separator, found %s", p.found())
	}
}

func (p *Parser) skipSeparators() {
	for p.tok.IsSeparator() {
		p.next()
	}
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) syntaxError(format string, args ...interface{}) {
	p.syntaxErrorAt(p.pos, format, args...)
}

func (p *Parser) syntaxErrorAt(pos Pos, format string, args ...interface{}) {
	panic(bailout{&SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}})
}

func (p *Parser) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	b, ok := e.(bailout)
	if !ok {
		// rethrow runtime errors
		panic(e)
	}
	*errp = b.err
}

// found describes the current token for error messages.
func (p *Parser) found() string {
	switch p.tok {
	case _Name:
		return "name " + p.lit
	case _Literal:
		return "literal " + p.lit
	}
	return tokDesc(p.tok)
}

func tokDesc(tok Token) string {
	switch tok {
	case _EOF:
		return "EOF"
	case _NewLine:
		return "newline"
	case _Name:
		return "name"
	case _Literal:
		return "literal"
	}
	return "'" + tok.String() + "'"
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses the whole token list. Only declarations are accepted at
// top level.
func (p *Parser) Parse() (*File, error) {
	f, err := p.file()
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) file() (f *File, err error) {
	defer p.recover(&err)

	f = new(File)
	f.pos = p.pos
	f.Name = p.pos.Filename()
	p.skipSeparators()

	for p.tok != _EOF {
		var d Decl
		switch p.tok {
		case _Var:
			d = p.varDecl()
		case _Type:
			d = p.typeDecl()
		case _Routine:
			d = p.routineDecl()
		default:
			p.syntaxError("only declarations are allowed at top level, found %s", p.found())
		}
		f.Decls = append(f.Decls, d)
		p.separator()
	}

	if glog.V(5) {
		glog.V(5).Infof("parsed %d top-level declarations", len(f.Decls))
	}
	return f, nil
}

// ----------------------------------------------------------------------------
// Declarations

// varDecl parses "var" Name [":" Type] ["is" Expr].
func (p *Parser) varDecl() *VarDecl {
	d := new(VarDecl)
	d.pos = p.expect(_Var)
	d.Name = p.name()

	if p.got(_Colon) {
		d.Type = p.type_()
	}
	if p.got(_Is) {
		d.Value = p.expr()
	}
	if d.Type == nil && d.Value == nil {
		p.syntaxError("expected ':' or 'is' in declaration of %s, found %s", d.Name.Value, p.found())
	}
	return d
}

// typeDecl parses "type" Name "is" Type.
func (p *Parser) typeDecl() *TypeDecl {
	d := new(TypeDecl)
	d.pos = p.expect(_Type)
	d.Name = p.name()
	p.want(_Is)
	d.Type = p.type_()
	return d
}

// routineDecl parses
//
//	"routine" Name "(" [Params] ")" [":" Type] ["is" Body "end" | "=>" Expr]
func (p *Parser) routineDecl() *RoutineDecl {
	d := new(RoutineDecl)
	d.pos = p.expect(_Routine)
	d.Name = p.name()

	p.want(_Lparen)
	if p.tok != _Rparen {
		for {
			d.Params = append(d.Params, p.param())
			if !p.got(_Comma) {
				break
			}
		}
	}
	p.want(_Rparen)

	if p.got(_Colon) {
		d.Result = p.type_()
	}

	switch p.tok {
	case _Is:
		p.next()
		d.Body = p.block(_End)
		p.want(_End)
	case _Arrow:
		b := new(ExprBody)
		b.pos = p.pos
		p.next()
		b.X = p.expr()
		d.Body = b
	case _NewLine, _Semi, _EOF:
		// forward declaration
	default:
		p.syntaxError("expected 'is', '=>' or separator after routine header, found %s", p.found())
	}
	return d
}

func (p *Parser) param() *Field {
	f := new(Field)
	f.pos = p.pos
	f.Name = p.name()
	p.want(_Colon)
	f.Type = p.type_()
	return f
}

func (p *Parser) name() *Name {
	if p.tok != _Name {
		p.syntaxError("expected name, found %s", p.found())
	}
	n := new(Name)
	n.pos = p.pos
	n.Value = p.lit
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Types

func (p *Parser) type_() TypeExpr {
	pos := p.pos
	switch p.tok {
	case _Integer, _Real, _Boolean:
		t := new(PrimitiveType)
		t.pos = pos
		switch p.tok {
		case _Integer:
			t.Kind = IntLit
		case _Real:
			t.Kind = RealLit
		default:
			t.Kind = BoolLit
		}
		p.next()
		return t

	case _Name:
		t := new(NamedType)
		t.pos = pos
		t.Name = p.name()
		return t

	case _Array:
		return p.arrayType()

	case _Record:
		return p.recordType()
	}

	p.syntaxError("expected type, found %s", p.found())
	return nil
}

// arrayType parses "array" "[" [Expr] "]" Type.
func (p *Parser) arrayType() *ArrayType {
	t := new(ArrayType)
	t.pos = p.expect(_Array)
	p.want(_Lbrack)
	if p.tok != _Rbrack {
		t.Len = p.expr()
	}
	p.want(_Rbrack)
	t.Elem = p.type_()
	return t
}

// recordType parses "record" { VarDecl sep } "end".
func (p *Parser) recordType() *RecordType {
	t := new(RecordType)
	t.pos = p.expect(_Record)
	p.skipSeparators()
	for p.tok == _Var {
		t.Fields = append(t.Fields, p.varDecl())
		p.separator()
	}
	p.want(_End)
	return t
}

// ----------------------------------------------------------------------------
// Statements

// block parses statements up to, not including, one of the closing tokens.
func (p *Parser) block(closers ...Token) *Block {
	b := new(Block)
	b.pos = p.pos
	p.skipSeparators()

	for !p.closes(closers) && p.tok != _EOF {
		b.Stmts = append(b.Stmts, p.stmt())
		p.separator()
	}
	b.Close = p.pos
	return b
}

func (p *Parser) closes(closers []Token) bool {
	for _, c := range closers {
		if p.tok == c {
			return true
		}
	}
	return false
}

func (p *Parser) stmt() Stmt {
	switch p.tok {
	case _Var:
		s := new(DeclStmt)
		s.pos = p.pos
		s.Decl = p.varDecl()
		return s
	case _Type:
		s := new(DeclStmt)
		s.pos = p.pos
		s.Decl = p.typeDecl()
		return s
	case _While:
		return p.whileStmt()
	case _For:
		return p.forStmt()
	case _If:
		return p.ifStmt()
	case _Print:
		return p.printStmt()
	case _Return:
		return p.returnStmt()
	case _Name:
		return p.simpleStmt()
	}

	p.syntaxError("expected statement, found %s", p.found())
	return nil
}

// simpleStmt parses a call statement or an assignment.
func (p *Parser) simpleStmt() Stmt {
	name := p.name()
	if p.tok == _Lparen {
		s := new(CallStmt)
		s.pos = name.pos
		s.Call = p.call(name)
		return s
	}

	s := new(AssignStmt)
	s.pos = name.pos
	s.Lhs = p.modifiable(name)
	p.want(_Assign)
	s.Rhs = p.expr()
	return s
}

// whileStmt parses "while" Expr "loop" Body "end".
func (p *Parser) whileStmt() *WhileStmt {
	s := new(WhileStmt)
	s.pos = p.expect(_While)
	s.Cond = p.expr()
	p.want(_Loop)
	s.Body = p.block(_End)
	p.want(_End)
	return s
}

// forStmt parses
//
//	"for" Name "in" ["reverse"] Expr [".." Expr] ["reverse"] "loop" Body "end"
func (p *Parser) forStmt() *ForStmt {
	s := new(ForStmt)
	s.pos = p.expect(_For)
	s.Iter = p.name()
	p.want(_In)

	s.Reverse = p.got(_Reverse)
	s.Start = p.expr()
	if p.got(_DotDot) {
		s.End = p.expr()
		s.Kind = RangeLoop
	}
	if p.tok == _Reverse {
		if s.Reverse {
			p.syntaxError("duplicate 'reverse' in for loop")
		}
		s.Reverse = true
		p.next()
	}

	p.want(_Loop)
	s.Body = p.block(_End)
	p.want(_End)
	return s
}

// ifStmt parses "if" Expr "then" Body ["else" Body] "end".
func (p *Parser) ifStmt() *IfStmt {
	s := new(IfStmt)
	s.pos = p.expect(_If)
	s.Cond = p.expr()
	p.want(_Then)
	s.Then = p.block(_End, _Else)
	if p.got(_Else) {
		s.Else = p.block(_End)
	}
	p.want(_End)
	return s
}

// printStmt parses "print" Expr {"," Expr}.
func (p *Parser) printStmt() *PrintStmt {
	s := new(PrintStmt)
	s.pos = p.expect(_Print)
	s.Args = p.exprList()
	return s
}

// returnStmt parses "return" [Expr].
func (p *Parser) returnStmt() *ReturnStmt {
	s := new(ReturnStmt)
	s.pos = p.expect(_Return)
	switch p.tok {
	case _NewLine, _Semi, _End, _Else, _EOF:
	default:
		s.Result = p.expr()
	}
	return s
}

// ----------------------------------------------------------------------------
// Expressions
//
// Precedence, lowest to highest:
//
//	and or xor
//	< <= > >= = /=   (non-chaining)
//	+ -
//	* / %
//	unary + - not
//	primary

func (p *Parser) expr() Expr {
	x := p.relation()
	for p.tok == _And || p.tok == _Or || p.tok == _Xor {
		x = p.binary(x, p.relation)
	}
	return x
}

func (p *Parser) relation() Expr {
	x := p.simple()
	switch p.tok {
	case _Lss, _Leq, _Gtr, _Geq, _Eql, _Neq:
		x = p.binary(x, p.simple)
	}
	return x
}

func (p *Parser) simple() Expr {
	x := p.term()
	for p.tok == _Add || p.tok == _Sub {
		x = p.binary(x, p.term)
	}
	return x
}

func (p *Parser) term() Expr {
	x := p.unary()
	for p.tok == _Mul || p.tok == _Div || p.tok == _Rem {
		x = p.binary(x, p.unary)
	}
	return x
}

// binary consumes the current operator token and its right operand.
func (p *Parser) binary(x Expr, operand func() Expr) Expr {
	op := new(Operation)
	op.pos = p.pos
	op.Op = binaryOps[p.tok]
	p.next()
	op.X = x
	op.Y = operand()
	return op
}

// unary parses a prefix operator applied to a primary.
func (p *Parser) unary() Expr {
	if op, ok := unaryOps[p.tok]; ok {
		x := new(Operation)
		x.pos = p.pos
		x.Op = op
		p.next()
		x.X = p.primary()
		return x
	}
	return p.primary()
}

func (p *Parser) primary() Expr {
	switch p.tok {
	case _Literal:
		x := new(BasicLit)
		x.pos = p.pos
		x.Value = p.lit
		x.Kind = p.kind
		p.next()
		return x

	case _True, _False:
		x := new(BasicLit)
		x.pos = p.pos
		x.Value = p.tok.String()
		x.Kind = BoolLit
		p.next()
		return x

	case _Name:
		name := p.name()
		if p.tok == _Lparen {
			return p.call(name)
		}
		return p.modifiable(name)

	case _Lparen:
		p.next()
		x := p.expr()
		p.want(_Rparen)
		return x
	}

	p.syntaxError("expected expression, found %s", p.found())
	return nil
}

// call parses the argument list of Fun(Args...).
func (p *Parser) call(fun *Name) *CallExpr {
	x := new(CallExpr)
	x.pos = fun.pos
	x.Fun = fun
	p.want(_Lparen)
	if p.tok != _Rparen {
		x.Args = p.exprList()
	}
	p.want(_Rparen)
	return x
}

// modifiable greedily parses the access chain following base.
func (p *Parser) modifiable(base *Name) *ModifiablePrimary {
	x := new(ModifiablePrimary)
	x.pos = base.pos
	x.Base = base
	for {
		switch p.tok {
		case _Dot:
			a := new(FieldAccess)
			a.pos = p.pos
			p.next()
			a.Sel = p.name()
			x.Chain = append(x.Chain, a)
		case _Lbrack:
			a := new(IndexAccess)
			a.pos = p.pos
			p.next()
			a.Index = p.expr()
			p.want(_Rbrack)
			x.Chain = append(x.Chain, a)
		default:
			return x
		}
	}
}

func (p *Parser) exprList() []Expr {
	list := []Expr{p.expr()}
	for p.got(_Comma) {
		list = append(list, p.expr())
	}
	return list
}
