package syntax

import (
	"fmt"
	"strings"
)

// Scanner performs lexical analysis on Imperative source code.
// It stops at the first lexical error: from then on Next reports _Error.
type Scanner struct {
	source

	// Current token info
	tok    Token
	lit    string
	kind   LitKind // only valid when tok == _Literal
	tokPos Pos

	err *LexicalError

	litBuf strings.Builder
}

// NewScanner creates a new Scanner over src.
func NewScanner(filename string, src []byte) *Scanner {
	s := new(Scanner)
	s.source = *newSource(filename, src, func(line, col uint32, msg string) {
		s.errorAt(NewPos(filename, line, col).WithOffset(s.start), msg)
	})
	return s
}

// Next advances to the next token.
func (s *Scanner) Next() {
	if s.err != nil {
		s.tok = _Error
		return
	}

redo:
	s.skipWhitespace()
	s.tokPos = s.pos()
	s.lit = ""
	s.kind = IntLit

	switch {
	case s.ch < 0:
		s.tok = _EOF

	case s.ch == '\n':
		s.nextch()
		s.tok = _NewLine
		s.lit = "\n"

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case isSymbolStart(s.ch):
		if s.scanOperator() {
			goto redo
		}

	default:
		s.errorAt(s.tokPos, fmt.Sprintf("unexpected character %q", s.ch))
	}

	if s.err != nil {
		s.tok = _Error
	}
}

func (s *Scanner) Token() Token     { return s.tok }
func (s *Scanner) Literal() string  { return s.lit }
func (s *Scanner) LitKind() LitKind { return s.kind }
func (s *Scanner) Pos() Pos         { return s.tokPos }

// Err returns the lexical error that stopped the scanner, if any.
func (s *Scanner) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// Lexeme returns the current token as a value.
func (s *Scanner) Lexeme() Lexeme {
	return Lexeme{Tok: s.tok, Lit: s.lit, Kind: s.kind, Pos: s.tokPos}
}

func (s *Scanner) errorAt(pos Pos, msg string) {
	if s.err == nil {
		s.err = &LexicalError{Pos: pos, Msg: msg}
	}
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	if !isTokenBoundary(s.ch) {
		s.errorAt(s.pos(), fmt.Sprintf("invalid character %q in identifier", s.ch))
		return
	}

	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans an integer or real literal. A '.' directly followed by
// another '.' ends the literal so that ranges such as 1..10 scan correctly.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	dots := 0
	for {
		if isDigit(s.ch) {
			s.litBuf.WriteRune(s.ch)
			s.nextch()
			continue
		}
		if s.ch == '.' && s.peek() != '.' {
			dots++
			s.litBuf.WriteRune(s.ch)
			s.nextch()
			continue
		}
		break
	}

	if dots > 1 {
		s.errorAt(s.tokPos, "too many dots in a real number")
		return
	}
	if !isTokenBoundary(s.ch) {
		s.errorAt(s.pos(), fmt.Sprintf("invalid character %q in numeric literal", s.ch))
		return
	}

	s.lit = s.litBuf.String()
	s.tok = _Literal
	s.kind = IntLit
	if dots == 1 {
		s.kind = RealLit
	}
}

// scanOperator scans an operator or delimiter.
// It reports true if a comment was skipped instead (the caller rescans).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case ':':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Assign
		} else {
			s.tok = _Colon
		}
	case '+':
		s.tok = _Add
	case '-':
		s.tok = _Sub
	case '*':
		s.tok = _Mul
	case '%':
		s.tok = _Rem
	case '/':
		switch s.ch {
		case '/':
			s.skipLineComment()
			return true
		case '=':
			s.nextch()
			s.tok = _Neq
		default:
			s.tok = _Div
		}
	case '<':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Leq
		} else {
			s.tok = _Lss
		}
	case '>':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Geq
		} else {
			s.tok = _Gtr
		}
	case '=':
		if s.ch == '>' {
			s.nextch()
			s.tok = _Arrow
		} else {
			s.tok = _Eql
		}
	case '.':
		if s.ch == '.' {
			s.nextch()
			s.tok = _DotDot
		} else {
			s.tok = _Dot
		}
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '[':
		s.tok = _Lbrack
	case ']':
		s.tok = _Rbrack
	case ',':
		s.tok = _Comma
	case ';':
		s.tok = _Semi
	}

	s.lit = s.tok.String()
	return false
}

// skipLineComment skips up to, but not including, the terminating newline.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
