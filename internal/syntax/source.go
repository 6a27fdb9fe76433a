package syntax

import (
	"unicode"
	"unicode/utf8"
)

// source is a character reader with position tracking over an in-memory
// buffer. The buffer is never modified, so a source can be rebuilt over the
// same bytes to restart scanning.
type source struct {
	buf      []byte
	filename string

	line uint32 // line of ch (1-based)
	col  uint32 // column of ch (1-based, in characters)

	ch    rune // current character, -1 at EOF
	offs  int  // byte offset just past ch
	start int  // byte offset of ch

	errh func(line, col uint32, msg string)
}

func newSource(filename string, buf []byte, errh func(line, col uint32, msg string)) *source {
	s := &source{
		buf:      buf,
		filename: filename,
		line:     1,
		col:      0,  // incremented to 1 by the first nextch
		ch:       -1, // "before first char"
		errh:     errh,
	}
	s.nextch()
	return s
}

// nextch advances to the next character. (line, col) always describe s.ch.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.start = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.ch = r
	s.offs += width
}

// peek returns the character after s.ch without consuming anything.
func (s *source) peek() rune {
	if s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.offs:])
	return r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col).WithOffset(s.start)
}

func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

// isLetter reports whether r may start an identifier.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is intra-line whitespace.
// '\n' is a token and is not included.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\f' || r == '\v'
}

// isSymbolStart reports whether r can start an operator or delimiter.
func isSymbolStart(r rune) bool {
	switch r {
	case ':', '+', '-', '*', '/', '%', '<', '>', '=',
		'(', ')', '[', ']', '.', ',', ';':
		return true
	}
	return false
}

// isTokenBoundary reports whether r may directly follow a name or number.
func isTokenBoundary(r rune) bool {
	return r < 0 || r == '\n' || isWhitespace(r) || isSymbolStart(r)
}
