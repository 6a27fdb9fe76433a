package syntax

import (
	"fmt"
	"iter"

	"github.com/golang/glog"
)

// Lexeme is one scanned token: its kind, literal text and start position.
// Lexemes are immutable values.
type Lexeme struct {
	Tok  Token
	Lit  string
	Kind LitKind // only meaningful for _Literal
	Pos  Pos
}

func (l Lexeme) String() string {
	switch l.Tok {
	case _Name, _Literal:
		return fmt.Sprintf("%s %s %q", l.Pos, l.Tok, l.Lit)
	case _NewLine:
		return fmt.Sprintf("%s %s", l.Pos, l.Tok)
	}
	return fmt.Sprintf("%s %q", l.Pos, l.Tok.String())
}

// LexicalError reports a character sequence that cannot form a token.
type LexicalError struct {
	Pos Pos
	Msg string
}

func (e *LexicalError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Tokens returns the token sequence of src. The sequence is lazy and
// restartable: each range over it scans src from the beginning. It ends
// with an EOF lexeme, or with an _Error lexeme paired with its
// *LexicalError.
func Tokens(filename string, src []byte) iter.Seq2[Lexeme, error] {
	return func(yield func(Lexeme, error) bool) {
		s := NewScanner(filename, src)
		for {
			s.Next()
			if s.tok == _Error {
				yield(Lexeme{Tok: _Error, Pos: s.err.Pos}, s.err)
				return
			}
			if glog.V(7) {
				glog.V(7).Infof("token %s", s.Lexeme())
			}
			if !yield(s.Lexeme(), nil) || s.tok == _EOF {
				return
			}
		}
	}
}

// Tokenize scans all of src and returns the cleaned-up token list,
// always terminated by EOF.
func Tokenize(filename string, src []byte) ([]Lexeme, error) {
	var toks []Lexeme
	for l, err := range Tokens(filename, src) {
		if err != nil {
			return nil, err
		}
		toks = append(toks, l)
	}
	cleaned := CleanUp(toks)
	if glog.V(5) {
		glog.V(5).Infof("tokenize %s: %d tokens (%d after clean-up)", filename, len(toks), len(cleaned))
	}
	return cleaned, nil
}

// CleanUp normalizes separators in a token list:
//
//   - a run of separators (newlines and ';') collapses to its first token,
//   - separators at the start of the stream are dropped,
//   - separators directly before EOF are dropped.
//
// CleanUp does not modify toks, and CleanUp(CleanUp(x)) == CleanUp(x).
func CleanUp(toks []Lexeme) []Lexeme {
	out := make([]Lexeme, 0, len(toks))
	for _, l := range toks {
		if l.Tok.IsSeparator() {
			if len(out) == 0 || out[len(out)-1].Tok.IsSeparator() {
				continue
			}
		}
		if l.Tok == _EOF {
			for len(out) > 0 && out[len(out)-1].Tok.IsSeparator() {
				out = out[:len(out)-1]
			}
		}
		out = append(out, l)
	}
	return out
}
