package syntax

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func kinds(toks []Lexeme) []Token {
	out := make([]Token, len(toks))
	for i, l := range toks {
		out[i] = l.Tok
	}
	return out
}

func TestTokensRestartable(t *testing.T) {
	seq := Tokens("test.impp", []byte("var x is 1\nprint x"))

	var first, second []Lexeme
	for l, err := range seq {
		require.NoError(t, err)
		first = append(first, l)
	}
	for l, err := range seq {
		require.NoError(t, err)
		second = append(second, l)
	}
	assert.Equal(t, first, second)
	assert.Equal(t, _EOF, first[len(first)-1].Tok)
}

func TestTokensEarlyStop(t *testing.T) {
	n := 0
	for range Tokens("", []byte("a b c d")) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestTokensError(t *testing.T) {
	var errs []error
	var toks []Token
	for l, err := range Tokens("", []byte("a ? b")) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		toks = append(toks, l.Tok)
	}
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], `1:3: unexpected character '?'`)
	assert.Equal(t, []Token{_Name}, toks)
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize("", []byte("\n\n// header\nvar x is 1;\n\n\nvar y is 2\n\n"))
	require.NoError(t, err)
	assert.Equal(t, []Token{
		_Var, _Name, _Is, _Literal, _Semi,
		_Var, _Name, _Is, _Literal,
		_EOF,
	}, kinds(toks))

	_, err = Tokenize("", []byte("var x is 1.2.3"))
	var lerr *LexicalError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "too many dots in a real number", lerr.Msg)
}

func TestCleanUp(t *testing.T) {
	lex := func(toks ...Token) []Lexeme {
		out := make([]Lexeme, len(toks))
		for i, tok := range toks {
			out[i] = Lexeme{Tok: tok}
		}
		return out
	}

	tests := []struct {
		name string
		in   []Token
		want []Token
	}{
		{"empty", nil, []Token{}},
		{"eof_only", []Token{_EOF}, []Token{_EOF}},
		{"leading", []Token{_NewLine, _Semi, _Name, _EOF}, []Token{_Name, _EOF}},
		{"trailing", []Token{_Name, _NewLine, _NewLine, _EOF}, []Token{_Name, _EOF}},
		{"semi_newline", []Token{_Name, _Semi, _NewLine, _Name, _EOF}, []Token{_Name, _Semi, _Name, _EOF}},
		{"newline_semi", []Token{_Name, _NewLine, _Semi, _Name, _EOF}, []Token{_Name, _NewLine, _Name, _EOF}},
		{"untouched", []Token{_Name, _Comma, _Name, _EOF}, []Token{_Name, _Comma, _Name, _EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := lex(tt.in...)
			orig := slices.Clone(in)
			assert.Equal(t, tt.want, kinds(CleanUp(in)))
			assert.Equal(t, orig, in, "input must not be modified")
		})
	}
}

func TestCleanUpIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool := []Token{_Name, _NewLine, _Semi, _Comma, _End}
		body := rapid.SliceOf(rapid.SampledFrom(pool)).Draw(t, "tokens")

		in := make([]Lexeme, 0, len(body)+1)
		for _, tok := range body {
			in = append(in, Lexeme{Tok: tok})
		}
		in = append(in, Lexeme{Tok: _EOF})

		once := CleanUp(in)
		twice := CleanUp(once)
		if !assert.Equal(t, once, twice) {
			return
		}

		for i, l := range once {
			if !l.Tok.IsSeparator() {
				continue
			}
			if i == 0 {
				t.Fatalf("leading separator in %v", kinds(once))
			}
			if once[i-1].Tok.IsSeparator() {
				t.Fatalf("adjacent separators in %v", kinds(once))
			}
			if once[i+1].Tok == _EOF {
				t.Fatalf("separator before EOF in %v", kinds(once))
			}
		}
	})
}

// TestLexemeRoundTrip checks that the lexemes of a token stream reproduce
// the source words, whatever whitespace and comments separate them.
func TestLexemeRoundTrip(t *testing.T) {
	symbols := []string{
		":=", ":", "+", "-", "*", "/", "%", "<", "<=", ">", ">=", "=", "/=",
		"=>", "..", ".", ",", ";", "(", ")", "[", "]",
	}
	word := rapid.OneOf(
		rapid.StringMatching(`[a-zA-Z_][a-zA-Z0-9_]{0,8}`),
		rapid.StringMatching(`[0-9]{1,6}`),
		rapid.StringMatching(`[0-9]{1,4}\.[0-9]{1,4}`),
		rapid.SampledFrom(symbols),
	)
	gap := rapid.SampledFrom([]string{" ", "  ", "\t", " \n ", " // comment\n", "\r\n"})

	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(word, 1, 30).Draw(t, "words")

		var src strings.Builder
		for i, w := range words {
			if i > 0 {
				src.WriteString(gap.Draw(t, "gap"))
			}
			src.WriteString(w)
		}

		var got []string
		for l, err := range Tokens("", []byte(src.String())) {
			if err != nil {
				t.Fatalf("tokenizing %q: %v", src.String(), err)
			}
			if l.Tok == _NewLine || l.Tok == _EOF {
				continue
			}
			got = append(got, l.Lit)
		}
		assert.Equal(t, words, got, "source %q", src.String())
	})
}
