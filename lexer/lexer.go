package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const reserved = "+-*/%=<>!()[],\""

// Normalize folds a raw source line into the form the lexer expects:
// NFC composition for Thai vowel and tone marks, and half-width ASCII for
// full-width input typed through an IME.
func Normalize(line string) string {
	line = strings.TrimPrefix(line, "\uFEFF")
	return width.Narrow.String(norm.NFC.String(line))
}

// Lex converts one line into tokens terminated by EOF. Characters that do
// not start any token are dropped without a diagnostic.
func Lex(line string) []Token {
	s := Normalize(line)
	toks := make([]Token, 0, len(s)/2+1)
	for i := 0; i < len(s); {
		tok, n := scan(s[i:])
		i += n
		if tok.Kind != EOF {
			toks = append(toks, tok)
		}
	}
	return append(toks, Token{Kind: EOF})
}

// First lexes only the leading token of line.
func First(line string) Token {
	s := Normalize(line)
	for i := 0; i < len(s); {
		tok, n := scan(s[i:])
		i += n
		if tok.Kind != EOF {
			return tok
		}
	}
	return Token{Kind: EOF}
}

// scan reads one token at the start of s. A returned EOF kind means the
// consumed bytes produced no token.
func scan(s string) (Token, int) {
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case unicode.IsSpace(r):
		return Token{Kind: EOF}, size
	case r == '"':
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return Token{Kind: STRING, Text: s[1:]}, len(s)
		}
		return Token{Kind: STRING, Text: s[1 : end+1]}, end + 2
	case isDigit(r) || (r == '.' && len(s) > 1 && isDigit(rune(s[1]))):
		return scanNumber(s)
	}

	if kw, n, ok := matchKeyword(s); ok {
		text := s[:n]
		if kw.canonical != "" {
			text = kw.canonical
		}
		return Token{Kind: kw.kind, Text: text}, n
	}

	if len(s) >= 2 {
		if k, ok := twoCharOps[s[:2]]; ok {
			return Token{Kind: k, Text: s[:2]}, 2
		}
	}
	if k, ok := oneCharOps[r]; ok {
		return Token{Kind: k, Text: string(r)}, size
	}
	if !isIdentRune(r) {
		return Token{Kind: EOF}, size
	}

	j := size
	for j < len(s) {
		c, n := utf8.DecodeRuneInString(s[j:])
		if !isIdentRune(c) {
			break
		}
		j += n
	}
	return Token{Kind: ID, Text: s[:j]}, j
}

func scanNumber(s string) (Token, int) {
	j := 0
	dot := false
	for j < len(s) {
		c := s[j]
		if c == '.' && !dot {
			dot = true
			j++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		j++
	}
	return Token{Kind: NUM, Text: s[:j]}, j
}

var twoCharOps = map[string]Kind{
	"**": POWER,
	"==": EQ,
	"!=": NEQ,
	"<=": LTE,
	">=": GTE,
	"+=": PLUSEQ,
	"-=": MINUSEQ,
	"*=": STAREQ,
	"/=": SLASHEQ,
}

var oneCharOps = map[rune]Kind{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'=': ASSIGN,
	'<': LT,
	'>': GT,
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACKET,
	']': RBRACKET,
	',': COMMA,
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentRune(r rune) bool {
	if r == utf8.RuneError || unicode.IsSpace(r) || unicode.IsControl(r) {
		return false
	}
	return !strings.ContainsRune(reserved, r)
}
