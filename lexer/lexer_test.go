package lexer

import (
	"strings"
	"testing"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func sameKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexStatements(t *testing.T) {
	cases := []struct {
		line string
		want []Kind
	}{
		{"give x = 2.50 + 1", []Kind{GIVE, ID, ASSIGN, NUM, PLUS, NUM, EOF}},
		{"ให้ x += 3", []Kind{GIVE, ID, PLUSEQ, NUM, EOF}},
		{"หา x ** 2", []Kind{FIND, ID, POWER, NUM, EOF}},
		{"ถ้า x >= 1 และ y != 2", []Kind{IF, ID, GTE, NUM, AND, ID, NEQ, NUM, EOF}},
		{"ถ้าไม่", []Kind{ELSE, EOF}},
		{"สำหรับ i = 1 ถึง 3", []Kind{FOR, ID, ASSIGN, NUM, TO, NUM, EOF}},
		{"for i = 1 to 3", []Kind{FOR, ID, ASSIGN, NUM, TO, NUM, EOF}},
		{"array a[5]", []Kind{ARRAY, ID, LBRACKET, NUM, RBRACKET, EOF}},
		{"func add(a, b)", []Kind{FUNC, ID, LPAREN, ID, COMMA, ID, RPAREN, EOF}},
		{"find sqrt(16)", []Kind{FIND, MATHFN, LPAREN, NUM, RPAREN, EOF}},
		{"พิมพ์บรรทัด \"สวัสดี\"", []Kind{PRINTLN, STRING, EOF}},
		{"พิมพ์ 1", []Kind{PRINT, NUM, EOF}},
		{"จบฟังก์ชัน", []Kind{END, EOF}},
		{"จบ", []Kind{END, EOF}},
		{"x /= 2", []Kind{ID, SLASHEQ, NUM, EOF}},
		{"", []Kind{EOF}},
	}
	for _, tc := range cases {
		got := kinds(Lex(tc.line))
		if !sameKinds(got, tc.want) {
			t.Fatalf("Lex(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestLexASCIIKeywordsNeedBoundary(t *testing.T) {
	toks := Lex("give format = total")
	want := []Kind{GIVE, ID, ASSIGN, ID, EOF}
	if !sameKinds(kinds(toks), want) {
		t.Fatalf("unexpected kinds: %v", kinds(toks))
	}
	if toks[1].Text != "format" || toks[3].Text != "total" {
		t.Fatalf("unexpected identifiers: %q %q", toks[1].Text, toks[3].Text)
	}
}

func TestLexASCIIKeywordsAreCaseSensitive(t *testing.T) {
	toks := Lex("give End = Find + To")
	want := []Kind{GIVE, ID, ASSIGN, ID, PLUS, ID, EOF}
	if !sameKinds(kinds(toks), want) {
		t.Fatalf("unexpected kinds: %v", kinds(toks))
	}
	if toks[1].Text != "End" || toks[3].Text != "Find" || toks[5].Text != "To" {
		t.Fatalf("unexpected identifiers: %q %q %q", toks[1].Text, toks[3].Text, toks[5].Text)
	}
	if tok := First("FIND 1"); tok.Kind != ID {
		t.Fatalf("upper-case spelling must lex as a name, got %s", tok.Kind)
	}
}

func TestLexNumberAndStringText(t *testing.T) {
	toks := Lex(`print "a b" 12.340`)
	if toks[1].Kind != STRING || toks[1].Text != "a b" {
		t.Fatalf("unexpected string token: %+v", toks[1])
	}
	if toks[2].Kind != NUM || toks[2].Text != "12.340" {
		t.Fatalf("unexpected number token: %+v", toks[2])
	}
}

func TestLexSkipsUnknownCharacters(t *testing.T) {
	got := kinds(Lex("find 1 ! + \x01 2"))
	want := []Kind{FIND, NUM, PLUS, NUM, EOF}
	if !sameKinds(got, want) {
		t.Fatalf("unexpected kinds: %v", got)
	}
}

func TestLexFullWidthInput(t *testing.T) {
	got := Lex("ｘ＝１２")
	want := []Kind{ID, ASSIGN, NUM, EOF}
	if !sameKinds(kinds(got), want) {
		t.Fatalf("unexpected kinds: %v", kinds(got))
	}
	if got[0].Text != "x" || got[2].Text != "12" {
		t.Fatalf("unexpected texts: %+v", got)
	}
}

func TestFirstOnlyReadsLeadingToken(t *testing.T) {
	if tok := First("   ขณะที่ x < 3"); tok.Kind != WHILE {
		t.Fatalf("unexpected first token: %+v", tok)
	}
	if tok := First("   "); tok.Kind != EOF {
		t.Fatalf("expected EOF, got %+v", tok)
	}
}

func TestRuleOrderHasNoShadowedSpelling(t *testing.T) {
	for i, a := range rules {
		for _, b := range rules[i+1:] {
			if a.ascii || b.ascii {
				continue
			}
			if strings.HasPrefix(b.spelling, a.spelling) {
				t.Fatalf("rule %q shadows later rule %q", a.spelling, b.spelling)
			}
		}
	}
}
