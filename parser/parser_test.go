package parser

import (
	"errors"
	"testing"

	"github.com/gosuda/aeroki/lexer"
)

func TestParseExprPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"2 ** 3 ** 2", "(** (** 2 3) 2)"},
		{"-2 ** 2", "(** (- 2) 2)"},
		{"10 % 4 - 1", "(- (% 10 4) 1)"},
		{"2.50 + x", "(+ 2.50 x)"},
		{"a[i + 1] * 2", "(* a[(+ i 1)] 2)"},
		{"add(1, b) + 1", "(+ (call add 1 b) 1)"},
		{"sqrt(16) + abs -3", "(+ (sqrt 16) (abs (- 3)))"},
		{"len a + pop(b)", "(+ (len a) (pop b))"},
	}
	for _, tc := range cases {
		tree, err := ParseExpr(lexer.Lex(tc.src))
		if err != nil {
			t.Fatalf("ParseExpr(%q) failed: %v", tc.src, err)
		}
		if got := tree.String(); got != tc.want {
			t.Fatalf("ParseExpr(%q) = %s, want %s", tc.src, got, tc.want)
		}
	}
}

func TestParseCond(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x < 3", "(< x 3)"},
		{"x", "x"},
		{"x >= 1 and y != 2 or z", "(OR (AND (>= x 1) (!= y 2)) z)"},
		{"not x == 1", "(NOT (== x 1))"},
		{"(x < 1) and (y > 2)", "(AND (< x 1) (> y 2))"},
		{"ไม่ x หรือ y", "(OR (NOT x) y)"},
	}
	for _, tc := range cases {
		tree, err := ParseCond(lexer.Lex(tc.src))
		if err != nil {
			t.Fatalf("ParseCond(%q) failed: %v", tc.src, err)
		}
		if got := tree.String(); got != tc.want {
			t.Fatalf("ParseCond(%q) = %s, want %s", tc.src, got, tc.want)
		}
	}
}

func TestParseExprRejectsComparison(t *testing.T) {
	_, err := ParseExpr(lexer.Lex("x < 3"))
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestParseExprErrors(t *testing.T) {
	for _, src := range []string{"", "1 +", "(1 + 2", "a[1", "f(1, 2"} {
		if _, err := ParseExpr(lexer.Lex(src)); err == nil {
			t.Fatalf("expected error for %q", src)
		}
	}
}

func TestParseNumberScale(t *testing.T) {
	cases := []struct {
		text  string
		v     float64
		scale int
	}{
		{"2.50", 2.5, 2},
		{"7", 7, 0},
		{"1.005", 1.005, 3},
		{"-3.1", -3.1, 1},
		{"4.", 4, 0},
	}
	for _, tc := range cases {
		v, scale, err := ParseNumber(tc.text)
		if err != nil {
			t.Fatalf("ParseNumber(%q) failed: %v", tc.text, err)
		}
		if v != tc.v || scale != tc.scale {
			t.Fatalf("ParseNumber(%q) = %v/%d, want %v/%d", tc.text, v, scale, tc.v, tc.scale)
		}
	}
	for _, bad := range []string{"", "abc", "1e5", "inf", "1.2.3", "0x10"} {
		if _, _, err := ParseNumber(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseGive(t *testing.T) {
	g, err := ParseGive(lexer.Lex("give a[3] = 9")[1:])
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if g.Name != "a" || g.Index == nil || g.Index.String() != "3" || g.Op != lexer.ASSIGN || g.Expr.String() != "9" {
		t.Fatalf("unexpected give: %+v", g)
	}

	g, err = ParseGive(lexer.Lex("ให้ x *= y + 1")[1:])
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if g.Name != "x" || g.Index != nil || g.Op != lexer.STAREQ || g.Expr.String() != "(+ y 1)" {
		t.Fatalf("unexpected compound give: %+v", g)
	}

	if _, err := ParseGive(lexer.Lex("give x 3")[1:]); err == nil {
		t.Fatalf("expected error for give without =")
	}
}

func TestParseForAndFunc(t *testing.T) {
	h, err := ParseFor(lexer.Lex("สำหรับ i = 1 ถึง n + 1")[1:])
	if err != nil {
		t.Fatalf("parse for failed: %v", err)
	}
	if h.Var != "i" || h.Start.String() != "1" || h.End.String() != "(+ n 1)" {
		t.Fatalf("unexpected for header: %+v", h)
	}

	d, err := ParseFuncDef(lexer.Lex("func add(a, b)")[1:])
	if err != nil {
		t.Fatalf("parse func failed: %v", err)
	}
	if d.Name != "add" || len(d.Params) != 2 || d.Params[0] != "a" || d.Params[1] != "b" {
		t.Fatalf("unexpected func def: %+v", d)
	}

	d, err = ParseFuncDef(lexer.Lex("ฟังก์ชัน hello")[1:])
	if err != nil || d.Name != "hello" || len(d.Params) != 0 {
		t.Fatalf("unexpected bare func def: %+v, %v", d, err)
	}
}

func TestParseArrayPushPrint(t *testing.T) {
	a, err := ParseArrayDecl(lexer.Lex("array a[5]")[1:])
	if err != nil || a.Name != "a" || a.Size.String() != "5" {
		t.Fatalf("unexpected array decl: %+v, %v", a, err)
	}
	a, err = ParseArrayDecl(lexer.Lex("array b")[1:])
	if err != nil || a.Name != "b" || a.Size != nil {
		t.Fatalf("unexpected default array decl: %+v, %v", a, err)
	}

	p, err := ParsePush(lexer.Lex("push a x * 2")[1:])
	if err != nil || p.Name != "a" || p.Expr.String() != "(* x 2)" {
		t.Fatalf("unexpected push: %+v, %v", p, err)
	}

	pr, err := ParsePrint(lexer.Lex(`print "hi there"`)[1:])
	if err != nil || !pr.IsString || pr.Text != "hi there" {
		t.Fatalf("unexpected print: %+v, %v", pr, err)
	}
	pr, err = ParsePrint(lexer.Lex(`println 1 + 1`)[1:])
	if err != nil || pr.IsString || pr.Expr.String() != "(+ 1 1)" {
		t.Fatalf("unexpected print expr: %+v, %v", pr, err)
	}
}

func TestParseCall(t *testing.T) {
	tree, err := ParseCall(lexer.Lex("call greet")[1:])
	if err != nil || tree.String() != "(call greet)" {
		t.Fatalf("unexpected bare call: %v, %v", tree, err)
	}
	tree, err = ParseCall(lexer.Lex("เรียก add(1, 2)")[1:])
	if err != nil || tree.String() != "(call add 1 2)" {
		t.Fatalf("unexpected call: %v, %v", tree, err)
	}
}
