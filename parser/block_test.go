package parser

import (
	"strings"
	"testing"

	"github.com/gosuda/aeroki/lexer"
)

func linesOf(src string) []Line {
	return Preprocess(ToLines("test.aero", src))
}

func contents(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Content)
	}
	return strings.Join(parts, "|")
}

func TestStructureIfElse(t *testing.T) {
	lines := linesOf(`
ถ้า x > 1
  หา 1
  ถ้า y
    หา 2
  ถ้าไม่
    หา 3
  จบ
ถ้าไม่
  หา 4
จบ
หา 5
`)
	b := Structure(lines, 0)
	if b.Opener != lexer.IF || !b.Closed || !b.HasElse {
		t.Fatalf("unexpected block: %+v", b)
	}
	if got := contents(b.Body(lines)); got != "หา 1|ถ้า y|หา 2|ถ้าไม่|หา 3|จบ" {
		t.Fatalf("unexpected then body: %s", got)
	}
	if got := contents(b.Else(lines)); got != "หา 4" {
		t.Fatalf("unexpected else body: %s", got)
	}
	if lines[b.Next].Content != "หา 5" {
		t.Fatalf("unexpected next line: %q", lines[b.Next].Content)
	}
}

func TestStructureNestedLoops(t *testing.T) {
	lines := linesOf(`
while i < 3
  for j = 1 to 2
    find j
  end
  give i += 1
end
find i
`)
	b := Structure(lines, 0)
	if b.Opener != lexer.WHILE || b.HasElse || !b.Closed {
		t.Fatalf("unexpected block: %+v", b)
	}
	if got := contents(b.Body(lines)); got != "for j = 1 to 2|find j|end|give i += 1" {
		t.Fatalf("unexpected body: %s", got)
	}
	if b.Else(lines) != nil {
		t.Fatalf("while must not have an else body")
	}
	if b.Next != 6 {
		t.Fatalf("unexpected next index: %d", b.Next)
	}
}

func TestStructureElseOnlyForIf(t *testing.T) {
	lines := linesOf(`
while x
  else
end
`)
	b := Structure(lines, 0)
	if b.HasElse {
		t.Fatalf("else inside while must stay in the body")
	}
	if got := contents(b.Body(lines)); got != "else" {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestStructureUnclosed(t *testing.T) {
	lines := linesOf(`
func f(a)
  return a
`)
	b := Structure(lines, 0)
	if b.Closed {
		t.Fatalf("expected unclosed block")
	}
	if got := contents(b.Body(lines)); got != "return a" {
		t.Fatalf("unexpected body: %s", got)
	}
	if b.Next != len(lines) {
		t.Fatalf("unexpected next: %d", b.Next)
	}
}

func TestOpenDepth(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"find 1", 0},
		{"if x\nwhile y", 2},
		{"if x\nwhile y\nend", 1},
		{"if x\nend\nend", 0},
		{"ฟังก์ชัน f\nคืนค่า 1\nจบฟังก์ชัน", 0},
	}
	for _, tc := range cases {
		if got := OpenDepth(ToLines("", tc.src)); got != tc.want {
			t.Fatalf("OpenDepth(%q) = %d, want %d", tc.src, got, tc.want)
		}
	}
}

func TestPreprocessDropsCommentsAndBlanks(t *testing.T) {
	lines := linesOf("# header\n\n  give x = 1  \n   # indented comment\nfind x\n")
	if got := contents(lines); got != "give x = 1|find x" {
		t.Fatalf("unexpected lines: %s", got)
	}
	if lines[0].Number != 3 || lines[1].Number != 5 {
		t.Fatalf("line numbers not preserved: %+v", lines)
	}
}
