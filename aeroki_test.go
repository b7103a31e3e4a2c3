package aeroki_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gosuda/aeroki"
	"github.com/gosuda/aeroki/config"
	aruntime "github.com/gosuda/aeroki/runtime"
)

func TestRunBasicFlow(t *testing.T) {
	src := `
# คำนวณราคา
ให้ ราคา = 2.50
ให้ จำนวน = 3

ถ้า ราคา * จำนวน > 5
    พิมพ์บรรทัด "แพง"
ถ้าไม่
    พิมพ์บรรทัด "ถูก"
จบ
หา ราคา + 1
`
	_, out, err := aeroki.Run(config.Default(), "main.aero", src)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("unexpected output count: %d", len(out))
	}
	if out[0].Text != "แพง" || !out[0].NewLine {
		t.Fatalf("unexpected first output: %+v", out[0])
	}
	if out[1].Text != "3.50" || !out[1].NewLine {
		t.Fatalf("unexpected second output: %+v", out[1])
	}
}

func TestRoundingAwayFromZero(t *testing.T) {
	_, out, err := aeroki.Run(config.Default(), "round.aero", "find 1.005\nfind -1.005\n")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(out) != 2 || out[0].Text != "1.01" || out[1].Text != "-1.01" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestArrayAutoExtend(t *testing.T) {
	vm, out, err := aeroki.Run(config.Default(), "array.aero", `
อาเรย์ a[5]
ให้ a[3] = 9
หา ความยาว a
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(out) != 1 || out[0].Text != "4" {
		t.Fatalf("unexpected output: %+v", out)
	}
	a, ok := vm.Array("a")
	if !ok {
		t.Fatalf("array a missing")
	}
	got := a.Values()
	want := []float64{0, 0, 0, 9}
	if len(got) != len(want) {
		t.Fatalf("unexpected values: %+v", got)
	}
	for i, v := range got {
		if v.Num != want[i] {
			t.Fatalf("slot %d = %v, want %v", i, v.Num, want[i])
		}
	}
}

func TestFunctionIsolation(t *testing.T) {
	_, out, err := aeroki.Run(config.Default(), "func.aero", `
อาเรย์ บันทึก[10]
ให้ x = 1
ฟังก์ชัน แก้(v)
    ให้ x = v
    เพิ่ม บันทึก v
จบฟังก์ชัน
เรียก แก้(42)
หา x
หา บันทึก[0]
`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(out) != 2 || out[0].Text != "1" || out[1].Text != "42" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestForAndBreak(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"for i = 1 to 3\n  find i\nend\n", []string{"1", "2", "3"}},
		{"for i = 1 to 3\n  find i\n  break\nend\n", []string{"1"}},
	}
	for _, tc := range cases {
		_, out, err := aeroki.Run(config.Default(), "loop.aero", tc.src)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if len(out) != len(tc.want) {
			t.Fatalf("unexpected output count: %d", len(out))
		}
		for i, w := range tc.want {
			if out[i].Text != w || !out[i].NewLine {
				t.Fatalf("unexpected output %d: %+v", i, out[i])
			}
		}
	}
}

func TestDivisionByZeroIsFatal(t *testing.T) {
	_, out, err := aeroki.Run(config.Default(), "div.aero", "find 10/0\nfind 1\n")
	var fe *aruntime.FatalError
	if !errors.As(err, &fe) {
		t.Fatalf("expected fatal error, got %v", err)
	}
	if fe.Pos != "div.aero:1" || !strings.Contains(fe.Error(), "division by zero") {
		t.Fatalf("unexpected error: %v", fe)
	}
	if len(out) != 0 {
		t.Fatalf("nothing should print: %+v", out)
	}
}

func TestSessionBuffersOpenBlocks(t *testing.T) {
	s := aeroki.NewSession(config.Default())
	feed := func(line string) []aruntime.Output {
		t.Helper()
		out, quit, err := s.Feed(line)
		if err != nil || quit {
			t.Fatalf("feed %q: quit=%v err=%v", line, quit, err)
		}
		return out
	}

	if out := feed("ให้ n = 2"); len(out) != 0 {
		t.Fatalf("unexpected output: %+v", out)
	}
	feed("ขณะที่ n > 0")
	feed("  หา n")
	if s.Pending() != 2 {
		t.Fatalf("expected buffered lines, got %d", s.Pending())
	}
	feed("  ให้ n -= 1")
	out := feed("จบ")
	if len(out) != 2 || out[0].Text != "2" || out[1].Text != "1" {
		t.Fatalf("unexpected loop output: %+v", out)
	}
	if s.Pending() != 0 {
		t.Fatalf("buffer not drained")
	}

	if _, quit, _ := s.Feed("ถ้า 1"); quit {
		t.Fatalf("opener must not quit")
	}
	if _, quit, _ := s.Feed("quit"); quit {
		t.Fatalf("quit word inside an open block must be buffered")
	}
	s.Feed("จบ")
	if _, quit, _ := s.Feed(" ออก "); !quit {
		t.Fatalf("expected quit")
	}
}

func TestSessionKeepsStateAcrossFeeds(t *testing.T) {
	s := aeroki.NewSession(config.Default())
	for _, line := range []string{"give a = 1.5", "func twice(v)", "return v * 2", "end"} {
		if _, _, err := s.Feed(line); err != nil {
			t.Fatalf("feed failed: %v", err)
		}
	}
	out, _, err := s.Feed("find twice(a)")
	if err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	if len(out) != 1 || out[0].Text != "3.0" {
		t.Fatalf("unexpected output: %+v", out)
	}
	_, _, err = s.Feed("find a / 0")
	var fe *aruntime.FatalError
	if !errors.As(err, &fe) || fe.Pos != "line 6" {
		t.Fatalf("expected fatal error at line 6, got %v", err)
	}
}

func TestSessionSkipsCommentLines(t *testing.T) {
	s := aeroki.NewSession(config.Default())
	var logs bytes.Buffer
	s.VM().SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

	for _, line := range []string{"# setup", "สำหรับ i = 1 ถึง 2", "  # inside a block", "จบ"} {
		out, _, err := s.Feed(line)
		if err != nil || len(out) != 0 {
			t.Fatalf("feed %q: out=%+v err=%v", line, out, err)
		}
		if line == "  # inside a block" && s.Pending() != 1 {
			t.Fatalf("comment must not be buffered, pending %d", s.Pending())
		}
	}
	if logs.Len() != 0 {
		t.Fatalf("comment lines must not be logged: %s", logs.String())
	}
	_, _, err := s.Feed("find 1 / 0")
	var fe *aruntime.FatalError
	if !errors.As(err, &fe) || fe.Pos != "line 5" {
		t.Fatalf("expected fatal error at line 5, got %v", err)
	}
}
