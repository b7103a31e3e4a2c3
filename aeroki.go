package aeroki

import (
	"github.com/gosuda/aeroki/config"
	"github.com/gosuda/aeroki/parser"
	aruntime "github.com/gosuda/aeroki/runtime"
)

// LoadScript splits a whole source file into executable lines the way the
// batch front end reads it: comment and blank lines are dropped.
func LoadScript(file, source string) []parser.Line {
	return parser.Preprocess(parser.ToLines(file, source))
}

// Run executes source on a fresh VM built from cfg. file names the source
// in diagnostics.
func Run(cfg config.Config, file, source string) (*aruntime.VM, []aruntime.Output, error) {
	vm := aruntime.New(cfg)
	out, err := vm.Run(LoadScript(file, source))
	return vm, out, err
}

// Session feeds an interactive VM one line at a time. Lines that open a
// block are buffered until every block is closed, then run as one unit.
type Session struct {
	cfg     config.Config
	vm      *aruntime.VM
	pending []parser.Line
	number  int
}

func NewSession(cfg config.Config) *Session {
	return &Session{cfg: cfg, vm: aruntime.New(cfg)}
}

func (s *Session) VM() *aruntime.VM {
	return s.vm
}

// Pending reports how many lines are buffered waiting for END.
func (s *Session) Pending() int {
	return len(s.pending)
}

// Feed accepts one interactive line. quit is true when the line is a quit
// word and nothing is buffered. Comment lines only advance the line
// counter; they are neither buffered nor run.
func (s *Session) Feed(raw string) (out []aruntime.Output, quit bool, err error) {
	s.number++
	if parser.IsComment(raw) {
		return nil, false, nil
	}
	if len(s.pending) == 0 && s.cfg.IsQuit(raw) {
		return nil, true, nil
	}
	line := parser.Line{Number: s.number, Content: raw}
	s.pending = append(s.pending, line)
	if parser.OpenDepth(s.pending) > 0 {
		return nil, false, nil
	}
	chunk := s.pending
	s.pending = nil
	out, err = s.vm.Run(chunk)
	return out, false, err
}
