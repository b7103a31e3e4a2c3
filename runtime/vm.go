package aruntime

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gosuda/aeroki/config"
	"github.com/gosuda/aeroki/lexer"
	"github.com/gosuda/aeroki/parser"
)

type Output struct {
	Text    string `json:"text"`
	NewLine bool   `json:"newline"`
}

// VM owns every runtime store of one interpreter instance. It is not safe
// for concurrent use.
type VM struct {
	cfg       config.Config
	stores    stores
	precision int
	fixed     bool
	outputs   []Output
	depth     int
	steps     int64

	outputHook    func(Output)
	inputProvider InputProvider
	input         inputState
	log           *slog.Logger
}

type resultKind int

const (
	resultNone resultKind = iota
	resultBreak
	resultContinue
	resultReturn
)

type execResult struct {
	kind  resultKind
	value Value
}

// maxCallDepth bounds nested user function calls so runaway recursion ends
// in a FatalError instead of exhausting the goroutine stack.
const maxCallDepth = 2048

func New(cfg config.Config) *VM {
	return &VM{
		cfg:       cfg,
		stores:    newStores(cfg.Limits),
		precision: config.ClampPrecision(cfg.Precision),
		fixed:     cfg.FixedPrecision,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (vm *VM) SetOutputHook(fn func(Output)) {
	vm.outputHook = fn
}

// SetLogger routes syntax warnings and value tracing. A nil logger
// silences them.
func (vm *VM) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	vm.log = l
}

// Run executes lines as one script and returns what it printed. Syntax
// errors are logged and the offending line (or block) is skipped; the
// first FatalError stops execution and is returned together with the
// output produced before it. A top-level return ends the run normally.
func (vm *VM) Run(lines []parser.Line) ([]Output, error) {
	vm.outputs = vm.outputs[:0]
	_, err := vm.execBlock(lines)
	return append([]Output(nil), vm.outputs...), err
}

// Precision reports the active decimal cap and whether fixed mode is on.
func (vm *VM) Precision() (int, bool) {
	return vm.precision, vm.fixed
}

// Variable reads name without the lenient-read side effect.
func (vm *VM) Variable(name string) (Value, bool) {
	v, ok := vm.stores.vars[name]
	return v, ok
}

func (vm *VM) HasVariable(name string) bool {
	_, ok := vm.stores.vars[name]
	return ok
}

func (vm *VM) Array(name string) (*Array, bool) {
	return vm.stores.array(name)
}

func (vm *VM) Function(name string) (*Function, bool) {
	fn := vm.stores.lookupFunc(name)
	return fn, fn != nil
}

// Format renders v under the VM's current display rule.
func (vm *VM) Format(v Value) string {
	return Format(v, vm.precision, vm.fixed)
}

func (vm *VM) emitOutput(out Output) {
	vm.outputs = append(vm.outputs, out)
	if vm.outputHook != nil {
		vm.outputHook(out)
	}
}

// execBlock runs a line list top to bottom. Control constructs are carved
// out with parser.Structure and executed recursively; any result other
// than resultNone stops the list and is handed to the caller.
func (vm *VM) execBlock(lines []parser.Line) (execResult, error) {
	for pc := 0; pc < len(lines); {
		line := lines[pc]
		toks := lexer.Lex(line.Content)
		vm.steps++
		if toks[0].Kind.IsBlockOpener() {
			b := parser.Structure(lines, pc)
			if !b.Closed {
				vm.log.Warn("block is missing its end marker", "pos", line.Pos(), "line", line.Content)
			}
			res, err := vm.execConstruct(line, toks, b, lines)
			pc = b.Next
			if err != nil {
				if vm.skippable(line, err) {
					continue
				}
				return execResult{}, err
			}
			if res.kind != resultNone {
				return res, nil
			}
			continue
		}
		pc++
		res, err := vm.execStatement(line, toks)
		if err != nil {
			if vm.skippable(line, err) {
				continue
			}
			return execResult{}, err
		}
		if res.kind != resultNone {
			return res, nil
		}
	}
	return execResult{kind: resultNone}, nil
}

// skippable logs a syntax error and reports true so the caller moves on.
// Fatal errors get their position stamped and are reported false.
func (vm *VM) skippable(line parser.Line, err error) bool {
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		vm.log.Warn("syntax error", "pos", line.Pos(), "line", line.Content, "err", se.Msg)
		return true
	}
	var fe *FatalError
	if errors.As(err, &fe) && fe.Pos == "" {
		fe.Pos = line.Pos()
	}
	return false
}
