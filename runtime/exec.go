package aruntime

import (
	"github.com/gosuda/aeroki/config"
	"github.com/gosuda/aeroki/lexer"
	"github.com/gosuda/aeroki/parser"
)

var none = execResult{kind: resultNone}

// execStatement runs one line that owns no body.
func (vm *VM) execStatement(line parser.Line, toks []lexer.Token) (execResult, error) {
	args := toks[1:]
	switch toks[0].Kind {
	case lexer.EOF:
		return none, nil
	case lexer.GIVE:
		return none, vm.execGive(args)
	case lexer.FIND:
		tree, err := parser.ParseExpr(args)
		if err != nil {
			return none, err
		}
		v, err := vm.evalTree(tree)
		if err != nil {
			return none, err
		}
		vm.trace(line, v)
		vm.emitOutput(Output{Text: vm.Format(v), NewLine: true})
		return none, nil
	case lexer.PRINT, lexer.PRINTLN:
		p, err := parser.ParsePrint(args)
		if err != nil {
			return none, err
		}
		text := p.Text
		if !p.IsString {
			v, err := vm.evalTree(p.Expr)
			if err != nil {
				return none, err
			}
			vm.trace(line, v)
			text = vm.Format(v)
		}
		vm.emitOutput(Output{Text: text, NewLine: toks[0].Kind == lexer.PRINTLN})
		return none, nil
	case lexer.INPUT:
		name, err := parser.ParseName(args)
		if err != nil {
			return none, err
		}
		v, err := vm.readValue(name)
		if err != nil {
			return none, err
		}
		return none, vm.stores.setVar(name, v)
	case lexer.ARRAY:
		return none, vm.execArrayDecl(args)
	case lexer.PUSH:
		p, err := parser.ParsePush(args)
		if err != nil {
			return none, err
		}
		a, err := vm.declaredArray(p.Name)
		if err != nil {
			return none, err
		}
		v, err := vm.evalTree(p.Expr)
		if err != nil {
			return none, err
		}
		return none, a.Push(v)
	case lexer.POP:
		name, err := parser.ParseName(args)
		if err != nil {
			return none, err
		}
		a, err := vm.declaredArray(name)
		if err != nil {
			return none, err
		}
		_, err = a.Pop()
		return none, err
	case lexer.PREC:
		tree, err := parser.ParseExpr(args)
		if err != nil {
			return none, err
		}
		v, err := vm.evalTree(tree)
		if err != nil {
			return none, err
		}
		vm.precision = config.ClampPrecision(int(v.Int()))
		vm.fixed = true
		return none, nil
	case lexer.CALL:
		tree, err := parser.ParseCall(args)
		if err != nil {
			return none, err
		}
		_, err = vm.evalTree(tree)
		return none, err
	case lexer.RETURN:
		tree, err := parser.ParseOptionalExpr(args)
		if err != nil {
			return none, err
		}
		v := Zero()
		if tree != nil {
			if v, err = vm.evalTree(tree); err != nil {
				return none, err
			}
		}
		return execResult{kind: resultReturn, value: v}, nil
	case lexer.BREAK:
		return execResult{kind: resultBreak}, nil
	case lexer.CONTINUE:
		return execResult{kind: resultContinue}, nil
	case lexer.END, lexer.ELSE:
		vm.log.Debug("stray block marker ignored", "pos", line.Pos(), "line", line.Content)
		return none, nil
	default:
		vm.log.Warn("unknown statement", "pos", line.Pos(), "line", line.Content)
		return none, nil
	}
}

func (vm *VM) execGive(args []lexer.Token) error {
	g, err := parser.ParseGive(args)
	if err != nil {
		return err
	}
	v, err := vm.evalTree(g.Expr)
	if err != nil {
		return err
	}
	if g.Index != nil {
		a, err := vm.declaredArray(g.Name)
		if err != nil {
			return err
		}
		idx, err := vm.evalTree(g.Index)
		if err != nil {
			return err
		}
		return a.Set(idx.Int(), v)
	}
	if g.Op != lexer.ASSIGN {
		if v, err = Combine(g.Op, vm.stores.getVar(g.Name), v); err != nil {
			return err
		}
	}
	return vm.stores.setVar(g.Name, v)
}

func (vm *VM) execArrayDecl(args []lexer.Token) error {
	d, err := parser.ParseArrayDecl(args)
	if err != nil {
		return err
	}
	capacity := vm.cfg.Limits.DefaultArrayCapacity
	if d.Size != nil {
		v, err := vm.evalTree(d.Size)
		if err != nil {
			return err
		}
		if v.Num < 0 {
			return fatalf("array %s: negative capacity %d", d.Name, v.Int())
		}
		if limit := vm.cfg.Limits.MaxArrayCapacity; v.Num >= float64(limit)+1 {
			return fatalf("array %s: capacity %s exceeds limit %d", d.Name, vm.Format(v), limit)
		}
		capacity = int(v.Int())
	}
	return vm.stores.defineArray(d.Name, capacity)
}

// declaredArray resolves the target of a write. Writing to an array that
// was never declared is fatal; reads of one are lenient.
func (vm *VM) declaredArray(name string) (*Array, error) {
	a, ok := vm.stores.array(name)
	if !ok {
		return nil, fatalf("array %s is not declared", name)
	}
	return a, nil
}

// execConstruct runs a construct whose extent b was found by
// parser.Structure.
func (vm *VM) execConstruct(line parser.Line, toks []lexer.Token, b parser.Block, lines []parser.Line) (execResult, error) {
	args := toks[1:]
	switch toks[0].Kind {
	case lexer.IF:
		tree, err := parser.ParseCond(args)
		if err != nil {
			return none, err
		}
		cond, err := vm.evalTree(tree)
		if err != nil {
			return none, err
		}
		if cond.Truthy() {
			return vm.execBlock(b.Body(lines))
		}
		return vm.execBlock(b.Else(lines))
	case lexer.WHILE:
		return vm.execWhile(line, b.Body(lines))
	case lexer.FOR:
		return vm.execFor(args, b.Body(lines))
	case lexer.FUNC:
		d, err := parser.ParseFuncDef(args)
		if err != nil {
			return none, err
		}
		body := append([]parser.Line(nil), b.Body(lines)...)
		return none, vm.stores.defineFunc(&Function{Name: d.Name, Params: d.Params, Body: body})
	}
	return none, nil
}

// execWhile re-lexes and re-parses the header line before every pass.
func (vm *VM) execWhile(header parser.Line, body []parser.Line) (execResult, error) {
	for {
		toks := lexer.Lex(header.Content)
		tree, err := parser.ParseCond(toks[1:])
		if err != nil {
			return none, err
		}
		cond, err := vm.evalTree(tree)
		if err != nil {
			return none, err
		}
		if !cond.Truthy() {
			return none, nil
		}
		res, err := vm.execBlock(body)
		if err != nil {
			return none, err
		}
		switch res.kind {
		case resultBreak:
			return none, nil
		case resultReturn:
			return res, nil
		}
	}
}

// execFor evaluates the bounds once and steps by 1 through end inclusive,
// overwriting the loop variable at the top of every pass.
func (vm *VM) execFor(args []lexer.Token, body []parser.Line) (execResult, error) {
	h, err := parser.ParseFor(args)
	if err != nil {
		return none, err
	}
	start, err := vm.evalTree(h.Start)
	if err != nil {
		return none, err
	}
	end, err := vm.evalTree(h.End)
	if err != nil {
		return none, err
	}
	for i := start.Num; i <= end.Num+compareEpsilon; i++ {
		if err := vm.stores.setVar(h.Var, Num(i, start.Scale)); err != nil {
			return none, err
		}
		res, err := vm.execBlock(body)
		if err != nil {
			return none, err
		}
		switch res.kind {
		case resultBreak:
			return none, nil
		case resultReturn:
			return res, nil
		}
	}
	return none, nil
}
