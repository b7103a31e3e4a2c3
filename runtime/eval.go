package aruntime

import (
	"math"

	"github.com/gosuda/aeroki/ast"
	"github.com/gosuda/aeroki/lexer"
	"github.com/gosuda/aeroki/parser"
)

func (vm *VM) evalTree(t *ast.Tree) (Value, error) {
	if t == nil || len(t.Nodes) == 0 {
		return Zero(), nil
	}
	return vm.eval(t, t.Root)
}

func (vm *VM) eval(t *ast.Tree, id ast.NodeID) (Value, error) {
	n := t.Node(id)
	switch n.Kind {
	case ast.Number:
		return Num(n.Num, n.Scale), nil
	case ast.VarRef:
		return vm.stores.getVar(n.Name), nil
	case ast.Binary:
		return vm.evalBinary(t, n)
	case ast.Unary:
		v, err := vm.eval(t, n.Left)
		if err != nil {
			return Value{}, err
		}
		switch n.Op {
		case lexer.MINUS:
			return Num(-v.Num, v.Scale), nil
		case lexer.PLUS:
			return v, nil
		case lexer.NOT:
			return Bool(!v.Truthy()), nil
		case lexer.MATHFN:
			return applyMath(n.Func, v), nil
		}
		return Value{}, fatalf("unsupported unary operator %s", n.Op)
	case ast.ArrayIndex:
		idx, err := vm.eval(t, n.Left)
		if err != nil {
			return Value{}, err
		}
		a, ok := vm.stores.array(n.Name)
		if !ok {
			return Zero(), nil
		}
		return a.Get(idx.Int()), nil
	case ast.Call:
		args := make([]Value, 0, len(n.Args))
		for _, arg := range n.Args {
			v, err := vm.eval(t, arg)
			if err != nil {
				return Value{}, err
			}
			args = append(args, v)
		}
		return vm.callFunction(n.Name, args)
	case ast.Len:
		a, ok := vm.stores.array(n.Name)
		if !ok {
			return Zero(), nil
		}
		return Num(float64(a.Size), 0), nil
	case ast.Pop:
		a, err := vm.declaredArray(n.Name)
		if err != nil {
			return Value{}, err
		}
		return a.Pop()
	}
	return Value{}, fatalf("unknown expression node %d", n.Kind)
}

func (vm *VM) evalBinary(t *ast.Tree, n *ast.Node) (Value, error) {
	l, err := vm.eval(t, n.Left)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case lexer.AND:
		if !l.Truthy() {
			return Bool(false), nil
		}
		r, err := vm.eval(t, n.Right)
		if err != nil {
			return Value{}, err
		}
		return Bool(r.Truthy()), nil
	case lexer.OR:
		if l.Truthy() {
			return Bool(true), nil
		}
		r, err := vm.eval(t, n.Right)
		if err != nil {
			return Value{}, err
		}
		return Bool(r.Truthy()), nil
	}
	r, err := vm.eval(t, n.Right)
	if err != nil {
		return Value{}, err
	}
	if n.Op.IsComparison() {
		return Bool(Compare(n.Op, l, r)), nil
	}
	return Combine(n.Op, l, r)
}

// callFunction emulates a call frame: the whole variable store is
// snapshotted, parameters are bound as ordinary variables, and the
// snapshot is put back once the body finishes. Arrays and functions are
// shared with the caller. Calling an unknown function yields zero.
func (vm *VM) callFunction(name string, args []Value) (Value, error) {
	fn := vm.stores.lookupFunc(name)
	if fn == nil {
		vm.log.Debug("call to undefined function", "name", name)
		return Zero(), nil
	}
	if vm.depth >= maxCallDepth {
		return Value{}, fatalf("call depth exceeded %d in %s", maxCallDepth, name)
	}
	saved := vm.stores.snapshotVars()
	vm.depth++
	res, err := vm.invoke(fn, args)
	vm.depth--
	vm.stores.restoreVars(saved)
	if err != nil {
		return Value{}, err
	}
	if res.kind == resultReturn {
		return res.value, nil
	}
	return Zero(), nil
}

func (vm *VM) invoke(fn *Function, args []Value) (execResult, error) {
	for i, p := range fn.Params {
		v := Zero()
		if i < len(args) {
			v = args[i]
		}
		if err := vm.stores.setVar(p, v); err != nil {
			return execResult{}, err
		}
	}
	return vm.execBlock(fn.Body)
}

// applyMath evaluates a built-in unary function. Rounding functions drop
// the scale; the others keep the operand's.
func applyMath(fn string, v Value) Value {
	switch fn {
	case "sqrt":
		return Num(math.Sqrt(v.Num), v.Scale)
	case "abs":
		return Num(math.Abs(v.Num), v.Scale)
	case "sin":
		return Num(math.Sin(v.Num), v.Scale)
	case "cos":
		return Num(math.Cos(v.Num), v.Scale)
	case "tan":
		return Num(math.Tan(v.Num), v.Scale)
	case "log":
		return Num(math.Log(v.Num), v.Scale)
	case "exp":
		return Num(math.Exp(v.Num), v.Scale)
	case "floor":
		return Num(math.Floor(v.Num), 0)
	case "ceil":
		return Num(math.Ceil(v.Num), 0)
	case "round":
		return Num(RoundHalfAwayFromZero(v.Num, 0), 0)
	}
	return v
}

// trace logs the raw state of a printed value when tracing is on.
func (vm *VM) trace(line parser.Line, v Value) {
	if !vm.cfg.Trace {
		return
	}
	vm.log.Info("value",
		"pos", line.Pos(),
		"num", v.Num,
		"scale", v.Scale,
		"decimals", Decimals(v, vm.precision, vm.fixed),
		"fixed", vm.fixed,
		"text", vm.Format(v),
	)
}
