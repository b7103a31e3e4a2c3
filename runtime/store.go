package aruntime

import (
	"maps"

	"github.com/gosuda/aeroki/config"
	"github.com/gosuda/aeroki/parser"
)

// Function is a user definition. Its body is kept as raw lines and lexed
// again on each call.
type Function struct {
	Name   string
	Params []string
	Body   []parser.Line
}

type stores struct {
	limits config.Limits
	vars   map[string]Value
	arrays map[string]*Array
	funcs  []*Function
}

func newStores(limits config.Limits) stores {
	return stores{
		limits: limits,
		vars:   map[string]Value{},
		arrays: map[string]*Array{},
	}
}

// getVar reads a variable. A missing name is defined as zero on first read
// unless the store is already full, in which case zero is returned without
// defining it.
func (s *stores) getVar(name string) Value {
	if v, ok := s.vars[name]; ok {
		return v
	}
	if len(s.vars) < s.limits.MaxVariables {
		s.vars[name] = Zero()
	}
	return Zero()
}

func (s *stores) setVar(name string, v Value) error {
	if _, ok := s.vars[name]; !ok && len(s.vars) >= s.limits.MaxVariables {
		return fatalf("too many variables (limit %d) defining %s", s.limits.MaxVariables, name)
	}
	s.vars[name] = v
	return nil
}

func (s *stores) snapshotVars() map[string]Value {
	return maps.Clone(s.vars)
}

func (s *stores) restoreVars(saved map[string]Value) {
	s.vars = saved
}

// defineArray creates or replaces an array. Replacing an existing name does
// not count against the limit.
func (s *stores) defineArray(name string, capacity int) error {
	if _, ok := s.arrays[name]; !ok && len(s.arrays) >= s.limits.MaxArrays {
		return fatalf("too many arrays (limit %d) defining %s", s.limits.MaxArrays, name)
	}
	s.arrays[name] = newArray(name, capacity)
	return nil
}

func (s *stores) array(name string) (*Array, bool) {
	a, ok := s.arrays[name]
	return a, ok
}

// defineFunc overwrites the first function with the same name, or appends
// a new one.
func (s *stores) defineFunc(fn *Function) error {
	for i, f := range s.funcs {
		if f.Name == fn.Name {
			s.funcs[i] = fn
			return nil
		}
	}
	if len(s.funcs) >= s.limits.MaxFunctions {
		return fatalf("too many functions (limit %d) defining %s", s.limits.MaxFunctions, fn.Name)
	}
	s.funcs = append(s.funcs, fn)
	return nil
}

func (s *stores) lookupFunc(name string) *Function {
	for _, f := range s.funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}
