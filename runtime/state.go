package aruntime

import "sort"

type VariableState struct {
	Name  string  `json:"name"`
	Num   float64 `json:"num"`
	Scale int     `json:"scale"`
	Text  string  `json:"text"`
}

type ArrayState struct {
	Name   string   `json:"name"`
	Cap    int      `json:"cap"`
	Size   int      `json:"size"`
	Values []string `json:"values"`
}

type FunctionState struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
	Lines  int      `json:"lines"`
}

// Snapshot is a serializable view of the runtime stores, sorted by name.
type Snapshot struct {
	Precision int             `json:"precision"`
	Fixed     bool            `json:"fixed"`
	Steps     int64           `json:"steps"`
	Variables []VariableState `json:"variables"`
	Arrays    []ArrayState    `json:"arrays"`
	Functions []FunctionState `json:"functions"`
}

func (vm *VM) Snapshot() Snapshot {
	s := Snapshot{
		Precision: vm.precision,
		Fixed:     vm.fixed,
		Steps:     vm.steps,
		Variables: []VariableState{},
		Arrays:    []ArrayState{},
		Functions: []FunctionState{},
	}
	for name, v := range vm.stores.vars {
		s.Variables = append(s.Variables, VariableState{Name: name, Num: v.Num, Scale: v.Scale, Text: vm.Format(v)})
	}
	sort.Slice(s.Variables, func(i, j int) bool { return s.Variables[i].Name < s.Variables[j].Name })
	for name, a := range vm.stores.arrays {
		st := ArrayState{Name: name, Cap: a.Cap, Size: a.Size, Values: make([]string, 0, a.Size)}
		for _, v := range a.Values() {
			st.Values = append(st.Values, vm.Format(v))
		}
		s.Arrays = append(s.Arrays, st)
	}
	sort.Slice(s.Arrays, func(i, j int) bool { return s.Arrays[i].Name < s.Arrays[j].Name })
	for _, fn := range vm.stores.funcs {
		s.Functions = append(s.Functions, FunctionState{Name: fn.Name, Params: append([]string{}, fn.Params...), Lines: len(fn.Body)})
	}
	return s
}
