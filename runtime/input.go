package aruntime

import (
	"strings"

	"github.com/gosuda/aeroki/lexer"
)

// InputRequest describes one pending input statement.
type InputRequest struct {
	Name   string
	Prompt string
}

// InputProvider supplies a line for an input statement. ok=false means end
// of input, which stores zero.
type InputProvider func(req InputRequest) (line string, ok bool, err error)

type inputState struct {
	Queue     []string
	Pending   *InputRequest
	LastValue string
}

func (vm *VM) SetInputProvider(fn InputProvider) {
	vm.inputProvider = fn
}

// EnqueueInput queues lines that are consumed before the provider is
// asked.
func (vm *VM) EnqueueInput(values ...string) {
	vm.input.Queue = append(vm.input.Queue, values...)
}

func (vm *VM) consumeQueuedInput() (string, bool) {
	if len(vm.input.Queue) == 0 {
		return "", false
	}
	v := vm.input.Queue[0]
	vm.input.Queue = vm.input.Queue[1:]
	return v, true
}

func (vm *VM) resolveInput(req InputRequest) (string, bool, error) {
	vm.input.Pending = &req
	defer func() { vm.input.Pending = nil }()
	if raw, ok := vm.consumeQueuedInput(); ok {
		vm.input.LastValue = raw
		return raw, true, nil
	}
	if vm.inputProvider == nil {
		return "", false, nil
	}
	raw, ok, err := vm.inputProvider(req)
	if err != nil {
		return "", false, err
	}
	vm.input.LastValue = raw
	return raw, ok, nil
}

// readValue serves an input statement. End of input and malformed text
// both yield zero.
func (vm *VM) readValue(name string) (Value, error) {
	req := InputRequest{Name: name, Prompt: vm.cfg.InputPrompt + " " + name + ": "}
	raw, ok, err := vm.resolveInput(req)
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Zero(), nil
	}
	// Full-width digits typed through an IME are folded first.
	v, ok := ParseValue(strings.TrimSpace(lexer.Normalize(raw)))
	if !ok {
		vm.log.Debug("malformed input read as zero", "name", name, "text", raw)
	}
	return v, nil
}
