//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/gosuda/aeroki"
	"github.com/gosuda/aeroki/config"
	aruntime "github.com/gosuda/aeroki/runtime"
)

type runResult struct {
	Outputs []aruntime.Output `json:"outputs"`
	Error   string            `json:"error,omitempty"`
}

type inputRequestPayload struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// inputPrompt asks the page through aerokiInputNext; undefined or null
// means end of input.
func inputPrompt(req aruntime.InputRequest) (string, bool, error) {
	fn := js.Global().Get("aerokiInputNext")
	if fn.Type() != js.TypeFunction {
		return "", false, nil
	}
	b, _ := json.Marshal(inputRequestPayload{Name: req.Name, Prompt: req.Prompt})
	v := fn.Invoke(string(b))
	if v.IsUndefined() || v.IsNull() {
		return "", false, nil
	}
	return strings.TrimSpace(v.String()), true, nil
}

// runScript(source, [inputsJSON], [precision]) returns the JSON result.
func runScript(this js.Value, args []js.Value) any {
	result := runResult{Outputs: []aruntime.Output{}}
	if len(args) < 1 {
		result.Error = "aerokiRun requires the script source"
		b, _ := json.Marshal(result)
		return string(b)
	}

	var queued []string
	if len(args) > 1 && strings.TrimSpace(args[1].String()) != "" {
		if err := json.Unmarshal([]byte(args[1].String()), &queued); err != nil {
			result.Error = fmt.Sprintf("invalid inputs json: %v", err)
			b, _ := json.Marshal(result)
			return string(b)
		}
	}

	conf := config.Default()
	if len(args) > 2 && args[2].Type() == js.TypeNumber {
		conf.Precision = config.ClampPrecision(args[2].Int())
	}

	vm := aruntime.New(conf)
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}
	vm.SetInputProvider(inputPrompt)

	out, err := vm.Run(aeroki.LoadScript("main.aero", args[0].String()))
	result.Outputs = append(result.Outputs, out...)
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
	}

	b, _ := json.Marshal(result)
	return string(b)
}

func main() {
	js.Global().Set("aerokiRun", js.FuncOf(runScript))
	select {}
}
