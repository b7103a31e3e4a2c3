package mobile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuda/aeroki"
	"github.com/gosuda/aeroki/config"
	aruntime "github.com/gosuda/aeroki/runtime"
)

type runResult struct {
	Outputs []aruntime.Output `json:"outputs"`
	Error   string            `json:"error,omitempty"`
}

// Run executes one script and returns a JSON result. Output printed before
// a fatal error is kept alongside the error.
// inputsJSON format: ["1","2.50", ...]; inputs past the end read as zero.
func Run(source, inputsJSON string) string {
	result := runResult{Outputs: []aruntime.Output{}}

	var queued []string
	if strings.TrimSpace(inputsJSON) != "" {
		if err := json.Unmarshal([]byte(inputsJSON), &queued); err != nil {
			result.Error = fmt.Sprintf("invalid inputs json: %v", err)
			b, _ := json.Marshal(result)
			return string(b)
		}
	}

	vm := aruntime.New(config.Default())
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}

	out, err := vm.Run(aeroki.LoadScript("main.aero", source))
	result.Outputs = append(result.Outputs, out...)
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
	}

	b, _ := json.Marshal(result)
	return string(b)
}
