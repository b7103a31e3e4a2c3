package main

import (
	"github.com/gosuda/aeroki/config"
	aruntime "github.com/gosuda/aeroki/runtime"
)

type appConfig struct {
	conf  config.Config
	file  string
	trace bool
}

type vmStartedMsg struct {
	events <-chan any
}

type vmOutputMsg struct {
	out aruntime.Output
}

// vmLogMsg carries one formatted log record from the VM's logger.
type vmLogMsg struct {
	text string
}

type vmDoneMsg struct {
	err error
}

type vmInputResp struct {
	value string
	ok    bool
}

// vmPromptMsg asks the UI for one line: either an input statement value or,
// in interactive mode, the next source line.
type vmPromptMsg struct {
	prompt string
	source bool
	resp   chan vmInputResp
}

type pendingInput struct {
	prompt string
	source bool
	resp   chan vmInputResp
}
