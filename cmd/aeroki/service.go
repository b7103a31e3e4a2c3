package main

import (
	"bytes"
	"log/slog"

	"github.com/gosuda/aeroki"
	aruntime "github.com/gosuda/aeroki/runtime"
)

// eventWriter turns each log record written by the text handler into a
// vmLogMsg so warnings show up in the scrollback instead of on stderr.
type eventWriter struct {
	events chan<- any
}

func (w eventWriter) Write(p []byte) (int, error) {
	w.events <- vmLogMsg{text: string(bytes.TrimSpace(p))}
	return len(p), nil
}

func askUI(events chan<- any, prompt string, source bool) (string, bool) {
	resp := make(chan vmInputResp, 1)
	events <- vmPromptMsg{prompt: prompt, source: source, resp: resp}
	r := <-resp
	return r.value, r.ok
}

func runVM(cfg appConfig, events chan<- any) {
	defer close(events)

	level := slog.LevelWarn
	if cfg.trace {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(eventWriter{events: events}, &slog.HandlerOptions{Level: level}))

	attach := func(vm *aruntime.VM) {
		vm.SetLogger(logger)
		vm.SetOutputHook(func(out aruntime.Output) {
			events <- vmOutputMsg{out: out}
		})
		vm.SetInputProvider(func(req aruntime.InputRequest) (string, bool, error) {
			v, ok := askUI(events, req.Prompt, false)
			return v, ok, nil
		})
	}

	if cfg.file != "" {
		lines, err := loadScript(cfg.file)
		if err != nil {
			events <- vmDoneMsg{err: err}
			return
		}
		vm := aruntime.New(cfg.conf)
		attach(vm)
		_, err = vm.Run(lines)
		events <- vmDoneMsg{err: err}
		return
	}

	s := aeroki.NewSession(cfg.conf)
	attach(s.VM())
	for {
		prompt := cfg.conf.Prompt
		if s.Pending() > 0 {
			prompt = continuationPrompt
		}
		line, ok := askUI(events, prompt, true)
		if !ok {
			events <- vmDoneMsg{}
			return
		}
		events <- vmOutputMsg{out: aruntime.Output{Text: prompt + line, NewLine: true}}
		_, quit, err := s.Feed(line)
		if err != nil || quit {
			events <- vmDoneMsg{err: err}
			return
		}
	}
}
