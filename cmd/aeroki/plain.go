package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gosuda/aeroki"
	aruntime "github.com/gosuda/aeroki/runtime"
)

const continuationPrompt = "... "

// plainIO wires a VM to line-buffered streams. stdin is shared between
// source lines and input statements.
type plainIO struct {
	reader *bufio.Reader
	stdout io.Writer
}

func (p *plainIO) readLine() (string, bool, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if err != nil && line == "" {
		return "", false, nil
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

func (p *plainIO) attach(vm *aruntime.VM, logger *slog.Logger) {
	vm.SetLogger(logger)
	vm.SetOutputHook(func(out aruntime.Output) {
		if out.NewLine {
			fmt.Fprintln(p.stdout, out.Text)
		} else {
			fmt.Fprint(p.stdout, out.Text)
		}
	})
	vm.SetInputProvider(func(req aruntime.InputRequest) (string, bool, error) {
		fmt.Fprint(p.stdout, req.Prompt)
		return p.readLine()
	})
}

func runBatch(cfg appConfig, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) int {
	lines, err := loadScript(cfg.file)
	if err != nil {
		fmt.Fprintf(stderr, "aeroki: %v\n", err)
		return 1
	}
	p := &plainIO{reader: bufio.NewReader(stdin), stdout: stdout}
	vm := aruntime.New(cfg.conf)
	p.attach(vm, logger)
	if _, err := vm.Run(lines); err != nil {
		reportFatal(stderr, err)
		return 1
	}
	return 0
}

func runInteractive(cfg appConfig, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) int {
	p := &plainIO{reader: bufio.NewReader(stdin), stdout: stdout}
	s := aeroki.NewSession(cfg.conf)
	p.attach(s.VM(), logger)
	for {
		if s.Pending() > 0 {
			fmt.Fprint(stdout, continuationPrompt)
		} else {
			fmt.Fprint(stdout, cfg.conf.Prompt)
		}
		line, ok, err := p.readLine()
		if err != nil {
			fmt.Fprintf(stderr, "aeroki: %v\n", err)
			return 1
		}
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		_, quit, err := s.Feed(line)
		if err != nil {
			reportFatal(stderr, err)
			return 1
		}
		if quit {
			return 0
		}
	}
}

func reportFatal(w io.Writer, err error) {
	var fe *aruntime.FatalError
	if errors.As(err, &fe) {
		fmt.Fprintf(w, "ข้อผิดพลาด: %v\n", fe)
		return
	}
	fmt.Fprintf(w, "aeroki: %v\n", err)
}
