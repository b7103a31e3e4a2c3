package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/gosuda/aeroki/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("aeroki", flag.ContinueOnError)
	fs.SetOutput(stderr)
	confPath := fs.String("config", "", "YAML config file")
	precision := fs.Int("precision", -1, "decimal cap for output (0-12)")
	trace := fs.Bool("trace", false, "log the value state of every printed expression")
	useTUI := fs.Bool("tui", false, "run in the terminal UI")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: aeroki [flags] [script]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	conf, err := loadConfig(*confPath)
	if err != nil {
		fmt.Fprintf(stderr, "aeroki: %v\n", err)
		return 2
	}
	if *precision >= 0 {
		conf.Precision = config.ClampPrecision(*precision)
	}
	if *trace {
		conf.Trace = true
	}

	cfg := appConfig{conf: conf, file: fs.Arg(0), trace: conf.Trace}

	if *useTUI {
		if isTerminal(stdin) && isTerminal(stdout) {
			p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				fmt.Fprintf(stderr, "tui: %v\n", err)
				return 1
			}
			return 0
		}
		fmt.Fprintln(stderr, "aeroki: -tui needs a terminal, falling back to plain mode")
	}

	logger := newLogger(stderr, conf.Trace)
	if cfg.file != "" {
		return runBatch(cfg, stdin, stdout, stderr, logger)
	}
	return runInteractive(cfg, stdin, stdout, stderr, logger)
}

func loadConfig(path string) (config.Config, error) {
	conf := config.Default()
	if path != "" {
		var err error
		if conf, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	if err := conf.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, err
	}
	return conf, nil
}

func newLogger(w io.Writer, trace bool) *slog.Logger {
	level := slog.LevelWarn
	if trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
