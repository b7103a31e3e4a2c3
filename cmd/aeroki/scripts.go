package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosuda/aeroki"
	"github.com/gosuda/aeroki/parser"
)

// loadScript reads a batch source file. Diagnostics name it by base name.
func loadScript(path string) ([]parser.Line, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return aeroki.LoadScript(filepath.Base(path), string(b)), nil
}
