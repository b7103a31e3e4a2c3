package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("precision: 4\nlimits:\n  max_variables: 10\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Precision != 4 || cfg.Limits.MaxVariables != 10 {
		t.Fatalf("unexpected overlay: %+v", cfg)
	}
	def := Default()
	if cfg.Limits.DefaultArrayCapacity != def.Limits.DefaultArrayCapacity || cfg.InputPrompt != def.InputPrompt {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Precision != 2 {
		t.Fatalf("unexpected default precision: %d", cfg.Precision)
	}
}

func TestParseRejectsUnknownKeysAndBadValues(t *testing.T) {
	if _, err := Parse([]byte("precison: 3\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
	_, err := Parse([]byte("precision: 20\nlimits:\n  max_arrays: 0\n"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Issues) != 2 {
		t.Fatalf("unexpected issues: %v", ve.Issues)
	}
	if !strings.Contains(ve.Error(), "max_arrays") {
		t.Fatalf("unexpected message: %s", ve.Error())
	}
}

func TestArrayCapacityLimit(t *testing.T) {
	cfg, err := Parse([]byte("limits:\n  max_array_capacity: 50\n  default_array_capacity: 10\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Limits.MaxArrayCapacity != 50 {
		t.Fatalf("unexpected limit: %+v", cfg.Limits)
	}
	_, err = Parse([]byte("limits:\n  max_array_capacity: 5\n"))
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Issues) != 1 || !strings.Contains(ve.Issues[0], "max_array_capacity") {
		t.Fatalf("expected default above maximum to be rejected, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aeroki.yaml")
	if err := os.WriteFile(path, []byte("trace: true\nquit_words: [bye]\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.Trace || !cfg.IsQuit(" BYE ") || cfg.IsQuit("quit") {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvTrace: "1", EnvPrecision: "30"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("apply env failed: %v", err)
	}
	if !cfg.Trace || cfg.Precision != MaxPrecision {
		t.Fatalf("unexpected env overlay: %+v", cfg)
	}

	env[EnvTrace] = "maybe"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Fatalf("expected invalid toggle error")
	}
}
