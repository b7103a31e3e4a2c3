package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	MaxPrecision = 12

	EnvTrace     = "AEROKI_TRACE"
	EnvPrecision = "AEROKI_PRECISION"
)

// Limits bounds the runtime stores. Exceeding one of them at creation time
// is a fatal runtime error.
type Limits struct {
	MaxVariables         int `yaml:"max_variables"`
	MaxArrays            int `yaml:"max_arrays"`
	MaxFunctions         int `yaml:"max_functions"`
	DefaultArrayCapacity int `yaml:"default_array_capacity"`
	MaxArrayCapacity     int `yaml:"max_array_capacity"`
}

// Config represents the parsed contents of an aeroki.yaml file layered on
// top of the defaults.
type Config struct {
	Precision      int      `yaml:"precision"`
	FixedPrecision bool     `yaml:"fixed_precision"`
	Trace          bool     `yaml:"trace"`
	Prompt         string   `yaml:"prompt"`
	InputPrompt    string   `yaml:"input_prompt"`
	QuitWords      []string `yaml:"quit_words"`
	Limits         Limits   `yaml:"limits"`
}

func Default() Config {
	return Config{
		Precision:   2,
		Prompt:      "aeroki> ",
		InputPrompt: "กรอกค่า",
		QuitWords:   []string{"ออก", "quit", "exit"},
		Limits: Limits{
			MaxVariables:         100,
			MaxArrays:            100,
			MaxFunctions:         100,
			DefaultArrayCapacity: 1000,
			MaxArrayCapacity:     1 << 20,
		},
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads a YAML config file. Keys missing from the file keep their
// default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment toggles. lookup is os.LookupEnv outside of
// tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTrace); ok {
		on, err := parseToggle(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTrace, err)
		}
		c.Trace = on
	}
	if v, ok := lookup(EnvPrecision); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvPrecision, err)
		}
		c.Precision = ClampPrecision(n)
	}
	return nil
}

func (c Config) Validate() error {
	var issues []string
	if c.Precision < 0 || c.Precision > MaxPrecision {
		issues = append(issues, fmt.Sprintf("precision must be within [0,%d], got %d", MaxPrecision, c.Precision))
	}
	if c.Limits.MaxVariables <= 0 {
		issues = append(issues, "limits.max_variables must be positive")
	}
	if c.Limits.MaxArrays <= 0 {
		issues = append(issues, "limits.max_arrays must be positive")
	}
	if c.Limits.MaxFunctions <= 0 {
		issues = append(issues, "limits.max_functions must be positive")
	}
	if c.Limits.DefaultArrayCapacity <= 0 {
		issues = append(issues, "limits.default_array_capacity must be positive")
	}
	if c.Limits.MaxArrayCapacity <= 0 {
		issues = append(issues, "limits.max_array_capacity must be positive")
	} else if c.Limits.DefaultArrayCapacity > c.Limits.MaxArrayCapacity {
		issues = append(issues, fmt.Sprintf("limits.default_array_capacity %d exceeds limits.max_array_capacity %d",
			c.Limits.DefaultArrayCapacity, c.Limits.MaxArrayCapacity))
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ClampPrecision bounds a decimal place count to [0, MaxPrecision].
func ClampPrecision(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxPrecision {
		return MaxPrecision
	}
	return n
}

// IsQuit reports whether an interactive line is one of the quit words.
func (c Config) IsQuit(line string) bool {
	line = strings.TrimSpace(line)
	for _, w := range c.QuitWords {
		if strings.EqualFold(line, w) {
			return true
		}
	}
	return false
}

func parseToggle(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off", "no":
		return false, nil
	case "1", "true", "on", "yes":
		return true, nil
	default:
		return false, fmt.Errorf("invalid toggle %q", v)
	}
}
