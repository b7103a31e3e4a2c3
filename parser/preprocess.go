package parser

import (
	"strconv"
	"strings"
)

// Line is one source line as fed to the evaluator. Content is kept raw;
// it is lexed again every time the line executes.
type Line struct {
	File    string
	Number  int
	Content string
}

func normalize(raw string) string {
	if after, ok := strings.CutPrefix(raw, "\uFEFF"); ok {
		return after
	}
	return raw
}

// ToLines splits raw text into numbered lines without dropping anything.
func ToLines(file, raw string) []Line {
	norm := normalize(raw)
	norm = strings.ReplaceAll(norm, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, "\r", "\n")
	parts := strings.Split(norm, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	out := make([]Line, 0, len(parts))
	for i, p := range parts {
		out = append(out, Line{File: file, Number: i + 1, Content: p})
	}
	return out
}

// IsComment reports whether the first non-space character of raw is '#'.
func IsComment(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "#")
}

// Preprocess applies the batch-mode filters: blank lines and comment lines
// are removed. Interactive input skips this step.
func Preprocess(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		trimmed := strings.TrimSpace(l.Content)
		if trimmed == "" || IsComment(trimmed) {
			continue
		}
		l.Content = trimmed
		out = append(out, l)
	}
	return out
}

func (l Line) String() string {
	if l.File == "" {
		return l.Content
	}
	return l.File + ":" + strconv.Itoa(l.Number) + ": " + l.Content
}

// Pos formats the location prefix used in diagnostics.
func (l Line) Pos() string {
	if l.File == "" {
		return "line " + strconv.Itoa(l.Number)
	}
	return l.File + ":" + strconv.Itoa(l.Number)
}
