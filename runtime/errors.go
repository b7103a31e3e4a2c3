package aruntime

import "fmt"

// FatalError is a runtime condition that ends the script: store exhaustion,
// array capacity overflow or underflow, and division by zero. The VM does
// not resume after returning one.
type FatalError struct {
	Pos string
	Msg string
}

func (e *FatalError) Error() string {
	if e.Pos != "" {
		return e.Pos + ": " + e.Msg
	}
	return e.Msg
}

func fatalf(format string, args ...any) *FatalError {
	return &FatalError{Msg: fmt.Sprintf(format, args...)}
}
