package eval

import "fmt"

// RuntimeError is a fault raised during evaluation, carrying the
// source line it originates from so the top-level Interpret call can
// format it through diag.Sink.Runtime. Line is 0 when no token is
// available, rendered "unknown".
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string { return e.Msg }

func runtimeErrorf(line int, format string, args ...interface{}) error {
	return &RuntimeError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
