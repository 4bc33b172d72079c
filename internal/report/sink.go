package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Sink receives the user-facing lines of a run as they are produced.
type Sink interface {
	Line(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Success(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// TextSink writes every line straight to its writers without buffering so
// progress stays visible on long runs. Warnings and errors carry a tier
// prefix; informational and success lines are written as is.
type TextSink struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

func NewTextSink(out, errOut io.Writer) *TextSink {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &TextSink{out: out, err: errOut}
}

func (s *TextSink) write(w io.Writer, prefix, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = io.WriteString(w, prefix+text)
	if f, ok := w.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

func (s *TextSink) Line(format string, args ...interface{}) {
	s.write(s.out, "", fmt.Sprintf(format, args...))
}

func (s *TextSink) Warning(format string, args ...interface{}) {
	s.write(s.out, "Warning: ", fmt.Sprintf(format, args...))
}

func (s *TextSink) Success(format string, args ...interface{}) {
	s.write(s.out, "", fmt.Sprintf(format, args...))
}

func (s *TextSink) Error(format string, args ...interface{}) {
	s.write(s.err, "Error: ", fmt.Sprintf(format, args...))
}
