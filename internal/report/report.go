// Package report prints progress and failure diagnostics for a batch run.
package report

import (
	"fmt"
	"io"
	"log"
)

// Logger writes to a single stream. Debug output is only printed when
// verbose is enabled; failures are always printed.
type Logger struct {
	out     *log.Logger
	verbose bool
}

// New returns a Logger writing to w. A non-empty runID is used as the line
// prefix.
func New(w io.Writer, verbose bool, runID string) *Logger {
	prefix := ""
	if runID != "" {
		prefix = fmt.Sprintf("[%s] ", runID)
	}
	return &Logger{out: log.New(w, prefix, 0), verbose: verbose}
}

// Discard returns a Logger that prints nothing.
func Discard() *Logger { return New(io.Discard, false, "") }

// Verbose reports whether debug output is enabled.
func (l *Logger) Verbose() bool { return l.verbose }

func (l *Logger) Logln(msg string) {
	if l.verbose {
		l.out.Println(msg)
	}
}

func (l *Logger) Logf(format string, args ...interface{}) {
	if l.verbose {
		l.out.Printf(format, args...)
	}
}

// Skipped reports an input that could not be watermarked.
func (l *Logger) Skipped(input string, err error) {
	l.out.Printf("Skipping %s: %v", input, err)
}
