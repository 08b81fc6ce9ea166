// Package diag implements the proxy diagnostics side channel: human readable,
// leveled lines written to a stream (stderr in the binary) that is never
// interleaved with protocol output. Protocol correctness must not depend on
// anything emitted here.
package diag

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Logger writes leveled diagnostic lines. Debugf and Infof are emitted only
// in verbose mode; Warnf and Errorf are always emitted. A nil Logger drops
// everything.
type Logger struct {
	writer  io.Writer
	session string
	verbose bool
}

// New returns a logger tagged with a fresh session id so that lines from
// several proxy instances sharing a terminal can be told apart.
func New(writer io.Writer, verbose bool) *Logger {
	return &Logger{
		writer:  writer,
		session: uuid.NewString()[:8],
		verbose: verbose,
	}
}

// Session returns the session tag carried on every line.
func (l *Logger) Session() string {
	if l == nil {
		return ""
	}
	return l.session
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.logf("DEBUG", format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	l.logf("INFO", format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf("WARN", format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf("ERROR", format, args...)
}

func (l *Logger) logf(level, format string, args ...interface{}) {
	if l == nil || l.writer == nil {
		return
	}
	fmt.Fprintf(l.writer, "[%v] [%v] %v\n", level, l.session, fmt.Sprintf(format, args...))
}
