// Package logger provides the verbose-gated logger used across nlsh.
package logger

import (
	"log"
	"os"
)

// StdLogger is a lightweight implementation backed by Go's log package.
// All output goes to stderr so it never interleaves with streamed command
// output on stdout.
type StdLogger struct {
	verbose bool
	backend *log.Logger
}

// NewStd creates a StdLogger. When verbose is false every level is a no-op.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{
		verbose: verbose,
		backend: log.New(os.Stderr, "nlsh ", log.LstdFlags),
	}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.emit("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.emit("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.emit("[WARN]", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.backend.Println("[ERROR]", msg, err, fields)
}

func (l *StdLogger) emit(level, msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	if len(fields) == 0 {
		l.backend.Println(level, msg)
		return
	}
	l.backend.Println(level, msg, fields)
}
