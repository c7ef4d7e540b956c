package basecamp

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// StderrLogger writes structured log lines to stderr. It is wired in as the
// default logger when debug mode is on and no Logger is configured.
type StderrLogger struct{}

// NewStderrLogger creates a logger writing to stderr.
func NewStderrLogger() *StderrLogger {
	return &StderrLogger{}
}

func (l *StderrLogger) log(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var builder strings.Builder

	builder.WriteString(level)
	builder.WriteString(" ")
	builder.WriteString(msg)

	for _, key := range keys {
		builder.WriteString(fmt.Sprintf(" %s=%v", key, fields[key]))
	}

	fmt.Fprintln(os.Stderr, builder.String())
}

// Debug implements Logger.
func (l *StderrLogger) Debug(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

// Info implements Logger.
func (l *StderrLogger) Info(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

// Warn implements Logger.
func (l *StderrLogger) Warn(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

// Error implements Logger.
func (l *StderrLogger) Error(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}
