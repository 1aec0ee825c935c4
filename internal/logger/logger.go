package logger

import "fmt"

// Logger is the minimal logging surface discovery and the commands write to.
type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
}

// StdoutLogger prints directly to stdout.
type StdoutLogger struct{}

func (l *StdoutLogger) Logf(format string, args ...interface{}) { fmt.Printf(format, args...) }
func (l *StdoutLogger) Log(msg string)                          { fmt.Println(msg) }

// NopLogger discards everything. Used in tests and quiet mode.
type NopLogger struct{}

func (l *NopLogger) Logf(format string, args ...interface{}) {}
func (l *NopLogger) Log(msg string)                          {}
