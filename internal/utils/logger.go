// internal/utils/logger.go

package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Logger defines the interface for logging throughout the application.
// The extraction pipeline receives one as its diagnostic observer; call
// sites may pass NopLogger when diagnostics are unwanted.
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLogLevel converts a configuration string into a LogLevel.
// Unknown values fall back to InfoLevel.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// LeveledLogger writes leveled, field-annotated log lines to an io.Writer.
type LeveledLogger struct {
	level  LogLevel
	out    io.Writer
	fields map[string]interface{}
	mu     *sync.Mutex
}

// NewLogger creates a logger writing to stderr at InfoLevel.
func NewLogger() Logger {
	return NewLoggerWithLevel(InfoLevel)
}

// NewLoggerWithLevel creates a stderr logger with the specified level.
func NewLoggerWithLevel(level LogLevel) Logger {
	return NewLoggerWithOutput(level, os.Stderr)
}

// NewLoggerWithOutput creates a logger with the specified level and output.
func NewLoggerWithOutput(level LogLevel, out io.Writer) Logger {
	return &LeveledLogger{
		level:  level,
		out:    out,
		fields: make(map[string]interface{}),
		mu:     &sync.Mutex{},
	}
}

func (l *LeveledLogger) Debug(msg string) { l.log(DebugLevel, msg) }
func (l *LeveledLogger) Info(msg string)  { l.log(InfoLevel, msg) }
func (l *LeveledLogger) Warn(msg string)  { l.log(WarnLevel, msg) }
func (l *LeveledLogger) Error(msg string) { l.log(ErrorLevel, msg) }

func (l *LeveledLogger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...))
}

func (l *LeveledLogger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...))
}

func (l *LeveledLogger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...))
}

func (l *LeveledLogger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
}

func (l *LeveledLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *LeveledLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &LeveledLogger{
		level:  l.level,
		out:    l.out,
		fields: merged,
		mu:     l.mu,
	}
}

// log formats and writes a line if it meets the minimum level. Fields are
// emitted in sorted key order so output is stable.
func (l *LeveledLogger) log(level LogLevel, msg string) {
	if level < l.level {
		return
	}

	levelStr := [...]string{"DEBUG", "INFO", "WARN", "ERROR"}[level]
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] %s", timestamp, levelStr, msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, l.fields[k]))
		}
		b.WriteString(" fields={" + strings.Join(parts, ", ") + "}")
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, b.String())
}

// nopLogger discards everything.
type nopLogger struct{}

// NopLogger returns a logger that discards all output.
func NopLogger() Logger { return nopLogger{} }

func (nopLogger) Debug(string)                             {}
func (nopLogger) Debugf(string, ...interface{})            {}
func (nopLogger) Info(string)                              {}
func (nopLogger) Infof(string, ...interface{})             {}
func (nopLogger) Warn(string)                              {}
func (nopLogger) Warnf(string, ...interface{})             {}
func (nopLogger) Error(string)                             {}
func (nopLogger) Errorf(string, ...interface{})            {}
func (nopLogger) WithField(string, interface{}) Logger     { return nopLogger{} }
func (nopLogger) WithFields(map[string]interface{}) Logger { return nopLogger{} }
