// Package logging provides the stderr logger used by the CLI and server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// ParseLevel maps "debug", "info" and "error" to a Level. Unknown values
// fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes timestamped lines at or above its level.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
	now   func() time.Time
}

// New creates a logger writing to out.
func New(out io.Writer, level Level) *Logger {
	return &Logger{out: out, level: level, now: time.Now}
}

// Stderr creates a logger on os.Stderr.
func Stderr(level Level) *Logger {
	return New(os.Stderr, level)
}

func (l *Logger) Debug(message string) { l.write(LevelDebug, "DEBUG", message) }
func (l *Logger) Info(message string)  { l.write(LevelInfo, "INFO", message) }
func (l *Logger) Error(message string) { l.write(LevelError, "ERROR", message) }

func (l *Logger) write(level Level, tag, message string) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s [%s] %s\n", l.now().Format(time.RFC3339), tag, message)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string) {}
func (Nop) Info(string)  {}
func (Nop) Error(string) {}
