// Package clilog is the levelled diagnostic logger used by the ecmakit
// commands. It never exits the process.
package clilog

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
)

// Level enumerates severity tiers.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	// Silent suppresses every message.
	Silent
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "SILENT"}

func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLevel maps debug, info, warn, error and silent (any case) to a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("clilog: unknown level %q", s)
}

// Logger is a concurrency-safe levelled logger.
type Logger struct {
	mu    sync.Mutex
	level Level
	inner *log.Logger
	now   func() time.Time
}

// New returns a Logger that drops messages below min.
func New(w io.Writer, min Level) *Logger {
	return &Logger{level: min, inner: log.New(w, "", 0), now: time.Now}
}

// WithClock replaces the timestamp source. It returns l.
func (l *Logger) WithClock(now func() time.Time) *Logger {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
	return l
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(min Level) {
	l.mu.Lock()
	l.level = min
	l.mu.Unlock()
}

// Enabled reports whether messages at lvl are written.
func (l *Logger) Enabled(lvl Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lvl >= l.level && lvl < Silent
}

func (l *Logger) log(lvl Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lvl < l.level || lvl >= Silent {
		return
	}
	ts := l.now().UTC().Format(time.RFC3339)
	l.inner.Printf("[%s] %s  %s", lvl, ts, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(f string, a ...any) { l.log(Debug, f, a...) }
func (l *Logger) Infof(f string, a ...any)  { l.log(Info, f, a...) }
func (l *Logger) Warnf(f string, a ...any)  { l.log(Warn, f, a...) }
func (l *Logger) Errorf(f string, a ...any) { l.log(Error, f, a...) }
