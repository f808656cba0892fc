package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the log file used when none is configured, relative to the working directory.
const DefaultPath = "logs/saver.txt"

// Logger keeps timestamped lines in memory and appends each one to a file on disk.
// Safe for use from fetch goroutines and the render loop at once.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	now   func() time.Time
}

// New returns a Logger writing to path (DefaultPath when empty) and makes sure its directory exists.
func New(path string) *Logger {
	if path == "" {
		path = DefaultPath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// Log appends a line prefixed with [timestamp] and writes it to the log file.
// File errors are ignored; the line is still kept in memory.
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, stamped)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to format and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Path returns the file the logger appends to.
func (l *Logger) Path() string {
	return l.path
}
