// Package log provides structured logging for spanedit.
// It wraps tea.LogToFile with structured fields (level, category, timestamp)
// and is enabled by the --debug flag or SPANEDIT_DEBUG env. Every entry is
// also published on a broker so the playground can show a live log pane.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/spanedit/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel reads a level name such as "info" or "WARN". The empty string
// is debug.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelDebug, fmt.Errorf("unknown log level %q", s)
	}
}

// Category groups related log messages.
type Category string

const (
	CatContent   Category = "content"   // Document tree mutations
	CatSelection Category = "selection" // Caret and selection changes
	CatCommand   Category = "command"   // Intent dispatch
	CatChange    Category = "change"    // Change notifications
	CatEditor    Category = "editor"    // Editor session lifecycle
	CatConfig    Category = "config"    // Configuration loading/saving
	CatDocfile   Category = "docfile"   // Document and script files
	CatMode      Category = "mode"      // Playground events
	CatCache     Category = "cache"     // cache operations
	CatTrace     Category = "trace"     // Tracing setup and export
)

// Logger writes formatted entries and publishes them.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	minLevel Level
	broker   *pubsub.Broker[string]
}

// defaultLogger is nil until initialized; logging is a no-op until then.
var defaultLogger *Logger

func newLogger(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}
}

// InitWithTeaLog uses tea.LogToFile for initialization.
// Returns a cleanup function that closes the log file.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	defaultLogger = newLogger(f)
	return func() {
		defaultLogger.broker.Close()
		_ = f.Close()
	}, nil
}

// InitWriter routes log entries to w instead of a file.
func InitWriter(w io.Writer) {
	defaultLogger = newLogger(w)
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.minLevel = level
		defaultLogger.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := defaultLogger
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}

	// Format: 2026-01-02T10:45:00 [ERROR] [selection] message key=value key2=value2
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	entry := b.String()

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry)
	}
	l.broker.Publish(pubsub.LogEntryEvent, entry)
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[string]

// NewListener subscribes to log entries for the lifetime of ctx. It returns
// nil while logging is off.
func NewListener(ctx context.Context) *LogListener {
	if defaultLogger == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, defaultLogger.broker)
}
