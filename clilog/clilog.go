// Package clilog is the abstract logging sink used throughout netlistdb:
// every fallible operation logs its diagnostic through a Sink before
// returning failure to its caller, rather than constructing error values
// that carry the message themselves.
package clilog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/rs/xid"
)

// Level is a clilog severity, ordered the same way the teacher's
// core/util.go extends slog's own levels with project-specific ones.
type Level int

const (
	LevelTrace Level = Level(slog.LevelDebug) - 4
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
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

// Tag is a per-diagnostic-site identifier (e.g. "NL_SV_LIT", "NL_SV_NETIO")
// used both for readers grepping logs and to key the suppression policy.
type Tag string

// Sink is the logging backend. Log is called for every diagnostic, already
// filtered by the suppression policy (Log is only called while a message
// of this Tag is still allowed through).
type Sink interface {
	Log(level Level, tag Tag, msg string)
}

// slogSink adapts a *slog.Logger into a Sink.
type slogSink struct {
	logger *slog.Logger
}

func (s *slogSink) Log(level Level, tag Tag, msg string) {
	s.logger.Log(context.Background(), slog.Level(level), msg, slog.String("tag", string(tag)))
}

// NewSlogSink wraps an existing *slog.Logger as a Sink.
func NewSlogSink(logger *slog.Logger) Sink {
	return &slogSink{logger: logger}
}

// NopSink discards every message; useful in tests that don't want log
// noise, mirroring the teacher's test-oriented logger initialization but
// as an injectable value instead of a process-global install.
type NopSink struct{}

func (NopSink) Log(Level, Tag, string) {}

var defaultSink Sink = NewSlogSink(slog.New(slog.NewTextHandler(os.Stderr, nil)))
var defaultMu sync.Mutex

// SetSink installs the package-level default sink, used by every call
// that doesn't go through an explicit Logger (e.g. netlistdb.Builder
// defaults to this before WithSink is called).
func SetSink(s Sink) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultSink = s
}

// DefaultSink returns the current package-level default sink.
func DefaultSink() Sink {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultSink
}

// DefaultMaxPrintCount bounds how many times a single (level, tag) pair is
// printed before further occurrences are suppressed.
const DefaultMaxPrintCount = 5

// Logger is a Sink paired with its own suppression counters, the
// equivalent of the original's process-global PRINT_COUNT table scoped to
// one Logger value instead, so independent Builder runs (e.g. concurrent
// tests) don't share suppression state.
type Logger struct {
	sink         Sink
	maxPerTag    int
	sessionID    xid.ID
	mu           sync.Mutex
	counts       map[counterKey]int
	suppressedAt map[counterKey]bool
}

type counterKey struct {
	level Level
	tag   Tag
}

// NewLogger builds a Logger writing to sink, suppressing after
// DefaultMaxPrintCount occurrences of the same (level, tag) pair. It is
// stamped with a fresh xid.New() session id, attached to every record it
// emits, so log lines from concurrent builds can be told apart.
func NewLogger(sink Sink) *Logger {
	return &Logger{
		sink:         sink,
		maxPerTag:    DefaultMaxPrintCount,
		sessionID:    xid.New(),
		counts:       make(map[counterKey]int),
		suppressedAt: make(map[counterKey]bool),
	}
}

// SessionID returns this Logger's build-session id.
func (l *Logger) SessionID() xid.ID {
	return l.sessionID
}

// WithSession returns a new Logger writing to the same sink with the same
// suppression threshold, carrying id as its session id and its own fresh
// suppression counters. Builder.Build calls this once per invocation so
// concurrent builds sharing a sink don't share suppression state, and
// every diagnostic a build emits can be correlated back to it.
func (l *Logger) WithSession(id xid.ID) *Logger {
	return &Logger{
		sink:         l.sink,
		maxPerTag:    l.maxPerTag,
		sessionID:    id,
		counts:       make(map[counterKey]int),
		suppressedAt: make(map[counterKey]bool),
	}
}

// SetMaxPrintCount overrides the suppression threshold for this Logger.
func (l *Logger) SetMaxPrintCount(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.maxPerTag = n
}

func (l *Logger) log(level Level, tag Tag, msg string) {
	l.mu.Lock()
	k := counterKey{level, tag}
	l.counts[k]++
	count := l.counts[k]
	limit := l.maxPerTag
	l.mu.Unlock()

	msg = fmt.Sprintf("[%s] %s", l.sessionID, msg)

	if count < limit {
		l.sink.Log(level, tag, msg)
		return
	}
	if count == limit {
		l.sink.Log(level, tag, msg)
		l.sink.Log(level, tag, fmt.Sprintf("[%s] further %s (%s) will be suppressed.", l.sessionID, level, tag))
		return
	}
	// beyond the threshold: dropped silently.
}

func (l *Logger) Trace(tag Tag, format string, args ...any) {
	l.log(LevelTrace, tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(tag Tag, format string, args ...any) {
	l.log(LevelDebug, tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(tag Tag, format string, args ...any) {
	l.log(LevelInfo, tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(tag Tag, format string, args ...any) {
	l.log(LevelWarn, tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(tag Tag, format string, args ...any) {
	l.log(LevelError, tag, fmt.Sprintf(format, args...))
}

// defaultLogger is a package-level Logger whose Sink forwards to whatever
// SetSink last installed, used by code that has not been handed its own
// *Logger (e.g. package-level Trace/Debug/Info/Warn/Error below).
var defaultLogger = NewLogger(forwardingSink{})

// forwardingSink is a Sink that always forwards to the current package
// default, so defaultLogger keeps working across SetSink calls instead of
// freezing the sink it was built with.
type forwardingSink struct{}

func (forwardingSink) Log(level Level, tag Tag, msg string) {
	DefaultSink().Log(level, tag, msg)
}

// Default returns the package-level Logger, the one Trace/Debug/Info/Warn/
// Error below delegate to. Builder.NewBuilder uses this unless WithSink
// installs a dedicated Logger.
func Default() *Logger { return defaultLogger }

func Trace(tag Tag, format string, args ...any) { defaultLogger.Trace(tag, format, args...) }
func Debug(tag Tag, format string, args ...any) { defaultLogger.Debug(tag, format, args...) }
func Info(tag Tag, format string, args ...any)  { defaultLogger.Info(tag, format, args...) }
func Warn(tag Tag, format string, args ...any)  { defaultLogger.Warn(tag, format, args...) }
func Error(tag Tag, format string, args ...any) { defaultLogger.Error(tag, format, args...) }
