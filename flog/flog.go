// Package flog is the ambient structured-logging seam shared by every
// go-flowgraph package: worker panics, shutdown timeouts, refill errors,
// and swallowed publish/subscribe errors are all routed through here.
//
// A package-level, swappable logger. The default is built on
// github.com/joeycumines/logiface with a github.com/joeycumines/logiface-slog
// backend, writing JSON to os.Stderr at informational level and above.
package flog

import (
	"log/slog"
	"os"
	"sync"

	"github.com/joeycumines/logiface"
	logifaceslog "github.com/joeycumines/logiface-slog"
)

// Fields is a convenience alias for structured key/value pairs passed to
// Error/Warn/Info/Debug.
type Fields map[string]any

// Logger is the interface every go-flowgraph package logs through.
type Logger interface {
	Debug(category, message string, fields Fields)
	Info(category, message string, fields Fields)
	Warn(category, message string, fields Fields)
	Error(category, message string, err error, fields Fields)
}

var (
	mu      sync.RWMutex
	current Logger = newDefault()
)

// SetLogger installs l as the package-level logger used by every
// go-flowgraph package. Passing nil restores the default logiface-slog
// logger writing to os.Stderr.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = newDefault()
	}
	current = l
}

// Default returns the currently installed package-level logger.
func Default() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func newDefault() Logger {
	handler := slog.NewJSONHandler(os.Stderr, nil)
	l := logiface.New[*logifaceslog.Event](
		logifaceslog.NewLogger(handler),
		logiface.WithLevel[*logifaceslog.Event](logiface.LevelInformational),
	)
	return &logifaceLogger{l: l}
}

// logifaceLogger adapts a *logiface.Logger[*logifaceslog.Event] to Logger.
type logifaceLogger struct {
	l *logiface.Logger[*logifaceslog.Event]
}

func (x *logifaceLogger) Debug(category, message string, fields Fields) {
	logEvent(x.l.Debug(), category, message, nil, fields)
}

func (x *logifaceLogger) Info(category, message string, fields Fields) {
	logEvent(x.l.Info(), category, message, nil, fields)
}

func (x *logifaceLogger) Warn(category, message string, fields Fields) {
	logEvent(x.l.Warning(), category, message, nil, fields)
}

func (x *logifaceLogger) Error(category, message string, err error, fields Fields) {
	logEvent(x.l.Err(), category, message, err, fields)
}

func logEvent(b *logiface.Builder[*logifaceslog.Event], category, message string, err error, fields Fields) {
	b = b.Str("category", category)
	if err != nil {
		b = b.Err(err)
	}
	for k, v := range fields {
		b = b.Any(k, v)
	}
	b.Log(message)
}

// Debug logs via the current package-level logger.
func Debug(category, message string, fields Fields) { Default().Debug(category, message, fields) }

// Info logs via the current package-level logger.
func Info(category, message string, fields Fields) { Default().Info(category, message, fields) }

// Warn logs via the current package-level logger.
func Warn(category, message string, fields Fields) { Default().Warn(category, message, fields) }

// Error logs via the current package-level logger.
func Error(category, message string, err error, fields Fields) {
	Default().Error(category, message, err, fields)
}
