package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var (
	globalLevel  = slog.LevelDebug
	handlerMutex sync.RWMutex
)

// SetLevel sets the global log level
func SetLevel(levelStr string) {
	level := ParseLevel(levelStr)
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	globalLevel = level
}

// ParseLevel parses a string to an slog level
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// ColorableStdout returns os.Stdout wrapped so ANSI escape codes render
// correctly on every platform InitLogger runs on, including Windows
// consoles that don't natively understand them.
func ColorableStdout() io.Writer {
	return colorable.NewColorableStdout()
}

// isTerminalWriter reports whether w is a terminal file descriptor, so
// the handler only emits ANSI color codes when something will actually
// render them (never into a redirected file or pipe).
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

const ansiReset = "\x1b[0m"

// levelColor returns the ANSI color code used to highlight a level tag.
func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\x1b[31m" // red
	case level >= slog.LevelWarn:
		return "\x1b[33m" // yellow
	case level >= slog.LevelInfo:
		return "\x1b[36m" // cyan
	default:
		return "\x1b[90m" // gray
	}
}

// customHandler supports multiple outputs with level filtering
type customHandler struct {
	outs     []io.Writer // Can write to multiple outputs (stdout, file, etc.)
	colorize []bool      // parallel to outs: true if that output is a TTY
	mu       sync.Mutex
}

// Handle implements slog.Handler
func (h *customHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Check if we should log this level
	handlerMutex.RLock()
	if record.Level < globalLevel {
		handlerMutex.RUnlock()
		return nil
	}
	handlerMutex.RUnlock()

	// Format the log message
	timestamp := record.Time.Format("15:04:05")
	levelStr := record.Level.String()
	message := record.Message

	// Add attributes to message if any
	var attrs []string
	record.Attrs(func(a slog.Attr) bool {
		if a.Key != "time" && a.Key != "level" && a.Key != "msg" {
			attrs = append(attrs, a.Key+"="+a.Value.String())
		}
		return true
	})

	if len(attrs) > 0 {
		message = message + " " + strings.Join(attrs, " ")
	}

	// Write to all outputs, colorizing the level tag on TTY outputs
	if len(h.outs) > 0 {
		plain := "[" + timestamp + "] [" + strings.ToUpper(levelStr) + "] " + message + "\n"
		colored := "[" + timestamp + "] " + levelColor(record.Level) + "[" + strings.ToUpper(levelStr) + "]" + ansiReset + " " + message + "\n"
		for i, out := range h.outs {
			if out == nil {
				continue
			}
			line := plain
			if i < len(h.colorize) && h.colorize[i] {
				line = colored
			}
			_, _ = out.Write([]byte(line))
		}
	}

	return nil
}

// WithAttrs implements slog.Handler
func (h *customHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

// WithGroup implements slog.Handler
func (h *customHandler) WithGroup(name string) slog.Handler {
	return h
}

// Enabled implements slog.Handler
func (h *customHandler) Enabled(ctx context.Context, level slog.Level) bool {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return level >= globalLevel
}

// InitLogger initializes the global logger with one or more output writers
func InitLogger(outputs ...io.Writer) {
	colorize := make([]bool, len(outputs))
	for i, out := range outputs {
		colorize[i] = isTerminalWriter(out)
	}

	handler := &customHandler{
		outs:     outputs,
		colorize: colorize,
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// Convenience functions that use the default logger
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
