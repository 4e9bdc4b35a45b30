package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger wraps slog with the package/function breadcrumbs used across the
// codebase. Err/Error/ErrMsg both log and return an error so call sites can
// `return log.Err(...)` in one line.
type Logger struct {
	logger   *slog.Logger
	pkg      string
	file     string
	function string
}

func New(pkg string) Logger {
	return Logger{
		logger: slog.Default(),
		pkg:    pkg,
	}
}

func (l Logger) File(file string) Logger {
	l.file = file
	return l
}

func (l Logger) Function(function string) Logger {
	l.function = function
	return l
}

func (l Logger) attrs(args ...any) []any {
	out := []any{"package", l.pkg}
	if l.file != "" {
		out = append(out, "file", l.file)
	}
	if l.function != "" {
		out = append(out, "function", l.function)
	}
	return append(out, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, l.attrs(args...)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, l.attrs(args...)...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, l.attrs(args...)...)
}

// Er logs an error without returning one.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger.Error(msg, l.attrs(append(args, "error", err)...)...)
}

// ErMsg logs an error message without an underlying error value.
func (l Logger) ErMsg(msg string, args ...any) {
	l.logger.Error(msg, l.attrs(args...)...)
}

// Err logs the error and returns it wrapped with the message.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from the message.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return fmt.Errorf("%s", msg)
}

// ErrMsg returns a new error from the message without extra fields.
func (l Logger) ErrMsg(msg string) error {
	l.ErMsg(msg)
	return fmt.Errorf("%s", msg)
}

// InitDefault installs a text handler at the given level as the process-wide
// slog default.
func InitDefault(level slog.Level) {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
