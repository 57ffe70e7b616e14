// Package logging wraps log/slog behind the small interface the rest of listboard
// depends on, with per-context default attributes.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	DebugCtx(ctx context.Context, msg string, args ...any)
	InfoCtx(ctx context.Context, msg string, args ...any)
	WarnCtx(ctx context.Context, msg string, args ...any)
	ErrorCtx(ctx context.Context, msg string, args ...any)
}

type SlogLogger struct {
	logger *slog.Logger
}

func New(w io.Writer, level slog.Level) *SlogLogger {
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// Discard returns a logger that drops everything.
func Discard() *SlogLogger {
	return New(io.Discard, slog.LevelError+1)
}

// OpenFile appends logs to path, creating parent directories. The returned closer
// must be called on shutdown.
func OpenFile(path string, level slog.Level) (*SlogLogger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), f, nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level: %s", s)
	}
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

type ctxArgsKey struct{}

func ctxArgs(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	args, _ := ctx.Value(ctxArgsKey{}).([]any)
	return args
}

// WithArgs returns a context whose Ctx log calls carry args in addition to their own.
func WithArgs(ctx context.Context, args ...any) context.Context {
	merged := append(append([]any{}, ctxArgs(ctx)...), args...)
	return context.WithValue(ctx, ctxArgsKey{}, merged)
}

func (l *SlogLogger) DebugCtx(ctx context.Context, msg string, args ...any) {
	l.logger.Debug(msg, append(args, ctxArgs(ctx)...)...)
}

func (l *SlogLogger) InfoCtx(ctx context.Context, msg string, args ...any) {
	l.logger.Info(msg, append(args, ctxArgs(ctx)...)...)
}

func (l *SlogLogger) WarnCtx(ctx context.Context, msg string, args ...any) {
	l.logger.Warn(msg, append(args, ctxArgs(ctx)...)...)
}

func (l *SlogLogger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	l.logger.Error(msg, append(args, ctxArgs(ctx)...)...)
}
