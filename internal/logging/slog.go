package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewJSONLogger writes JSON lines to w. Debug output is enabled only for the
// "development" environment.
func NewJSONLogger(w io.Writer, env string) *SlogLogger {
	level := slog.LevelInfo
	if strings.EqualFold(env, "development") {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h))
}

// NewNopLogger discards everything; handy in tests.
func NewNopLogger() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.Log(ctx, slog.LevelDebug, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.Log(ctx, slog.LevelInfo, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.Log(ctx, slog.LevelWarn, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.Log(ctx, slog.LevelError, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

func withRequestID(ctx context.Context, args []any) []any {
	if id := RequestID(ctx); id != "" {
		return append(args, "request_id", id)
	}
	return args
}
