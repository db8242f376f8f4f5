package logger

import "log/slog"

// Interface represents a logger for dependency injection, matching the
// shape of the teacher's zap-backed Interface but re-grounded on log/slog
// (see logger.go's doc comment for why tint/slog supersedes zap here).
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Interface
	Named(name string) Interface
}

type slogLogger struct {
	l *slog.Logger
}

// NewLogger returns an Interface backed by the package-global slog
// logger.
func NewLogger() Interface {
	return &slogLogger{l: Get()}
}

// NewLoggerWithSlog wraps an existing *slog.Logger.
func NewLoggerWithSlog(l *slog.Logger) Interface {
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

func (s *slogLogger) With(args ...any) Interface {
	return &slogLogger{l: s.l.With(args...)}
}

func (s *slogLogger) Named(name string) Interface {
	return &slogLogger{l: s.l.With(slog.String("component", name))}
}
