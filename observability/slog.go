package observability

import (
	"log/slog"
	"os"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// SlogOptions configures the slog-backed Logger.
type SlogOptions struct {
	Level  string // debug|info|warn|error
	Format string // "console" or "json"
	File   string // optional path; enables rotating file output
}

// NewSlog builds a Logger on top of log/slog. When File is set, output goes
// to a size-rotated file instead of stderr.
func NewSlog(opts SlogOptions) Logger {
	lvl := parseLevel(opts.Level)

	out := os.Stderr
	var handler slog.Handler
	if strings.TrimSpace(opts.File) != "" {
		w := &lj.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})
	}
	return &slogLogger{l: slog.New(handler)}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type slogLogger struct {
	l *slog.Logger
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key(), f.Value()))
	}
	return out
}

func (s *slogLogger) Debug(msg string, fields ...Field) { s.l.Debug(msg, attrs(fields)...) }
func (s *slogLogger) Info(msg string, fields ...Field)  { s.l.Info(msg, attrs(fields)...) }
func (s *slogLogger) Warn(msg string, fields ...Field)  { s.l.Warn(msg, attrs(fields)...) }
func (s *slogLogger) Error(msg string, fields ...Field) { s.l.Error(msg, attrs(fields)...) }

func (s *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{l: s.l.With(attrs(fields)...)}
}
