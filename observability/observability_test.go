package observability

import (
	"errors"
	"log/slog"
	"testing"
)

func TestFieldConstructors(t *testing.T) {
	if f := String("k", "v"); f.Key() != "k" || f.Value() != "v" {
		t.Fatalf("string field: %v=%v", f.Key(), f.Value())
	}
	if f := Int("n", 7); f.Value() != 7 {
		t.Fatalf("int field: %v", f.Value())
	}
	if f := Float64("x", 1.5); f.Value() != 1.5 {
		t.Fatalf("float field: %v", f.Value())
	}
	if f := Bool("b", true); f.Value() != true {
		t.Fatalf("bool field: %v", f.Value())
	}
	err := errors.New("boom")
	if f := Error("err", err); f.Value() != err {
		t.Fatalf("error field: %v", f.Value())
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l = l.With(String("k", "v"))
	l.Debug("quiet")
	l.Error("still quiet", Int("n", 1))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewSlogWith(t *testing.T) {
	l := NewSlog(SlogOptions{Level: "error"})
	l = l.With(String("component", "test"))
	l.Info("suppressed at error level", Int("n", 2))
}
