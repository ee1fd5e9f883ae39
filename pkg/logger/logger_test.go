package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			log, err := New(env, level)
			if err != nil {
				t.Fatalf("New(%q, %q) returned error: %v", env, level, err)
			}
			if !log.Core().Enabled(mustLevel(t, level)) {
				t.Errorf("New(%q, %q) does not enable its own level", env, level)
			}
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("production", "chatty"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func mustLevel(t *testing.T, level string) zapcore.Level {
	t.Helper()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		t.Fatal(err)
	}
	return lvl
}
