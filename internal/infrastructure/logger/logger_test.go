package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewRespectsLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(Config{Level: tt.level, Format: "json"})
			if l.GetLevel() != tt.want {
				t.Fatalf("expected level %s, got %s", tt.want, l.GetLevel())
			}
		})
	}
}

func TestNewConsoleFormat(t *testing.T) {
	// Console format must not panic and still produce a usable logger.
	l := New(Config{Level: "info", Format: "console"})
	l.Info().Msg("console logger smoke test")
}
