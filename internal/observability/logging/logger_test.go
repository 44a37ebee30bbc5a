package logging

import (
	"context"
	"log/slog"
	"testing"

	"rsstok/internal/handler/http/requestid"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("LOG_LEVEL="+tt.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)
			if got := levelFromEnv(); got != tt.want {
				t.Errorf("levelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithRequestID_NoID(t *testing.T) {
	logger := NewLogger()
	got := WithRequestID(context.Background(), logger)
	if got != logger {
		t.Error("WithRequestID() should return the same logger when no ID is set")
	}
}

func TestWithRequestID_WithID(t *testing.T) {
	logger := NewLogger()
	ctx := requestid.WithRequestID(context.Background(), "req-123")
	got := WithRequestID(ctx, logger)
	if got == logger {
		t.Error("WithRequestID() should return a derived logger when ID is set")
	}
}

func TestLoggerContext(t *testing.T) {
	logger := NewTextLogger()
	ctx := WithLogger(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext() did not return the stored logger")
	}
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("FromContext() without stored logger should return default")
	}
}
