package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger. Only APP_ENV=dev gets debug output,
// every other environment logs at info.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}
