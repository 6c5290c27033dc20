package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide structured logger and installs it as the
// slog default so middleware and packages without an injected logger share it.
func NewLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	return logger
}
