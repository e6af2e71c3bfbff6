package app

import (
	"log/slog"
	"os"

	"service-shipping-go/internal/logx"
)

// NewLogger builds the service-wide JSON logger.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base)
}
