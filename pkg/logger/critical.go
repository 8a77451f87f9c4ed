package logger

import (
	"context"
	"log/slog"
)

// Critical logs msg at LevelCritical. It never panics and accepts a nil logger.
func Critical(ctx context.Context, log *slog.Logger, msg string, attrs ...slog.Attr) {
	if log == nil {
		return
	}
	defer func() { _ = recover() }()
	log.LogAttrs(ctx, LevelCritical, msg, attrs...)
}
