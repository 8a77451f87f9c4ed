package internal

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/console/pkg/logger"
)

type runKey struct{}

func runFromContext(ctx context.Context) (*run, bool) {
	r, ok := ctx.Value(runKey{}).(*run)
	return r, ok && r != nil
}

// RequestIDExtractor adds the request id of the running bootstrap to log entries.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		r, ok := runFromContext(ctx)
		if !ok || r.req == nil {
			return slog.Attr{}, false
		}
		return slog.String("request_id", r.req.ID()), true
	}
}
