package logger

import "log/slog"

// NewNope returns a logger that drops every record without formatting it.
// The bootstrap uses it until the configured file logger is open.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
