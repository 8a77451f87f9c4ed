package logger

import "errors"

var (
	ErrUnknownLevel = errors.New("logger: unknown level")
	ErrOpenLogFile  = errors.New("logger: failed to open log file")
)
