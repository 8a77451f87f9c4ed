package config

import "errors"

var (
	ErrNilConfig       = errors.New("config: nil config")
	ErrReadConfig      = errors.New("config: failed to read configuration")
	ErrDecodeConfig    = errors.New("config: failed to decode configuration")
	ErrBindFlag        = errors.New("config: failed to bind flag")
	ErrInvalidMode     = errors.New("config: app.mode must be cli")
	ErrMissingLogPath  = errors.New("config: log.file.path is required")
	ErrMissingLanguage = errors.New("config: language list is empty")
	ErrInvalidLanguage = errors.New("config: language is not an ISO 639-1 code")
)
