package config

import (
	"fmt"

	"github.com/dmitrymomot/console/pkg/i18n"
)

// Validate checks the keys the bootstrap cannot run without.
// Database roles are not checked here; the pool rejects missing roles.
func Validate(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if cfg.App.Mode != ModeCLI {
		return fmt.Errorf("%w: %q", ErrInvalidMode, cfg.App.Mode)
	}
	if cfg.Log.File.Path == "" {
		return ErrMissingLogPath
	}
	if len(cfg.Language) == 0 {
		return ErrMissingLanguage
	}
	for _, lang := range cfg.Language {
		if !i18n.IsISO6391(lang) {
			return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
	}
	return nil
}
