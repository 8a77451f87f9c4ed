package message

import "github.com/dmitrymomot/console/pkg/i18n"

// Localization is the localization header of a request or response.
type Localization struct {
	language string
}

// NewLocalization creates a localization for lang.
// An empty lang yields the default language.
func NewLocalization(lang string) Localization {
	if lang == "" {
		lang = i18n.DefaultLang
	}
	return Localization{language: lang}
}

// Language returns the ISO 639-1 language code.
func (l Localization) Language() string {
	if l.language == "" {
		return i18n.DefaultLang
	}
	return l.language
}
