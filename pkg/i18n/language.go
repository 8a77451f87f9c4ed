package i18n

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// IsISO6391 reports whether code is a known two-letter ISO 639-1 language code.
// The check is case-sensitive; callers lower-case path input first.
func IsISO6391(code string) bool {
	if len(code) != 2 || code != strings.ToLower(code) {
		return false
	}
	base, err := language.ParseBase(code)
	if err != nil {
		return false
	}
	return base.String() == code
}

// ResolveLanguage picks the request language from a path segment.
// The segment is lower-cased; if it is empty or not an ISO 639-1 code the
// fallback is returned.
func ResolveLanguage(segment, fallback string) string {
	code := strings.ToLower(strings.TrimSpace(segment))
	if code == "" || !IsISO6391(code) {
		return fallback
	}
	return code
}

// ChooseLanguage returns lang when it is one of supported, otherwise the first
// supported language. An empty supported list yields DefaultLang.
func ChooseLanguage(lang string, supported []string) string {
	if len(supported) == 0 {
		return DefaultLang
	}
	if slices.Contains(supported, lang) {
		return lang
	}
	return supported[0]
}

// BaseLanguage strips the region from a language tag ("en-US" -> "en").
func BaseLanguage(lang string) string {
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}
