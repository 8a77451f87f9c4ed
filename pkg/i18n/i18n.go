package i18n

import (
	"fmt"
	"maps"
	"slices"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// I18n holds translations for every language contributed by active modules.
// It is immutable after creation, making it safe for concurrent use.
type I18n struct {
	// Key format: "lang:namespace:key.path"
	translations map[string]string

	// Called when a key is missing in both the requested and the default language.
	missingKeyHandler func(lang, namespace, key string)

	defaultLang string
	languages   []string
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}
	if len(i.languages) == 0 {
		i.languages = []string{i.defaultLang}
	}

	return i, nil
}

// WithDefaultLanguage sets the fallback language for missing keys.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages.
// Order is preserved and duplicates are dropped; the first entry is the default,
// matching the `language` configuration list.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		list := make([]string, 0, len(langs))
		for _, lang := range langs {
			if lang == "" || slices.Contains(list, lang) {
				continue
			}
			list = append(list, lang)
		}
		if len(list) == 0 {
			return ErrNoLanguages
		}
		i.languages = list
		i.defaultLang = list[0]
		return nil
	}
}

// WithTranslations loads a nested translation map for one language and namespace.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler sets a callback for keys missing in every fallback language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T returns the translation for key, falling back to the base language
// ("en" for "en-US") and then to the default language.
// Returns the key itself if nothing is found.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	candidates := []string{lang}
	if base := BaseLanguage(lang); base != lang {
		candidates = append(candidates, base)
	}
	if !slices.Contains(candidates, i.defaultLang) {
		candidates = append(candidates, i.defaultLang)
	}

	for _, l := range candidates {
		if translation, ok := i.translations[buildKey(l, namespace, key)]; ok {
			return replacePlaceholdersWithMerge(translation, placeholders...)
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Has reports whether a translation exists for the exact language.
func (i *I18n) Has(lang, namespace, key string) bool {
	_, ok := i.translations[buildKey(lang, namespace, key)]
	return ok
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) add(lang, namespace string, translations map[string]any) {
	for key, value := range flattenTranslations(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}
