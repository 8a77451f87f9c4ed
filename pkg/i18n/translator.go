package i18n

// Translator binds an I18n instance to one language.
type Translator struct {
	i18n     *I18n
	language string
}

// NewTranslator creates a Translator for language.
// A nil i18n yields a translator that echoes keys.
// An empty language falls back to the instance default.
func NewTranslator(i18n *I18n, language string) *Translator {
	if i18n != nil && language == "" {
		language = i18n.DefaultLanguage()
	}
	return &Translator{i18n: i18n, language: language}
}

// T translates key in namespace for the bound language.
func (t *Translator) T(namespace, key string, placeholders ...M) string {
	if t == nil || t.i18n == nil {
		return key
	}
	return t.i18n.T(t.language, namespace, key, placeholders...)
}

// Language returns the bound language.
func (t *Translator) Language() string {
	if t == nil {
		return ""
	}
	return t.language
}
