// Package i18n resolves the language of a console request and translates
// module-provided strings.
//
// # Language Resolution
//
// The request language comes from the first path segment when it is a valid
// ISO 639-1 code, otherwise from the configured fallback:
//
//	lang := i18n.ResolveLanguage("EN", "de") // "en"
//	lang = i18n.ResolveLanguage("xx", "de")  // "de"
//
// The response language must be one of the supported languages:
//
//	i18n.ChooseLanguage("fr", []string{"en", "de"}) // "en"
//
// # Translations
//
// Modules contribute YAML files laid out as {lang}/{namespace}.yaml. All of
// them are merged into one immutable instance at bootstrap:
//
//	inst, err := i18n.New(
//		i18n.WithLanguages("en", "de"),
//		i18n.WithYAMLDir(moduleFS),
//	)
//	inst.T("de", "Navigation", "CostObjects")
//
// Lookups fall back from "en-US" to "en" and then to the default language.
// Placeholders use the {{name}} form:
//
//	inst.T("en", "app", "welcome", i18n.M{"name": "Jane"})
package i18n
