// Package i18n maps a language code to a static string table. It is a leaf:
// no state, no dependencies.
package i18n

// Translations holds the user-facing strings for one language.
type Translations map[string]string

// Supported language codes.
const (
	LangRU = "ru"
	LangEN = "en"
)

// DefaultLang is used when the requested language is unknown.
const DefaultLang = LangRU

// T returns the string table for the given language code.
func T(lang string) Translations {
	if lang == LangEN {
		return translationsEN
	}
	return translationsRU
}

// Get returns the string for key in the given language, falling back to the
// default language and then to the key itself.
func Get(lang, key string) string {
	if s, ok := T(lang)[key]; ok {
		return s
	}
	if s, ok := T(DefaultLang)[key]; ok {
		return s
	}
	return key
}
