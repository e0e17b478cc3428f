// Package language resolves interview language codes to display names.
package language

import "strings"

// Default is used when no language is configured.
const Default = "en"

// Language is a supported interview language.
type Language struct {
	Code string
	Name string
}

var supported = []Language{
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"nl", "Dutch"},
	{"pl", "Polish"},
	{"tr", "Turkish"},
	{"ru", "Russian"},
	{"ar", "Arabic"},
	{"hi", "Hindi"},
	{"bn", "Bengali"},
	{"zh", "Chinese"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"id", "Indonesian"},
	{"vi", "Vietnamese"},
}

// All returns the supported languages in display order.
func All() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Lookup returns the language for code. Matching ignores case and any
// region suffix, so "pt-BR" resolves to Portuguese.
func Lookup(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	for _, l := range supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Name returns the display name for code, falling back to English.
func Name(code string) string {
	if l, ok := Lookup(code); ok {
		return l.Name
	}
	return "English"
}
