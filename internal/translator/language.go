package translator

import "strings"

// Language is a two-letter output language code.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// ParseLanguage maps a request code to a Language. Empty means English.
func ParseLanguage(code string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", "en":
		return English, true
	case "fr":
		return French, true
	default:
		return "", false
	}
}

// Name is the language's English display name, used in prompts and messages.
func (l Language) Name() string {
	if l == French {
		return "French"
	}
	return "English"
}
