package chat

// Language is the output language of a response.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageNepali  Language = "ne"
)

// devanagari block covered by Nepali text
const (
	devanagariStart = 0x0900
	devanagariEnd   = 0x097F
)

// DetectLanguage classifies an utterance by script: any Devanagari
// character makes it Nepali, otherwise English.
func DetectLanguage(text string) Language {
	for _, r := range text {
		if r >= devanagariStart && r <= devanagariEnd {
			return LanguageNepali
		}
	}
	return LanguageEnglish
}

// FromTag maps a BCP-47-ish tag from the transport layer ("ne-NP",
// "en-US", ...) to a Language. Unknown tags fall back to English.
func FromTag(tag string) Language {
	if len(tag) >= 2 && tag[0] == 'n' && tag[1] == 'e' {
		return LanguageNepali
	}
	return LanguageEnglish
}
