package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDetectLanguage_PureASCII pure ASCII always resolves to English
func TestDetectLanguage_PureASCII(t *testing.T) {
	assert.Equal(t, LanguageEnglish, DetectLanguage("Who is the principal?"))
	assert.Equal(t, LanguageEnglish, DetectLanguage(""))
	assert.Equal(t, LanguageEnglish, DetectLanguage("hello 123 !?"))
}

func TestDetectLanguage_Devanagari(t *testing.T) {
	assert.Equal(t, LanguageNepali, DetectLanguage("नमस्ते"))
	// a single Devanagari character inside Latin text is enough
	assert.Equal(t, LanguageNepali, DetectLanguage("hello न world"))
}

func TestDetectLanguage_OtherScripts(t *testing.T) {
	// non-Devanagari non-Latin scripts still default to English
	assert.Equal(t, LanguageEnglish, DetectLanguage("こんにちは"))
}

func TestFromTag(t *testing.T) {
	assert.Equal(t, LanguageNepali, FromTag("ne-NP"))
	assert.Equal(t, LanguageEnglish, FromTag("en-US"))
	assert.Equal(t, LanguageEnglish, FromTag(""))
	assert.Equal(t, LanguageEnglish, FromTag("fr"))
}
