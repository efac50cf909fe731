package chat

import (
	"regexp"
	"strings"
)

// Cleaner normalizes generated text for its output channel. All
// methods are pure functions.
type Cleaner struct{}

// NewCleaner creates the cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// voiceDenylist holds symbols a text-to-speech engine should never see.
const voiceDenylist = "*#`_~<>|"

var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	excessEmphasis   = regexp.MustCompile(`\*{3,}`)

	listMarker     = regexp.MustCompile(`(?m)^\s*(?:[-+*]|\d+[.)])\s+`)
	anyNewline     = regexp.MustCompile(`[\r\n]+`)
	multiSpace     = regexp.MustCompile(` {2,}`)
	spaceBeforePun = regexp.MustCompile(` +([.,!?;:])`)
	punNoSpace     = regexp.MustCompile(`([.,!?;:])([A-Za-z])`)
)

// Spoken-out forms for title and era abbreviations. Replacement
// consumes the trailing space so "Mr. Regmi" becomes "Mister Regmi".
var abbreviations = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\bMr\.\s*`), "Mister "},
	{regexp.MustCompile(`\bMrs\.\s*`), "Misses "},
	{regexp.MustCompile(`\bMs\.\s*`), "Miss "},
	{regexp.MustCompile(`\bDr\.\s*`), "Doctor "},
	{regexp.MustCompile(`\bEr\.\s*`), "Engineer "},
	{regexp.MustCompile(`\bProf\.\s*`), "Professor "},
	{regexp.MustCompile(`\bB\.S\.\s*`), "Bikram Sambat "},
	{regexp.MustCompile(`\bA\.D\.\s*`), "A D "},
}

// CleanForText lightly normalizes text-channel output. Structural
// markup stays so the client can render it.
func (c *Cleaner) CleanForText(text string) string {
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	text = excessEmphasis.ReplaceAllString(text, "**")
	return text
}

// CleanForVoice aggressively normalizes for speech synthesis:
// markup stripped, abbreviations spoken out, list structure removed,
// everything flattened to one single-spaced line. One pass can
// uncover new markup (an emphasis-wrapped "1." only becomes a list
// marker once the asterisks are gone), so the pipeline repeats until
// the text stops changing. Idempotent.
func (c *Cleaner) CleanForVoice(text string) string {
	for {
		cleaned := cleanVoicePass(text)
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
}

// cleanVoicePass strips denylisted symbols first so per-token
// stripping during streaming never changes the final result.
func cleanVoicePass(text string) string {
	text = stripDenylist(text)

	for _, abbr := range abbreviations {
		text = abbr.pattern.ReplaceAllString(text, abbr.replacement)
	}

	text = listMarker.ReplaceAllString(text, "")
	text = anyNewline.ReplaceAllString(text, " ")
	text = multiSpace.ReplaceAllString(text, " ")
	text = spaceBeforePun.ReplaceAllString(text, "$1")
	text = punNoSpace.ReplaceAllString(text, "$1 $2")

	return strings.TrimSpace(text)
}

// CleanTokenForVoice strips only denylisted symbols from a streaming
// fragment. Whitespace passes through untouched: fragment boundaries
// can split words, so any spacing change here would corrupt the
// reassembled text.
func (c *Cleaner) CleanTokenForVoice(token string) string {
	return stripDenylist(token)
}

func stripDenylist(text string) string {
	if !strings.ContainsAny(text, voiceDenylist) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(voiceDenylist, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
