package chat

import (
	"regexp"
	"strings"

	"github.com/adarsha-ai/backend/internal/domain/chat"
)

// matcher pairs a compiled pattern with the budget its category gets.
type matcher struct {
	category    chat.Category
	pattern     *regexp.Regexp
	maxTokens   int
	temperature float64
}

// Ordered table, first match wins. Greeting turns get the smallest
// budget and a casual temperature; detailed turns get the largest
// budget at a factual temperature.
var matchers = []matcher{
	{
		category:    chat.CategoryGreeting,
		pattern:     regexp.MustCompile(`^\s*(hi|hello|hey|namaste|namaskar|good\s+(morning|afternoon|evening)|greetings)\b`),
		maxTokens:   100,
		temperature: 0.9,
	},
	{
		category:    chat.CategorySimple,
		pattern:     regexp.MustCompile(`^\s*(who\s+is|who's|what\s+is\s+the\s+name\s+of)\b.*\b(principal|vice\s+principal|headmaster|coordinator|teacher|lead)\b`),
		maxTokens:   256,
		temperature: 0.7,
	},
	{
		category: chat.CategoryDetailed,
		pattern: regexp.MustCompile(`\b(tell\s+me\s+about|explain|describe|how\s+(does|do|did|can)|why|what\s+(is|are|was|were)|` +
			`history|admission|facilit|science\s+project|eco.?industrial|construction|curriculum|course|municipality|thimi|madhyapur)\b`),
		maxTokens:   1024,
		temperature: 0.6,
	},
}

// generalClassification is the fall-through budget.
var generalClassification = chat.Classification{
	Category:    chat.CategoryGeneral,
	MaxTokens:   512,
	Temperature: 0.7,
}

// Classifier assigns a sampling budget to a query. Stateless.
type Classifier struct{}

// NewClassifier creates the classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify matches the lowercased query against the pattern table in
// priority order. Queries in other scripts fall through to general,
// which is acceptable.
func (c *Classifier) Classify(query string) chat.Classification {
	lowered := strings.ToLower(strings.TrimSpace(query))

	for _, m := range matchers {
		if m.pattern.MatchString(lowered) {
			return chat.Classification{
				Category:    m.category,
				MaxTokens:   m.maxTokens,
				Temperature: m.temperature,
			}
		}
	}

	return generalClassification
}
