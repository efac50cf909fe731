package chat

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single entry in a conversation history. Histories are owned
// by the session layer and passed into the pipeline read-only.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Message is one entry of the ordered message list sent to the
// generative model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Category is the query class assigned by the classifier.
type Category string

const (
	CategoryGreeting Category = "greeting"
	CategorySimple   Category = "simple"
	CategoryDetailed Category = "detailed"
	CategoryGeneral  Category = "general"
)

// Classification carries the sampling budget derived from the query
// text. It is stateless and recomputed on every call.
type Classification struct {
	Category    Category `json:"category"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature float64  `json:"temperature"`
}

// FailureReason distinguishes internal failure causes. The external
// contract only exposes Success plus a display string; the reason code
// exists so tests and logs can tell causes apart.
type FailureReason string

const (
	ReasonNone       FailureReason = ""
	ReasonTransport  FailureReason = "transport_error"
	ReasonBadStatus  FailureReason = "bad_status"
	ReasonNoChoices  FailureReason = "no_choices"
	ReasonStreamLost FailureReason = "stream_lost"
)

// Result is the outcome of a blocking chat call. Failures surface as
// Success=false with a user-facing apology in Answer, never as an error.
type Result struct {
	Success bool          `json:"success"`
	Answer  string        `json:"answer"`
	Reason  FailureReason `json:"-"`
}

// Perception is caller-supplied context for one call. A non-nil History
// replaces the service's internal history for that call only.
type Perception struct {
	History    []Turn `json:"history,omitempty"`
	Language   string `json:"language,omitempty"`
	Sentiment  string `json:"sentiment,omitempty"`
	Complexity string `json:"complexity,omitempty"`
}
