package chat

import (
	"fmt"
	"strings"

	"github.com/adarsha-ai/backend/internal/domain/chat"
	"github.com/adarsha-ai/backend/internal/infrastructure/token"
)

// historyWindow is the number of trailing turns carried into prompts.
const historyWindow = 6

// historyTokenBudget caps the total tokens the history window may
// occupy. Oldest turns inside the window drop first.
const historyTokenBudget = 1200

const coreDirective = `You are **Adarsha AI**, a hyper-intelligent assistant for Adarsha Secondary School.
Principal name: Mr. Ram Babu Regmi
Vice Principal name: Mr. Tanka Nath Acharya
You have deep knowledge about the school's history, student teams, and the Eco-Industrial Zone.

**CRITICAL INSTRUCTION - DATA FIDELITY:**
The context provided contains **Q&A pairs** and **Fact Sheets**.
- You must treat these Q&A pairs as **ABSOLUTE FACTS**.
- Specifically regarding the **Student Teams**:
  1. Sangam Gautam: Lead AI Developer and Presenter of the Science Project.
  2. Pravesh Yadav: Hardware Resource Manager and Construction Specialist.
  3. Prashant Yadav: Construction Specialist AND Presenter of the Science Project. (Note: He has TWO roles).
  4. Sikendra Mahaset: Project Coordinator and Construction Specialist.
  5. Avinash Shah: Project Coordinator and Construction Specialist.
  6. Aawaran Bist: Project Coordinator and Construction Specialist.
- Do not mix up the "AI Team" with the "Physical Construction Team".
You guide users through the science project and help with school and municipality information.

**CRITICAL INSTRUCTION - RESPONSE STYLE:**
- Provide **EXTREMELY DETAILED** explanations.
- Do not give short answers. Expand on the 'Why' and 'How'.
- Use a logical flow: Direct Answer -> Detailed Context -> Broader Significance.
- If the user asks about the Science Project, explain the "Eco-Industrial Zone" concept in depth.`

const voiceModeRules = `
**AUDIO OUTPUT MODE ACTIVE:**
- The output will be read by a Text-to-Speech engine.
- **DO NOT** use markdown formatting like bold (**text**), headers (##), or lists (-).
- Write in natural, flowing paragraphs.
- Use commas and periods to control the pacing of the speech.`

const textModeRules = `
**TEXT OUTPUT MODE ACTIVE:**
- Use **Bold** for key names and terms.
- Use bullet points for lists.
- Use headers to structure the logic.`

// PromptBuilder assembles the message list for one generation call.
// Deterministic for fixed inputs.
type PromptBuilder struct {
	estimator *token.Estimator
}

// NewPromptBuilder creates the builder. A nil estimator disables the
// token cap and the history window is bounded by turn count only.
func NewPromptBuilder(estimator *token.Estimator) *PromptBuilder {
	return &PromptBuilder{
		estimator: estimator,
	}
}

// Build assembles, in order: the system message (persona, channel
// rules, perception block, language directive), the trailing history
// window, and the framed user message.
func (b *PromptBuilder) Build(query, context string, isVoice bool, history []chat.Turn, language chat.Language, perception *chat.Perception) []chat.Message {
	messages := make([]chat.Message, 0, historyWindow+2)

	messages = append(messages, chat.Message{
		Role:    chat.RoleSystem,
		Content: b.buildSystemMessage(isVoice, language, perception),
	})

	for _, turn := range b.historyWindowOf(history) {
		messages = append(messages, chat.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	messages = append(messages, chat.Message{
		Role:    chat.RoleUser,
		Content: buildUserMessage(query, context, isVoice),
	})

	return messages
}

func (b *PromptBuilder) buildSystemMessage(isVoice bool, language chat.Language, perception *chat.Perception) string {
	var sb strings.Builder
	sb.WriteString(coreDirective)

	if isVoice {
		sb.WriteString("\n")
		sb.WriteString(voiceModeRules)
	} else {
		sb.WriteString("\n")
		sb.WriteString(textModeRules)
	}

	if perception != nil && (perception.Sentiment != "" || perception.Complexity != "") {
		sb.WriteString("\n\n**USER PSYCHOLOGY PROFILE:**")
		if perception.Sentiment != "" {
			sb.WriteString(fmt.Sprintf("\n- User Sentiment: %s", perception.Sentiment))
		}
		if perception.Complexity != "" {
			sb.WriteString(fmt.Sprintf("\n- Input Complexity: %s", perception.Complexity))
		}

		if strings.Contains(perception.Sentiment, "Frustrated") || strings.Contains(perception.Sentiment, "Sad") {
			sb.WriteString("\n- **Strategy:** Be extremely polite, apologetic, and assuring.")
		} else if strings.Contains(perception.Sentiment, "Happy") || strings.Contains(perception.Sentiment, "Excited") {
			sb.WriteString("\n- **Strategy:** Match their high energy. Be enthusiastic about the technology.")
		}

		if perception.Complexity == "Complex" {
			sb.WriteString("\n- **Strategy:** The user is sophisticated. Use advanced vocabulary and technical depth.")
		}
	}

	if language == chat.LanguageNepali {
		sb.WriteString("\n\n**LANGUAGE RULE:** Respond strictly in Nepali (Devanagari script). Do not mix English sentences into the answer.")
	} else {
		sb.WriteString("\n\n**LANGUAGE RULE:** Respond strictly in English. Do not mix Nepali sentences into the answer.")
	}

	return sb.String()
}

// historyWindowOf returns the trailing turns that fit both the turn
// and token caps.
func (b *PromptBuilder) historyWindowOf(history []chat.Turn) []chat.Turn {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	if b.estimator == nil || len(history) == 0 {
		return history
	}

	// walk backwards until the token budget is spent
	total := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		cost := b.estimator.CountTokens(history[i].Content)
		if total+cost > historyTokenBudget {
			break
		}
		total += cost
		start = i
	}

	return history[start:]
}

func buildUserMessage(query, context string, isVoice bool) string {
	if context == "" {
		context = "No specific database records found. Answer based on general knowledge about Adarsha School and Thimi Municipality."
	}

	if isVoice {
		return fmt.Sprintf(`**CONTEXT DATA (FACTS):**
%s

**USER SAID (VOICE):**
%s

**INSTRUCTION:**
The user spoke this aloud. Respond conversationally, as flowing speech.
Base the answer strictly on the Context Data above; if it has the specific answer, use it exactly.`, context, query)
	}

	return fmt.Sprintf(`**CONTEXT DATA (FACTS):**
%s

**USER INQUIRY:**
%s

**INSTRUCTION:**
Based strictly on the Context Data above, provide a detailed response.
If the context has the specific answer (e.g., student names), use it exactly.`, context, query)
}
