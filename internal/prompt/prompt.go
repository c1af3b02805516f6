// Package prompt contains the pure text-shaping pieces of the answer
// pipeline: the trigger-term sanitizer, the context assembler and the prompt
// templates for each generation attempt.
package prompt

import (
	"fmt"
	"strings"

	"shamba-ai/backend/internal/model"
)

const persona = "You are a friendly, concise agronomy assistant for maize farmers in Kenya. " +
	"Only answer questions related to maize farming (e.g., planting, varieties, soil, fertilizer, pests, diseases, irrigation, harvest, storage, markets). " +
	"If the user asks about anything outside maize farming, politely refuse with a short note: 'Sorry, I can only help with maize farming topics.' and invite a maize-related question. "

// GreetingReply is the fixed answer for bare greetings; no retrieval or
// generation happens for those.
const GreetingReply = "Hello! How can I help you with maize farming today?"

var greetingTokens = map[string]struct{}{
	"hi": {}, "hii": {}, "hello": {}, "hey": {},
	"habari": {}, "mambo": {}, "salama": {}, "niaje": {}, "sup": {},
}

// IsGreeting reports whether the question is a short greeting rather than a
// real question.
func IsGreeting(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return false
	}
	fields := strings.Fields(q)
	if len(fields) > 6 {
		return false
	}
	for _, f := range fields {
		if _, ok := greetingTokens[strings.Trim(f, ".,!? ")]; ok {
			return true
		}
	}
	return false
}

// BuildFullPrompt frames the question with the conversation so far and the
// assembled context block, instructing the model to answer from the sources.
func BuildFullPrompt(question, contextBlock string, history []model.Message) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("Use ONLY the provided sources to answer. If unsure or sources conflict, say so and suggest next steps. ")
	b.WriteString("Keep responses short and actionable, use bullet points when useful, and keep a warm tone.\n\n")
	writeHistory(&b, history)
	fmt.Fprintf(&b, "Question: %s\n\nSources:\n%s\n\nAnswer:", question, contextBlock)
	return b.String()
}

// BuildNoContextPrompt asks for an answer from general domain knowledge only,
// with no retrieved sources attached.
func BuildNoContextPrompt(question string, history []model.Message) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("If you lack enough information, say so and ask for specifics.\n\n")
	writeHistory(&b, history)
	fmt.Fprintf(&b, "Question: %s\n\nAnswer:", question)
	return b.String()
}

const maxHistoryTurns = 6

func writeHistory(b *strings.Builder, history []model.Message) {
	if len(history) == 0 {
		return
	}
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	b.WriteString("Conversation so far:\n")
	for _, msg := range history {
		fmt.Fprintf(b, "%s: %s\n", roleLabel(msg.Role), msg.Content)
	}
	b.WriteString("\n")
}

func roleLabel(role string) string {
	switch role {
	case model.RoleUser:
		return "User"
	case model.RoleAssistant:
		return "Assistant"
	default:
		return role
	}
}
