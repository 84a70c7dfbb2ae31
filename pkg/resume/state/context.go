package state

import (
	"encoding/json"
	"strings"

	"ai-resume-be/pkg/resume"
)

// ContextWindow bounds how many past turns are serialized into the prompt.
const ContextWindow = 10

// BuildContext serializes the resolved resume, a bounded slice of the
// conversation, and the new user message into a single prompt context.
func BuildContext(current *resume.Resume, entries []Entry, userMessage string) string {
	var b strings.Builder

	if current != nil {
		b.WriteString("Current Resume Context:\n")
		if data, err := json.Marshal(current); err == nil {
			b.Write(data)
		}
		b.WriteString("\n\n")
	}

	window := entries
	if len(window) > ContextWindow {
		window = window[len(window)-ContextWindow:]
	}

	if len(window) > 0 {
		b.WriteString("Conversation History:\n")
		for _, e := range window {
			if e.UserMessage != "" {
				b.WriteString("user: ")
				b.WriteString(e.UserMessage)
				b.WriteString("\n")
			}
			if e.AssistantMessage != "" {
				b.WriteString("assistant: ")
				b.WriteString(e.AssistantMessage)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(userMessage)
	return b.String()
}
