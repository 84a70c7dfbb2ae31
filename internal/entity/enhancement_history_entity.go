package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-resume-be/pkg/resume"
)

// EnhancementHistory is one append-only record of a full enhancement turn.
// Entities are immutable once written; there is no update path.
type EnhancementHistory struct {
	Id            uuid.UUID
	ChatSessionId *uuid.UUID
	UserId        uuid.UUID

	UserMessage      string
	LegacyMessage    *string
	AssistantMessage string

	OriginalResume *resume.Resume
	EnhancedResume *resume.Resume
	ResumeHtml     *string
	EnhancedHtml   *string

	TemplateId       *uuid.UUID
	Tag              string
	ProcessingTimeMs int64
	CreatedAt        time.Time
}

// EffectiveUserMessage resolves the message text, falling back to the
// legacy column for rows written before the chat flow existed.
func (h *EnhancementHistory) EffectiveUserMessage() string {
	if h.UserMessage != "" {
		return h.UserMessage
	}
	if h.LegacyMessage != nil {
		return *h.LegacyMessage
	}
	return ""
}
