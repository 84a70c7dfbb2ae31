package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-resume-be/pkg/resume"
)

// --- Requests ---

type CreateSessionRequest struct {
	TemplateId *uuid.UUID `json:"template_id,omitempty"`
}

type EnhanceRequest struct {
	ChatId     *uuid.UUID     `json:"chat_id,omitempty"`
	Message    string         `json:"message" validate:"required"`
	Resume     *resume.Resume `json:"resume,omitempty"`
	ResumeHtml string         `json:"resume_html,omitempty"`
	TemplateId *uuid.UUID     `json:"template_id,omitempty"`
}

// LegacyEnhanceRequest serves the pre-chat endpoint: no session, the entry
// lands in the user's global history.
type LegacyEnhanceRequest struct {
	Message    string         `json:"message" validate:"required"`
	Resume     *resume.Resume `json:"resume" validate:"required"`
	TemplateId *uuid.UUID     `json:"template_id,omitempty"`
}

type SaveResumeRequest struct {
	ChatId     uuid.UUID      `json:"chat_id" validate:"required"`
	Resume     *resume.Resume `json:"resume" validate:"required"`
	TemplateId *uuid.UUID     `json:"template_id,omitempty"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"required,max=400"`
}

type ListHistoryQuery struct {
	Page       int
	PageSize   int
	SortOrder  string // "asc" or "desc"
	Search     string
	TemplateId *uuid.UUID
}

// --- Responses ---

type SessionSummaryResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	TemplateId   *uuid.UUID `json:"template_id,omitempty"`
	MessageCount int64      `json:"message_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type SessionDetailResponse struct {
	Id            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	TemplateId    *uuid.UUID     `json:"template_id,omitempty"`
	CurrentResume *resume.Resume `json:"current_resume,omitempty"`
	CurrentHtml   string         `json:"current_html,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at"`
}

type EnhanceResponse struct {
	ChatId           uuid.UUID      `json:"chat_id"`
	Title            string         `json:"title"`
	UserMessage      string         `json:"user_message"`
	AssistantMessage string         `json:"assistant_message"`
	EnhancedResume   *resume.Resume `json:"enhanced_resume,omitempty"`
	EnhancedHtml     string         `json:"enhanced_html,omitempty"`
	ProcessingTimeMs int64          `json:"processing_time_ms"`
}

type HistorySummaryResponse struct {
	Id               uuid.UUID  `json:"id"`
	ChatId           *uuid.UUID `json:"chat_id,omitempty"`
	UserMessage      string     `json:"user_message"`
	AssistantMessage string     `json:"assistant_message"`
	Tag              string     `json:"tag,omitempty"`
	TemplateId       *uuid.UUID `json:"template_id,omitempty"`
	HasEnhanced      bool       `json:"has_enhanced"`
	CreatedAt        time.Time  `json:"created_at"`
}

type HistoryDetailResponse struct {
	Id               uuid.UUID      `json:"id"`
	ChatId           *uuid.UUID     `json:"chat_id,omitempty"`
	UserMessage      string         `json:"user_message"`
	AssistantMessage string         `json:"assistant_message"`
	OriginalResume   *resume.Resume `json:"original_resume,omitempty"`
	EnhancedResume   *resume.Resume `json:"enhanced_resume,omitempty"`
	ResumeHtml       string         `json:"resume_html,omitempty"`
	EnhancedHtml     string         `json:"enhanced_html,omitempty"`
	Tag              string         `json:"tag,omitempty"`
	TemplateId       *uuid.UUID     `json:"template_id,omitempty"`
	ProcessingTimeMs int64          `json:"processing_time_ms"`
	CreatedAt        time.Time      `json:"created_at"`
}

type HistoryPageResponse struct {
	Items    []*HistorySummaryResponse `json:"items"`
	Total    int64                     `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"page_size"`
}

type MasterResumeResponse struct {
	Resume     *resume.Resume `json:"resume"`
	ParsedFrom string         `json:"parsed_from,omitempty"`
	ParsedAt   *time.Time     `json:"parsed_at,omitempty"`
}
