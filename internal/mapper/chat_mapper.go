package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/model"
	"ai-resume-be/pkg/resume"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:           s.Id,
		UserId:       s.UserId,
		Title:        s.Title,
		TemplateId:   s.TemplateId,
		IsActive:     s.IsActive,
		TitleAutoSet: s.TitleAutoSet,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:           s.Id,
		UserId:       s.UserId,
		Title:        s.Title,
		TemplateId:   s.TemplateId,
		IsActive:     s.IsActive,
		TitleAutoSet: s.TitleAutoSet,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *ChatMapper) ChatSessionsToEntities(models []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(models))
	for i, s := range models {
		entities[i] = m.ChatSessionToEntity(s)
	}
	return entities
}

// History Mappers
//
// Snapshots live as jsonb columns; a nil resume maps to a NULL column, and
// an unreadable column maps to a nil resume rather than failing the read.

func (m *ChatMapper) HistoryToEntity(h *model.EnhancementHistory) *entity.EnhancementHistory {
	if h == nil {
		return nil
	}

	return &entity.EnhancementHistory{
		Id:               h.Id,
		ChatSessionId:    h.ChatSessionId,
		UserId:           h.UserId,
		UserMessage:      h.UserMessage,
		LegacyMessage:    h.LegacyMessage,
		AssistantMessage: h.AssistantMessage,
		OriginalResume:   resumeFromJSON(h.OriginalResume),
		EnhancedResume:   resumeFromJSON(h.EnhancedResume),
		ResumeHtml:       h.ResumeHtml,
		EnhancedHtml:     h.EnhancedHtml,
		TemplateId:       h.TemplateId,
		Tag:              h.Tag,
		ProcessingTimeMs: h.ProcessingTimeMs,
		CreatedAt:        h.CreatedAt,
	}
}

func (m *ChatMapper) HistoryToModel(h *entity.EnhancementHistory) *model.EnhancementHistory {
	if h == nil {
		return nil
	}

	return &model.EnhancementHistory{
		Id:               h.Id,
		ChatSessionId:    h.ChatSessionId,
		UserId:           h.UserId,
		UserMessage:      h.UserMessage,
		LegacyMessage:    h.LegacyMessage,
		AssistantMessage: h.AssistantMessage,
		OriginalResume:   resumeToJSON(h.OriginalResume),
		EnhancedResume:   resumeToJSON(h.EnhancedResume),
		ResumeHtml:       h.ResumeHtml,
		EnhancedHtml:     h.EnhancedHtml,
		TemplateId:       h.TemplateId,
		Tag:              h.Tag,
		ProcessingTimeMs: h.ProcessingTimeMs,
		CreatedAt:        h.CreatedAt,
	}
}

func (m *ChatMapper) HistoriesToEntities(models []*model.EnhancementHistory) []*entity.EnhancementHistory {
	entities := make([]*entity.EnhancementHistory, len(models))
	for i, h := range models {
		entities[i] = m.HistoryToEntity(h)
	}
	return entities
}

func resumeFromJSON(data datatypes.JSON) *resume.Resume {
	if len(data) == 0 {
		return nil
	}
	var r resume.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil
	}
	return &r
}

func resumeToJSON(r *resume.Resume) datatypes.JSON {
	if r == nil {
		return nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
