package mapper

import (
	"time"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/model"
)

type TemplateMapper struct{}

func NewTemplateMapper() *TemplateMapper {
	return &TemplateMapper{}
}

func (m *TemplateMapper) ToEntity(t *model.ResumeTemplate) *entity.ResumeTemplate {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.ResumeTemplate{
		Id:          t.Id,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		PreviewURL:  t.PreviewURL,
		IsActive:    t.IsActive,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *TemplateMapper) ToModel(t *entity.ResumeTemplate) *model.ResumeTemplate {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.ResumeTemplate{
		Id:          t.Id,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		PreviewURL:  t.PreviewURL,
		IsActive:    t.IsActive,
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *TemplateMapper) ToEntities(models []*model.ResumeTemplate) []*entity.ResumeTemplate {
	entities := make([]*entity.ResumeTemplate, len(models))
	for i, t := range models {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
