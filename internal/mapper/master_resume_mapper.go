package mapper

import (
	"time"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/model"
)

type MasterResumeMapper struct{}

func NewMasterResumeMapper() *MasterResumeMapper {
	return &MasterResumeMapper{}
}

func (m *MasterResumeMapper) ToEntity(r *model.MasterResume) *entity.MasterResume {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.MasterResume{
		Id:         r.Id,
		UserId:     r.UserId,
		Resume:     resumeFromJSON(r.Resume),
		ParsedFrom: r.ParsedFrom,
		ParsedAt:   r.ParsedAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *MasterResumeMapper) ToModel(r *entity.MasterResume) *model.MasterResume {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.MasterResume{
		Id:         r.Id,
		UserId:     r.UserId,
		Resume:     resumeToJSON(r.Resume),
		ParsedFrom: r.ParsedFrom,
		ParsedAt:   r.ParsedAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}
