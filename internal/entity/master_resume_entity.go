package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-resume-be/pkg/resume"
)

type MasterResume struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Resume     *resume.Resume
	ParsedFrom string
	ParsedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
