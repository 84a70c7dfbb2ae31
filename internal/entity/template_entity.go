package entity

import (
	"time"

	"github.com/google/uuid"
)

type ResumeTemplate struct {
	Id          uuid.UUID
	Name        string
	Slug        string
	Description string
	PreviewURL  string
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
