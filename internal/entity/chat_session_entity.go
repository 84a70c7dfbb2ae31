package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Title        string
	TemplateId   *uuid.UUID
	IsActive     bool
	TitleAutoSet bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool

	// MessageCount is populated by listing queries only.
	MessageCount int64
}
