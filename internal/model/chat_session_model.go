package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSession struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID  `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title      string     `gorm:"type:text;not null"`
	TemplateId *uuid.UUID `gorm:"type:uuid;index"`
	IsActive   bool       `gorm:"default:true"`
	// TitleAutoSet flips to true the one time a title is generated for the
	// session; it never flips back.
	TitleAutoSet bool           `gorm:"default:false"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
