package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MasterResume is the user's canonical resume, at most one row per user.
type MasterResume struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	Resume     datatypes.JSON `gorm:"type:jsonb;not null"`
	ParsedFrom string         `gorm:"type:varchar(255)"` // source filename or "manual"
	ParsedAt   *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (MasterResume) TableName() string {
	return "master_resumes"
}
