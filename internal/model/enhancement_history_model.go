package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EnhancementHistory is one immutable record of a user/assistant exchange
// plus before/after snapshots. Rows are only ever inserted; there is no
// soft-delete column on purpose.
type EnhancementHistory struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId *uuid.UUID `gorm:"type:uuid;index"` // nullable for legacy/global history
	UserId        uuid.UUID  `gorm:"type:uuid;not null;index"`

	UserMessage      string  `gorm:"type:text"`
	LegacyMessage    *string `gorm:"column:message;type:text"` // pre-chat rows stored the text here
	AssistantMessage string  `gorm:"type:text"`

	OriginalResume datatypes.JSON `gorm:"type:jsonb"`
	EnhancedResume datatypes.JSON `gorm:"type:jsonb"`
	ResumeHtml     *string        `gorm:"type:text"`
	EnhancedHtml   *string        `gorm:"type:text"`

	TemplateId       *uuid.UUID `gorm:"type:uuid;index"`
	Tag              string     `gorm:"type:varchar(50);index"`
	ProcessingTimeMs int64      `gorm:"default:0"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;index"`
}

func (EnhancementHistory) TableName() string {
	return "enhancement_histories"
}
