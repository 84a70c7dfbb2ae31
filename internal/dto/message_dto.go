// FILE: internal/dto/message_dto.go
package dto

import "github.com/google/uuid"

// PublishEnhancementCompletedMessage travels over the in-process pubsub
// after a history entry is committed.
type PublishEnhancementCompletedMessage struct {
	HistoryId uuid.UUID  `json:"history_id"`
	UserId    uuid.UUID  `json:"user_id"`
	ChatId    *uuid.UUID `json:"chat_id,omitempty"`
	Tag       string     `json:"tag"`
}
