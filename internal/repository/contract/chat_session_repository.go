package contract

import (
	"context"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindAllWithCounts lists the user's sessions newest-first with the
	// number of history entries attached to each.
	FindAllWithCounts(ctx context.Context, userId uuid.UUID) ([]*entity.ChatSession, error)
}
