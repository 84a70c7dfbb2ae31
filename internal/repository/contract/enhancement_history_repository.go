package contract

import (
	"context"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/specification"
)

// EnhancementHistoryRepository is append-only. There is intentionally no
// Update or Delete: history rows are the source of truth for resume state
// reconstruction and must never change once written.
type EnhancementHistoryRepository interface {
	Create(ctx context.Context, history *entity.EnhancementHistory) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EnhancementHistory, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EnhancementHistory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
