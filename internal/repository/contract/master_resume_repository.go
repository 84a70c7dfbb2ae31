package contract

import (
	"context"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MasterResumeRepository interface {
	// Upsert inserts or replaces the user's single master resume row.
	Upsert(ctx context.Context, resume *entity.MasterResume) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MasterResume, error)
	DeleteByUserId(ctx context.Context, userId uuid.UUID) error
}
