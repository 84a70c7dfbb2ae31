package contract

import (
	"context"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/specification"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *entity.ResumeTemplate) error
	Update(ctx context.Context, template *entity.ResumeTemplate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResumeTemplate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResumeTemplate, error)
}
