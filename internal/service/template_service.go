// FILE: internal/service/template_service.go
package service

import (
	"context"

	"github.com/google/uuid"

	"ai-resume-be/internal/constant"
	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"
)

type TemplateService interface {
	// ListAvailable returns active templates, truncated to the slice the
	// user's plan unlocks.
	ListAvailable(ctx context.Context, userId uuid.UUID) ([]*dto.TemplateResponse, error)
	ListAll(ctx context.Context) ([]*dto.TemplateResponse, error)
}

type templateService struct {
	uowFactory unitofwork.RepositoryFactory
	plans      PlanService
}

func NewTemplateService(uowFactory unitofwork.RepositoryFactory, plans PlanService) TemplateService {
	return &templateService{
		uowFactory: uowFactory,
		plans:      plans,
	}
}

func (s *templateService) ListAvailable(ctx context.Context, userId uuid.UUID) ([]*dto.TemplateResponse, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.GetUserPlan(ctx, userId)
	if err != nil {
		return nil, err
	}

	limit, ok := plan.BenefitValue(constant.BenefitTemplateLimit)
	if !ok || limit < 0 || limit >= len(all) {
		return all, nil
	}
	return all[:limit], nil
}

func (s *templateService) ListAll(ctx context.Context) ([]*dto.TemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	templates, err := uow.TemplateRepository().FindAll(ctx,
		specification.Filter("is_active", true),
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TemplateResponse, len(templates))
	for i, t := range templates {
		result[i] = &dto.TemplateResponse{
			Id:          t.Id,
			Name:        t.Name,
			Slug:        t.Slug,
			Description: t.Description,
			PreviewURL:  t.PreviewURL,
			SortOrder:   t.SortOrder,
		}
	}
	return result, nil
}
