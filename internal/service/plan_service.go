// FILE: internal/service/plan_service.go
// Service for plan management and usage limit checking
package service

import (
	"context"
	"time"

	"ai-resume-be/internal/constant"
	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type PlanService interface {
	// Public
	GetAllActivePlans(ctx context.Context) ([]*dto.PlanWithBenefitsResponse, error)

	// User
	GetUserPlan(ctx context.Context, userId uuid.UUID) (*entity.SubscriptionPlan, error)
	GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	quota      QuotaService
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, quota QuotaService) PlanService {
	return &planService{
		uowFactory: uowFactory,
		quota:      quota,
	}
}

// GetAllActivePlans returns all active plans with their benefits for the pricing modal
func (s *planService) GetAllActivePlans(ctx context.Context) ([]*dto.PlanWithBenefitsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	var result []*dto.PlanWithBenefitsResponse
	for _, plan := range plans {
		if !plan.IsActive {
			continue
		}

		benefitDTOs := make([]dto.BenefitDTO, 0, len(plan.Benefits))
		for _, b := range plan.Benefits {
			benefitDTOs = append(benefitDTOs, dto.BenefitDTO{
				Code:  b.Code,
				Value: b.Value,
			})
		}

		result = append(result, &dto.PlanWithBenefitsResponse{
			Id:            plan.Id,
			Name:          plan.Name,
			Slug:          plan.Slug,
			Tagline:       plan.Tagline,
			Price:         plan.Price,
			BillingPeriod: string(plan.BillingPeriod),
			IsMostPopular: plan.IsMostPopular,
			Benefits:      benefitDTOs,
		})
	}

	return result, nil
}

// GetUserPlan resolves the user's current plan, falling back to the free
// plan when no subscription grants access.
func (s *planService) GetUserPlan(ctx context.Context, userId uuid.UUID) (*entity.SubscriptionPlan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return resolveUserPlan(ctx, uow, userId)
}

// GetUserUsageStatus returns current usage vs limits for a user
func (s *planService) GetUserUsageStatus(ctx context.Context, userId uuid.UUID) (*dto.UsageStatusResponse, error) {
	plan, err := s.GetUserPlan(ctx, userId)
	if err != nil {
		return nil, err
	}

	tokensUsed, err := s.quota.DailyTokenUsage(ctx, userId)
	if err != nil {
		return nil, err
	}

	activeSessions, err := s.quota.ActiveSessionCount(ctx, userId)
	if err != nil {
		return nil, err
	}

	tokenLimit := benefitOrZero(plan, constant.BenefitDailyTokenLimit)
	sessionLimit := benefitOrZero(plan, constant.BenefitActiveSessionLimit)

	// Daily counters reset at UTC midnight.
	now := time.Now().UTC()
	resetTime := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)

	return &dto.UsageStatusResponse{
		Plan: dto.PlanInfo{
			Id:   plan.Id,
			Name: plan.Name,
			Slug: plan.Slug,
		},
		Daily: dto.DailyLimits{
			Tokens: dto.UsageLimit{
				Used:     tokensUsed,
				Limit:    tokenLimit,
				CanUse:   withinLimit(tokensUsed, tokenLimit),
				ResetsAt: &resetTime,
			},
			ActiveSessions: dto.UsageLimit{
				Used:   activeSessions,
				Limit:  sessionLimit,
				CanUse: withinLimit(activeSessions, sessionLimit),
			},
		},
		UpgradeAvailable: plan.Slug == constant.PlanFree,
	}, nil
}

// resolveUserPlan picks the newest subscription that still grants access:
// active first, then canceled-but-in-period, then merely paid.
func resolveUserPlan(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.SubscriptionPlan, error) {
	subs, err := uow.SubscriptionRepository().FindAllSubscriptions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var activeSub *entity.UserSubscription
	now := time.Now()
	for _, sub := range subs {
		if !sub.CurrentPeriodEnd.After(now) {
			continue
		}
		if sub.Status == entity.SubscriptionStatusActive ||
			sub.Status == entity.SubscriptionStatusCanceled ||
			sub.PaymentStatus == entity.PaymentStatusPaid {
			activeSub = sub
			break
		}
	}

	if activeSub != nil {
		plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: activeSub.PlanId})
		if err != nil {
			return nil, err
		}
		if plan != nil {
			return plan, nil
		}
	}

	// The free plan lives in the database too; fall back to hardcoded
	// limits only when seeding has not run.
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.Filter("slug", constant.PlanFree))
	if err != nil {
		return nil, err
	}
	if plan != nil {
		return plan, nil
	}

	return defaultFreePlan(), nil
}

func defaultFreePlan() *entity.SubscriptionPlan {
	return &entity.SubscriptionPlan{
		Name: "Free Plan",
		Slug: constant.PlanFree,
		Benefits: []entity.PlanBenefit{
			{Code: constant.BenefitDailyTokenLimit, Value: 10000},
			{Code: constant.BenefitActiveSessionLimit, Value: 3},
			{Code: constant.BenefitTemplateLimit, Value: 2},
		},
	}
}

func benefitOrZero(plan *entity.SubscriptionPlan, code string) int {
	if v, ok := plan.BenefitValue(code); ok {
		return v
	}
	return 0
}

func withinLimit(used, limit int) bool {
	if limit < 0 {
		return true // Unlimited
	}
	return used < limit
}
