// FILE: internal/service/quota_service.go
package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"ai-resume-be/internal/constant"
	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"
)

// QuotaService gates AI usage per plan. Token usage is a projection over
// the history log rather than a mutable counter: the log is append-only,
// so the sum of today's message lengths is always consistent with what
// actually happened.
type QuotaService interface {
	DailyTokenUsage(ctx context.Context, userId uuid.UUID) (int, error)
	ActiveSessionCount(ctx context.Context, userId uuid.UUID) (int, error)

	// CheckEnhanceQuota fails with a LimitExceededError when the incoming
	// message would not fit in the user's remaining daily budget.
	CheckEnhanceQuota(ctx context.Context, userId uuid.UUID, message string) error
	CheckSessionCreateQuota(ctx context.Context, userId uuid.UUID) error
}

type quotaService struct {
	uowFactory unitofwork.RepositoryFactory
	planCache  *gocache.Cache
	logger     logger.ILogger
}

func NewQuotaService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) QuotaService {
	return &quotaService{
		uowFactory: uowFactory,
		planCache:  gocache.New(1*time.Minute, 5*time.Minute),
		logger:     log,
	}
}

func (s *quotaService) DailyTokenUsage(ctx context.Context, userId uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entries, err := uow.EnhancementHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.CreatedSince{Since: utcDayStart(time.Now())},
	)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, e := range entries {
		total += utf8.RuneCountInString(e.EffectiveUserMessage())
	}
	return total, nil
}

func (s *quotaService) ActiveSessionCount(ctx context.Context, userId uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.ChatSessionRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveSessions{},
	)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *quotaService) CheckEnhanceQuota(ctx context.Context, userId uuid.UUID, message string) error {
	plan, err := s.cachedUserPlan(ctx, userId)
	if err != nil {
		return err
	}

	limit := benefitOrZero(plan, constant.BenefitDailyTokenLimit)
	if limit < 0 {
		return nil
	}

	used, err := s.DailyTokenUsage(ctx, userId)
	if err != nil {
		return err
	}

	incoming := utf8.RuneCountInString(message)
	if used+incoming > limit {
		s.logger.Warn("quota", "daily token limit exceeded", map[string]interface{}{
			"user_id": userId.String(),
			"used":    used,
			"limit":   limit,
		})
		return &dto.LimitExceededError{
			Code:       constant.BenefitDailyTokenLimit,
			Limit:      limit,
			Used:       used,
			ResetAfter: utcDayStart(time.Now()).Add(24 * time.Hour),
		}
	}

	return nil
}

func (s *quotaService) CheckSessionCreateQuota(ctx context.Context, userId uuid.UUID) error {
	plan, err := s.cachedUserPlan(ctx, userId)
	if err != nil {
		return err
	}

	limit := benefitOrZero(plan, constant.BenefitActiveSessionLimit)
	if limit < 0 {
		return nil
	}

	count, err := s.ActiveSessionCount(ctx, userId)
	if err != nil {
		return err
	}

	if count >= limit {
		return &dto.LimitExceededError{
			Code:  constant.BenefitActiveSessionLimit,
			Limit: limit,
			Used:  count,
		}
	}

	return nil
}

// cachedUserPlan keeps the resolved plan for a short window so repeated
// quota checks within a request burst skip the subscription lookup.
func (s *quotaService) cachedUserPlan(ctx context.Context, userId uuid.UUID) (*entity.SubscriptionPlan, error) {
	key := "plan:" + userId.String()
	if cached, found := s.planCache.Get(key); found {
		return cached.(*entity.SubscriptionPlan), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := resolveUserPlan(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	s.planCache.Set(key, plan, gocache.DefaultExpiration)
	return plan, nil
}

func utcDayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
