package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-resume-be/internal/constant"
	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/entity"
)

func newQuotaFixture() (*memFactory, QuotaService) {
	factory := newMemFactory()
	return factory, NewQuotaService(factory, nopLogger{})
}

func addHistory(factory *memFactory, userId uuid.UUID, message string, createdAt time.Time) {
	factory.store.histories = append(factory.store.histories, &entity.EnhancementHistory{
		Id:          uuid.New(),
		UserId:      userId,
		UserMessage: message,
		CreatedAt:   createdAt,
	})
}

func TestDailyTokenUsageCountsOnlyToday(t *testing.T) {
	factory, quota := newQuotaFixture()
	userId := uuid.New()

	addHistory(factory, userId, "today one", time.Now())                       // 9 runes
	addHistory(factory, userId, "today two!", time.Now())                      // 10 runes
	addHistory(factory, userId, "yesterday", time.Now().Add(-25*time.Hour))    // outside window
	addHistory(factory, uuid.New(), "someone else entirely", time.Now())       // other user
	addHistory(factory, userId, "two days ago", time.Now().Add(-48*time.Hour)) // outside window

	used, err := quota.DailyTokenUsage(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 19, used)
}

func TestDailyTokenUsageCountsRunesNotBytes(t *testing.T) {
	factory, quota := newQuotaFixture()
	userId := uuid.New()

	addHistory(factory, userId, "héllo", time.Now()) // 5 runes, 6 bytes

	used, err := quota.DailyTokenUsage(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 5, used)
}

func TestDailyTokenUsageFallsBackToLegacyMessage(t *testing.T) {
	factory, quota := newQuotaFixture()
	userId := uuid.New()

	legacy := "old style"
	factory.store.histories = append(factory.store.histories, &entity.EnhancementHistory{
		Id:            uuid.New(),
		UserId:        userId,
		LegacyMessage: &legacy,
		CreatedAt:     time.Now(),
	})

	used, err := quota.DailyTokenUsage(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, len(legacy), used)
}

func TestCheckEnhanceQuotaBlocksWhenBudgetWouldOverflow(t *testing.T) {
	factory, quota := newQuotaFixture()
	userId := uuid.New()

	factory.store.plans = append(factory.store.plans, &entity.SubscriptionPlan{
		Id:   uuid.New(),
		Slug: constant.PlanFree,
		Benefits: []entity.PlanBenefit{
			{Code: constant.BenefitDailyTokenLimit, Value: 20},
		},
	})

	addHistory(factory, userId, "fifteen runes..", time.Now())

	// 15 used + 10 incoming > 20
	err := quota.CheckEnhanceQuota(context.Background(), userId, "ten runes.")
	require.Error(t, err)

	var limitErr *dto.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, constant.BenefitDailyTokenLimit, limitErr.Code)
	assert.Equal(t, 20, limitErr.Limit)
	assert.Equal(t, 15, limitErr.Used)

	// The reset boundary is the next UTC midnight
	assert.Equal(t, 0, limitErr.ResetAfter.Hour())
	assert.Equal(t, time.UTC, limitErr.ResetAfter.Location())

	// A message that fits passes
	require.NoError(t, quota.CheckEnhanceQuota(context.Background(), userId, "tiny"))
}

func TestCheckEnhanceQuotaUnlimitedPlanSkipsUsageLookup(t *testing.T) {
	factory, quota := newQuotaFixture()
	userId := uuid.New()

	factory.store.plans = append(factory.store.plans, &entity.SubscriptionPlan{
		Id:   uuid.New(),
		Slug: constant.PlanFree,
		Benefits: []entity.PlanBenefit{
			{Code: constant.BenefitDailyTokenLimit, Value: -1},
		},
	})

	long := make([]byte, 1<<20)
	for i := range long {
		long[i] = 'a'
	}
	require.NoError(t, quota.CheckEnhanceQuota(context.Background(), userId, string(long)))
}

func TestCheckEnhanceQuotaUsesPaidPlanOverFree(t *testing.T) {
	factory, quota := newQuotaFixture()
	userId := uuid.New()

	freeId, proId := uuid.New(), uuid.New()
	factory.store.plans = append(factory.store.plans,
		&entity.SubscriptionPlan{
			Id: freeId, Slug: constant.PlanFree,
			Benefits: []entity.PlanBenefit{{Code: constant.BenefitDailyTokenLimit, Value: 5}},
		},
		&entity.SubscriptionPlan{
			Id: proId, Slug: constant.PlanPro,
			Benefits: []entity.PlanBenefit{{Code: constant.BenefitDailyTokenLimit, Value: 100000}},
		},
	)
	factory.store.subs = append(factory.store.subs, &entity.UserSubscription{
		Id:               uuid.New(),
		UserId:           userId,
		PlanId:           proId,
		Status:           entity.SubscriptionStatusActive,
		PaymentStatus:    entity.PaymentStatusPaid,
		CurrentPeriodEnd: time.Now().Add(24 * time.Hour),
		CreatedAt:        time.Now(),
	})

	// Far over the free limit, fine on pro
	require.NoError(t, quota.CheckEnhanceQuota(context.Background(), userId, "well over five runes"))
}

func TestExpiredSubscriptionFallsBackToFreePlan(t *testing.T) {
	factory, quota := newQuotaFixture()
	userId := uuid.New()

	freeId, proId := uuid.New(), uuid.New()
	factory.store.plans = append(factory.store.plans,
		&entity.SubscriptionPlan{
			Id: freeId, Slug: constant.PlanFree,
			Benefits: []entity.PlanBenefit{{Code: constant.BenefitDailyTokenLimit, Value: 5}},
		},
		&entity.SubscriptionPlan{
			Id: proId, Slug: constant.PlanPro,
			Benefits: []entity.PlanBenefit{{Code: constant.BenefitDailyTokenLimit, Value: 100000}},
		},
	)
	factory.store.subs = append(factory.store.subs, &entity.UserSubscription{
		Id:               uuid.New(),
		UserId:           userId,
		PlanId:           proId,
		Status:           entity.SubscriptionStatusActive,
		PaymentStatus:    entity.PaymentStatusPaid,
		CurrentPeriodEnd: time.Now().Add(-time.Hour), // lapsed
		CreatedAt:        time.Now(),
	})

	err := quota.CheckEnhanceQuota(context.Background(), userId, "well over five runes")
	require.Error(t, err)

	var limitErr *dto.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 5, limitErr.Limit)
}

func TestCheckSessionCreateQuotaCountsActiveSessionsOnly(t *testing.T) {
	factory, quota := newQuotaFixture()
	userId := uuid.New()

	factory.store.plans = append(factory.store.plans, &entity.SubscriptionPlan{
		Id:   uuid.New(),
		Slug: constant.PlanFree,
		Benefits: []entity.PlanBenefit{
			{Code: constant.BenefitActiveSessionLimit, Value: 2},
		},
	})

	factory.store.sessions = append(factory.store.sessions,
		&entity.ChatSession{Id: uuid.New(), UserId: userId, IsActive: true},
		&entity.ChatSession{Id: uuid.New(), UserId: userId, IsActive: false},
	)

	// 1 active of 2 allowed
	require.NoError(t, quota.CheckSessionCreateQuota(context.Background(), userId))

	factory.store.sessions = append(factory.store.sessions,
		&entity.ChatSession{Id: uuid.New(), UserId: userId, IsActive: true},
	)

	err := quota.CheckSessionCreateQuota(context.Background(), userId)
	require.Error(t, err)

	var limitErr *dto.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, constant.BenefitActiveSessionLimit, limitErr.Code)
	assert.Equal(t, 2, limitErr.Used)
}

func TestMissingSeedDataUsesBuiltInFreeLimits(t *testing.T) {
	_, quota := newQuotaFixture()

	// No plans in the store at all: the hardcoded free plan applies
	err := quota.CheckSessionCreateQuota(context.Background(), uuid.New())
	require.NoError(t, err)
}
