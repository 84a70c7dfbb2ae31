package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-resume-be/internal/apperrors"
	"ai-resume-be/internal/constant"
	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/pkg/ai"
	"ai-resume-be/pkg/resume"
)

func newChatFixture(t *testing.T) (*memFactory, *stubEnhancer, ResumeChatService) {
	t.Helper()

	factory := newMemFactory()
	enhancer := &stubEnhancer{}
	quota := NewQuotaService(factory, nopLogger{})
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	svc := NewResumeChatService(factory, enhancer, quota, pubSub, "ENHANCEMENT_COMPLETED", nopLogger{})
	return factory, enhancer, svc
}

func seedFreePlan(factory *memFactory, tokenLimit, sessionLimit int) {
	factory.store.plans = append(factory.store.plans, &entity.SubscriptionPlan{
		Id:       uuid.New(),
		Name:     "Free",
		Slug:     constant.PlanFree,
		IsActive: true,
		Benefits: []entity.PlanBenefit{
			{Code: constant.BenefitDailyTokenLimit, Value: tokenLimit},
			{Code: constant.BenefitActiveSessionLimit, Value: sessionLimit},
		},
	})
}

func sampleResume() *resume.Resume {
	return &resume.Resume{
		Name:    "Ada Lovelace",
		Role:    "Software Engineer",
		Summary: "Engineer with a background in numerical computing.",
		Skills:  []string{"Go", "PostgreSQL"},
	}
}

func TestEnhanceCreatesSessionAndPersistsTurn(t *testing.T) {
	factory, enhancer, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	resp, err := svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		Message: "Make my summary stronger",
		Resume:  sampleResume(),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEqual(t, uuid.Nil, resp.ChatId)
	assert.Equal(t, constant.EnhancedReply, resp.AssistantMessage)
	require.NotNil(t, resp.EnhancedResume)
	assert.Contains(t, resp.EnhancedResume.Summary, "enhanced:")

	// One session, auto-titled from the first message
	require.Len(t, factory.store.sessions, 1)
	session := factory.store.sessions[0]
	assert.Equal(t, "Generated Title", session.Title)
	assert.True(t, session.TitleAutoSet)
	assert.Equal(t, 1, enhancer.TitleCalls())

	// One immutable history row carrying both snapshots
	require.Len(t, factory.store.histories, 1)
	entry := factory.store.histories[0]
	assert.Equal(t, userId, entry.UserId)
	require.NotNil(t, entry.ChatSessionId)
	assert.Equal(t, session.Id, *entry.ChatSessionId)
	assert.Equal(t, constant.HistoryTagEnhance, entry.Tag)
	assert.Equal(t, "Make my summary stronger", entry.UserMessage)
	assert.Equal(t, sampleResume().Summary, entry.OriginalResume.Summary)
	assert.Contains(t, entry.EnhancedResume.Summary, "enhanced:")
}

func TestEnhanceTitleIsSetOnlyOnce(t *testing.T) {
	factory, enhancer, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	first, err := svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		Message: "Polish the experience section",
		Resume:  sampleResume(),
	})
	require.NoError(t, err)

	_, err = svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		ChatId:  &first.ChatId,
		Message: "Now shorten the summary",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, enhancer.TitleCalls())
	assert.Equal(t, "Generated Title", factory.store.sessions[0].Title)
	require.Len(t, factory.store.histories, 2)
}

func TestEnhanceProviderFailurePersistsNothing(t *testing.T) {
	factory, enhancer, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.DefaultSessionTitle,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	factory.store.sessions = append(factory.store.sessions, session)

	enhancer.enhanceFn = func(current *resume.Resume, instruction string) (*resume.Resume, error) {
		return nil, errors.New("connection refused")
	}

	_, err := svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		ChatId:  &session.Id,
		Message: "Improve it",
		Resume:  sampleResume(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)

	assert.Empty(t, factory.store.histories, "failed turns must not be recorded")
	assert.Equal(t, constant.DefaultSessionTitle, factory.store.sessions[0].Title)
}

func TestEnhanceBadOutputMapsToParseFailure(t *testing.T) {
	factory, enhancer, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)

	enhancer.enhanceFn = func(current *resume.Resume, instruction string) (*resume.Resume, error) {
		return nil, fmt.Errorf("%w: truncated JSON", ai.ErrBadOutput)
	}

	_, err := svc.Enhance(context.Background(), uuid.New(), &dto.EnhanceRequest{
		Message: "Improve it",
		Resume:  sampleResume(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrParseFailure)
	assert.Empty(t, factory.store.histories)
}

func TestEnhanceWithoutAnyResumeRecordsCannedReply(t *testing.T) {
	factory, enhancer, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)

	enhancer.enhanceFn = func(current *resume.Resume, instruction string) (*resume.Resume, error) {
		t.Fatal("the provider must not be called when there is nothing to enhance")
		return nil, nil
	}

	resp, err := svc.Enhance(context.Background(), uuid.New(), &dto.EnhanceRequest{
		Message: "Hello, what can you do?",
	})
	require.NoError(t, err)
	assert.Equal(t, constant.NoResumeReply, resp.AssistantMessage)
	assert.Nil(t, resp.EnhancedResume)

	// The turn is still part of the conversation record
	require.Len(t, factory.store.histories, 1)
	assert.Nil(t, factory.store.histories[0].EnhancedResume)
}

func TestEnhanceFallsBackToMasterResume(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	factory.store.masters = append(factory.store.masters, &entity.MasterResume{
		Id:     uuid.New(),
		UserId: userId,
		Resume: sampleResume(),
	})

	resp, err := svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		Message: "Use my master resume",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.EnhancedResume)
	assert.Contains(t, resp.EnhancedResume.Summary, "enhanced:")
}

func TestEnhanceRespectsDailyTokenLimit(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 10, 5)

	_, err := svc.Enhance(context.Background(), uuid.New(), &dto.EnhanceRequest{
		Message: "this message is longer than ten runes",
		Resume:  sampleResume(),
	})
	require.Error(t, err)

	var limitErr *dto.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, constant.BenefitDailyTokenLimit, limitErr.Code)
	assert.Empty(t, factory.store.histories)
}

func TestLegacyEnhanceRecordsGlobalEntry(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	resp, err := svc.LegacyEnhance(context.Background(), userId, &dto.LegacyEnhanceRequest{
		Message: "One-shot enhancement",
		Resume:  sampleResume(),
	})
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, resp.ChatId)

	require.Len(t, factory.store.histories, 1)
	entry := factory.store.histories[0]
	assert.Nil(t, entry.ChatSessionId, "legacy entries are global, not session-bound")
	require.NotNil(t, entry.LegacyMessage)
	assert.Equal(t, "One-shot enhancement", *entry.LegacyMessage)
	assert.Equal(t, "One-shot enhancement", entry.EffectiveUserMessage())
}

func TestSaveIsIdempotentForIdenticalSnapshot(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{})
	require.NoError(t, err)

	snapshot := sampleResume()

	first, err := svc.Save(context.Background(), userId, &dto.SaveResumeRequest{
		ChatId: created.Id,
		Resume: snapshot,
	})
	require.NoError(t, err)
	assert.Equal(t, constant.SavedReply, first.AssistantMessage)
	require.Len(t, factory.store.histories, 1)

	// Same snapshot again: no new row
	_, err = svc.Save(context.Background(), userId, &dto.SaveResumeRequest{
		ChatId: created.Id,
		Resume: snapshot,
	})
	require.NoError(t, err)
	assert.Len(t, factory.store.histories, 1)

	// A changed snapshot appends
	changed := sampleResume()
	changed.Summary = "Completely rewritten."
	_, err = svc.Save(context.Background(), userId, &dto.SaveResumeRequest{
		ChatId: created.Id,
		Resume: changed,
	})
	require.NoError(t, err)
	assert.Len(t, factory.store.histories, 2)
}

func TestRenameSessionPinsTitle(t *testing.T) {
	factory, enhancer, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{})
	require.NoError(t, err)

	_, err = svc.RenameSession(context.Background(), userId, created.Id, &dto.RenameSessionRequest{Title: "My CV work"})
	require.NoError(t, err)

	// The first enhancement must not overwrite a manual title
	_, err = svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		ChatId:  &created.Id,
		Message: "Improve it",
		Resume:  sampleResume(),
	})
	require.NoError(t, err)

	assert.Equal(t, "My CV work", factory.store.sessions[0].Title)
	assert.Equal(t, 0, enhancer.TitleCalls())
}

func TestRenameSessionRejectsBlankTitle(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{})
	require.NoError(t, err)

	_, err = svc.RenameSession(context.Background(), userId, created.Id, &dto.RenameSessionRequest{Title: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeleteSessionKeepsHistory(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	resp, err := svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		Message: "Improve it",
		Resume:  sampleResume(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(context.Background(), userId, resp.ChatId))

	// The session is gone from listings but its history survives
	sessions, err := svc.ListSessions(context.Background(), userId)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	page, err := svc.ListHistory(context.Background(), userId, &dto.ListHistoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestDeleteSessionOfAnotherUserFails(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)

	owner := uuid.New()
	created, err := svc.CreateSession(context.Background(), owner, &dto.CreateSessionRequest{})
	require.NoError(t, err)

	err = svc.DeleteSession(context.Background(), uuid.New(), created.Id)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetSessionReconstructsCurrentResume(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	first, err := svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		Message: "Round one",
		Resume:  sampleResume(),
	})
	require.NoError(t, err)

	_, err = svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		ChatId:  &first.ChatId,
		Message: "Round two",
	})
	require.NoError(t, err)

	detail, err := svc.GetSession(context.Background(), userId, first.ChatId)
	require.NoError(t, err)
	require.NotNil(t, detail.CurrentResume)
	// Round two enhanced the output of round one
	assert.Contains(t, detail.CurrentResume.Summary, "enhanced: enhanced:")
}

func TestListHistoryPaginatesNewestFirst(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 100000, 5)
	userId := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		factory.store.histories = append(factory.store.histories, &entity.EnhancementHistory{
			Id:          uuid.New(),
			UserId:      userId,
			UserMessage: fmt.Sprintf("message %d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	page, err := svc.ListHistory(context.Background(), userId, &dto.ListHistoryQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "message 4", page.Items[0].UserMessage)
	assert.Equal(t, "message 3", page.Items[1].UserMessage)

	page2, err := svc.ListHistory(context.Background(), userId, &dto.ListHistoryQuery{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "message 0", page2.Items[0].UserMessage)
}

func TestListHistorySearchCoversLegacyColumn(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 100000, 5)
	userId := uuid.New()

	legacy := "legacy devops rewrite"
	factory.store.histories = append(factory.store.histories,
		&entity.EnhancementHistory{Id: uuid.New(), UserId: userId, UserMessage: "tune the summary", CreatedAt: time.Now()},
		&entity.EnhancementHistory{Id: uuid.New(), UserId: userId, LegacyMessage: &legacy, CreatedAt: time.Now()},
	)

	page, err := svc.ListHistory(context.Background(), userId, &dto.ListHistoryQuery{Search: "devops"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, legacy, page.Items[0].UserMessage)
}

func TestCreateSessionRejectsUnknownTemplate(t *testing.T) {
	factory, _, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)

	missing := uuid.New()
	_, err := svc.CreateSession(context.Background(), uuid.New(), &dto.CreateSessionRequest{TemplateId: &missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEnhanceHtmlPathReceivesConversationWindow(t *testing.T) {
	factory, enhancer, svc := newChatFixture(t)
	seedFreePlan(factory, 10000, 5)
	userId := uuid.New()

	first, err := svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		Message:    "Tighten the header",
		Resume:     sampleResume(),
		ResumeHtml: "<html><body>Ada Lovelace</body></html>",
	})
	require.NoError(t, err)

	var seen string
	enhancer.enhanceFn = func(current *resume.Resume, instruction string) (*resume.Resume, error) {
		seen = instruction
		out := *current
		return &out, nil
	}

	_, err = svc.Enhance(context.Background(), userId, &dto.EnhanceRequest{
		ChatId:  &first.ChatId,
		Message: "Now bold the skills",
	})
	require.NoError(t, err)

	// Both branches get the full prompt context, not just the raw message
	assert.Contains(t, seen, "Current Resume Context")
	assert.Contains(t, seen, "user: Tighten the header")
	assert.Contains(t, seen, "Now bold the skills")
}

// verify the fixture's session specs behave like the SQL layer
func TestMemSessionRepoHonorsActiveFilter(t *testing.T) {
	factory := newMemFactory()
	userId := uuid.New()
	factory.store.sessions = append(factory.store.sessions,
		&entity.ChatSession{Id: uuid.New(), UserId: userId, IsActive: true},
		&entity.ChatSession{Id: uuid.New(), UserId: userId, IsActive: false},
	)

	uow := factory.NewUnitOfWork(context.Background())
	count, err := uow.ChatSessionRepository().Count(context.Background(),
		specification.UserOwnedBy{UserID: userId},
		specification.ActiveSessions{},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
