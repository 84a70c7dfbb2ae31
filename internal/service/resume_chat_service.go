// FILE: internal/service/resume_chat_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"ai-resume-be/internal/apperrors"
	"ai-resume-be/internal/constant"
	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"
	"ai-resume-be/pkg/ai"
	"ai-resume-be/pkg/resume"
	"ai-resume-be/pkg/resume/state"
)

type ResumeChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionSummaryResponse, error)
	Enhance(ctx context.Context, userId uuid.UUID, req *dto.EnhanceRequest) (*dto.EnhanceResponse, error)
	LegacyEnhance(ctx context.Context, userId uuid.UUID, req *dto.LegacyEnhanceRequest) (*dto.EnhanceResponse, error)
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveResumeRequest) (*dto.EnhanceResponse, error)

	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error)
	GetSession(ctx context.Context, userId, chatId uuid.UUID) (*dto.SessionDetailResponse, error)
	RenameSession(ctx context.Context, userId, chatId uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionSummaryResponse, error)
	DeleteSession(ctx context.Context, userId, chatId uuid.UUID) error

	ListHistory(ctx context.Context, userId uuid.UUID, query *dto.ListHistoryQuery) (*dto.HistoryPageResponse, error)
	GetHistoryDetail(ctx context.Context, userId, historyId uuid.UUID) (*dto.HistoryDetailResponse, error)
}

type resumeChatService struct {
	uowFactory unitofwork.RepositoryFactory
	enhancer   ai.Enhancer
	quota      QuotaService
	pubSub     *gochannel.GoChannel
	topicName  string
	logger     logger.ILogger
}

func NewResumeChatService(
	uowFactory unitofwork.RepositoryFactory,
	enhancer ai.Enhancer,
	quota QuotaService,
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
) ResumeChatService {
	return &resumeChatService{
		uowFactory: uowFactory,
		enhancer:   enhancer,
		quota:      quota,
		pubSub:     pubSub,
		topicName:  topicName,
		logger:     log,
	}
}

// CreateSession opens an empty session. The title stays "New Chat" until
// the first enhancement names it.
func (s *resumeChatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionSummaryResponse, error) {
	if err := s.quota.CheckSessionCreateQuota(ctx, userId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if req.TemplateId != nil {
		if err := s.ensureTemplate(ctx, uow, *req.TemplateId); err != nil {
			return nil, err
		}
	}

	session := &entity.ChatSession{
		Id:         uuid.New(),
		UserId:     userId,
		Title:      constant.DefaultSessionTitle,
		TemplateId: req.TemplateId,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return sessionSummary(session), nil
}

// Enhance runs one full turn of the chat state machine. Nothing is
// persisted unless the whole turn succeeds.
func (s *resumeChatService) Enhance(ctx context.Context, userId uuid.UUID, req *dto.EnhanceRequest) (*dto.EnhanceResponse, error) {
	started := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Resolve session
	session, created, err := s.resolveSession(ctx, uow, userId, req)
	if err != nil {
		return nil, err
	}

	// 2. Quota gate before any AI spend
	if err := s.quota.CheckEnhanceQuota(ctx, userId, req.Message); err != nil {
		return nil, err
	}

	// 3. Load the session's history oldest-first
	entries, err := uow.EnhancementHistoryRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	log := historyToState(entries)

	// 4. Resolve current resume and HTML: request wins, then the log,
	// then the user's master resume.
	current := req.Resume
	currentHtml := req.ResumeHtml
	if current == nil {
		current = state.CurrentResume(log)
	}
	if currentHtml == "" {
		currentHtml = state.CurrentHtml(log)
	}
	if current == nil {
		master, err := uow.MasterResumeRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
		if err != nil {
			return nil, err
		}
		if master != nil {
			current = master.Resume
		}
	}

	// 5. Invoke AI. The whole chain, retries and fallback included, gets
	// one aggregate deadline.
	aiCtx, cancel := context.WithTimeout(ctx, constant.EnhanceTimeoutSeconds*time.Second)
	defer cancel()

	conversation := state.BuildContext(current, log, req.Message)

	var (
		enhanced     *resume.Resume
		enhancedHtml string
		reply        string
	)

	switch {
	case current == nil:
		// Nothing to enhance yet. No AI call, canned reply, but the turn
		// is still recorded so the conversation reads back correctly.
		reply = constant.NoResumeReply
	case currentHtml != "":
		enhancedHtml, enhanced, err = s.enhancer.EnhanceHtml(aiCtx, currentHtml, current, conversation)
		if err != nil {
			return nil, s.wrapAIError(err)
		}
		reply = constant.EnhancedReply
	default:
		enhanced, err = s.enhancer.EnhanceResume(aiCtx, current, conversation)
		if err != nil {
			return nil, s.wrapAIError(err)
		}
		reply = constant.EnhancedReply
	}

	elapsed := time.Since(started).Milliseconds()

	// 6. Persist the entry and session metadata atomically
	entry := &entity.EnhancementHistory{
		Id:               uuid.New(),
		ChatSessionId:    &session.Id,
		UserId:           userId,
		UserMessage:      req.Message,
		AssistantMessage: reply,
		OriginalResume:   current,
		EnhancedResume:   enhanced,
		ResumeHtml:       optionalString(currentHtml),
		EnhancedHtml:     optionalString(enhancedHtml),
		TemplateId:       req.TemplateId,
		Tag:              constant.HistoryTagEnhance,
		ProcessingTimeMs: elapsed,
		CreatedAt:        time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EnhancementHistoryRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.touchSession(ctx, uow, session, req.Message, created || len(entries) == 0); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishCompleted(entry)

	respResume := enhanced
	if respResume == nil {
		respResume = current
	}

	return &dto.EnhanceResponse{
		ChatId:           session.Id,
		Title:            session.Title,
		UserMessage:      req.Message,
		AssistantMessage: reply,
		EnhancedResume:   respResume,
		EnhancedHtml:     enhancedHtml,
		ProcessingTimeMs: elapsed,
	}, nil
}

// LegacyEnhance serves the pre-chat endpoint: one-shot enhancement with a
// required resume and no session.
func (s *resumeChatService) LegacyEnhance(ctx context.Context, userId uuid.UUID, req *dto.LegacyEnhanceRequest) (*dto.EnhanceResponse, error) {
	started := time.Now()

	if err := s.quota.CheckEnhanceQuota(ctx, userId, req.Message); err != nil {
		return nil, err
	}

	aiCtx, cancel := context.WithTimeout(ctx, constant.EnhanceTimeoutSeconds*time.Second)
	defer cancel()

	enhanced, err := s.enhancer.EnhanceResume(aiCtx, req.Resume, req.Message)
	if err != nil {
		return nil, s.wrapAIError(err)
	}

	elapsed := time.Since(started).Milliseconds()

	legacyMsg := req.Message
	entry := &entity.EnhancementHistory{
		Id:               uuid.New(),
		UserId:           userId,
		LegacyMessage:    &legacyMsg,
		AssistantMessage: constant.EnhancedReply,
		OriginalResume:   req.Resume,
		EnhancedResume:   enhanced,
		TemplateId:       req.TemplateId,
		Tag:              constant.HistoryTagEnhance,
		ProcessingTimeMs: elapsed,
		CreatedAt:        time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EnhancementHistoryRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	s.publishCompleted(entry)

	return &dto.EnhanceResponse{
		ChatId:           uuid.Nil,
		UserMessage:      req.Message,
		AssistantMessage: constant.EnhancedReply,
		EnhancedResume:   enhanced,
		ProcessingTimeMs: elapsed,
	}, nil
}

// Save records an explicit snapshot of the session's resume. Saving the
// same snapshot twice in a row is a no-op returning the original entry.
func (s *resumeChatService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveResumeRequest) (*dto.EnhanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, req.ChatId)
	if err != nil {
		return nil, err
	}

	latest, err := uow.EnhancementHistoryRepository().FindOne(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	if latest != nil && latest.Tag == constant.HistoryTagSave &&
		resume.Equal(latest.EnhancedResume, req.Resume) {
		return &dto.EnhanceResponse{
			ChatId:           session.Id,
			Title:            session.Title,
			AssistantMessage: latest.AssistantMessage,
			EnhancedResume:   latest.EnhancedResume,
			ProcessingTimeMs: latest.ProcessingTimeMs,
		}, nil
	}

	entry := &entity.EnhancementHistory{
		Id:               uuid.New(),
		ChatSessionId:    &session.Id,
		UserId:           userId,
		UserMessage:      "Save resume",
		AssistantMessage: constant.SavedReply,
		OriginalResume:   req.Resume,
		EnhancedResume:   req.Resume,
		TemplateId:       req.TemplateId,
		Tag:              constant.HistoryTagSave,
		CreatedAt:        time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.EnhancementHistoryRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	now := time.Now()
	session.UpdatedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishCompleted(entry)

	return &dto.EnhanceResponse{
		ChatId:           session.Id,
		Title:            session.Title,
		AssistantMessage: constant.SavedReply,
		EnhancedResume:   req.Resume,
	}, nil
}

func (s *resumeChatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAllWithCounts(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionSummaryResponse, len(sessions))
	for i, session := range sessions {
		result[i] = sessionSummary(session)
	}
	return result, nil
}

func (s *resumeChatService) GetSession(ctx context.Context, userId, chatId uuid.UUID) (*dto.SessionDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}

	entries, err := uow.EnhancementHistoryRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}
	log := historyToState(entries)

	return &dto.SessionDetailResponse{
		Id:            session.Id,
		Title:         session.Title,
		TemplateId:    session.TemplateId,
		CurrentResume: state.CurrentResume(log),
		CurrentHtml:   state.CurrentHtml(log),
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}, nil
}

func (s *resumeChatService) RenameSession(ctx context.Context, userId, chatId uuid.UUID, req *dto.RenameSessionRequest) (*dto.SessionSummaryResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validationf("title must not be blank")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, chatId)
	if err != nil {
		return nil, err
	}

	session.Title = title
	// A manual rename pins the title; auto-titling never overwrites it.
	session.TitleAutoSet = true
	now := time.Now()
	session.UpdatedAt = &now

	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return sessionSummary(session), nil
}

// DeleteSession tombstones the session. History entries stay: the log is
// append-only and global history must keep serving them.
func (s *resumeChatService) DeleteSession(ctx context.Context, userId, chatId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, chatId)
	if err != nil {
		return err
	}

	return uow.ChatSessionRepository().Delete(ctx, session.Id)
}

func (s *resumeChatService) ListHistory(ctx context.Context, userId uuid.UUID, query *dto.ListHistoryQuery) (*dto.HistoryPageResponse, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = 20
	}
	if query.PageSize > constant.MaxHistoryPageSize {
		query.PageSize = constant.MaxHistoryPageSize
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if query.Search != "" {
		filters = append(filters, specification.HistorySearchQuery{Query: query.Search})
	}
	if query.TemplateId != nil {
		filters = append(filters, specification.ByTemplateID{TemplateID: *query.TemplateId})
	}

	total, err := uow.EnhancementHistoryRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: query.SortOrder != "asc"},
		specification.Pagination{Limit: query.PageSize, Offset: (query.Page - 1) * query.PageSize},
	)

	entries, err := uow.EnhancementHistoryRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.HistorySummaryResponse, len(entries))
	for i, e := range entries {
		items[i] = &dto.HistorySummaryResponse{
			Id:               e.Id,
			ChatId:           e.ChatSessionId,
			UserMessage:      e.EffectiveUserMessage(),
			AssistantMessage: e.AssistantMessage,
			Tag:              e.Tag,
			TemplateId:       e.TemplateId,
			HasEnhanced:      e.EnhancedResume != nil,
			CreatedAt:        e.CreatedAt,
		}
	}

	return &dto.HistoryPageResponse{
		Items:    items,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

func (s *resumeChatService) GetHistoryDetail(ctx context.Context, userId, historyId uuid.UUID) (*dto.HistoryDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.EnhancementHistoryRepository().FindOne(ctx,
		specification.ByID{ID: historyId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperrors.NotFoundf("history entry %s", historyId)
	}

	return &dto.HistoryDetailResponse{
		Id:               entry.Id,
		ChatId:           entry.ChatSessionId,
		UserMessage:      entry.EffectiveUserMessage(),
		AssistantMessage: entry.AssistantMessage,
		OriginalResume:   entry.OriginalResume,
		EnhancedResume:   entry.EnhancedResume,
		ResumeHtml:       derefString(entry.ResumeHtml),
		EnhancedHtml:     derefString(entry.EnhancedHtml),
		Tag:              entry.Tag,
		TemplateId:       entry.TemplateId,
		ProcessingTimeMs: entry.ProcessingTimeMs,
		CreatedAt:        entry.CreatedAt,
	}, nil
}

// --- internals ---

func (s *resumeChatService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req *dto.EnhanceRequest) (*entity.ChatSession, bool, error) {
	if req.ChatId != nil {
		session, err := s.ownedSession(ctx, uow, userId, *req.ChatId)
		if err != nil {
			return nil, false, err
		}
		return session, false, nil
	}

	if err := s.quota.CheckSessionCreateQuota(ctx, userId); err != nil {
		return nil, false, err
	}

	session := &entity.ChatSession{
		Id:         uuid.New(),
		UserId:     userId,
		Title:      constant.DefaultSessionTitle,
		TemplateId: req.TemplateId,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, false, err
	}
	return session, true, nil
}

func (s *resumeChatService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, chatId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: chatId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.NotFoundf("chat session %s", chatId)
	}
	return session, nil
}

func (s *resumeChatService) ensureTemplate(ctx context.Context, uow unitofwork.UnitOfWork, templateId uuid.UUID) error {
	template, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: templateId})
	if err != nil {
		return err
	}
	if template == nil || !template.IsActive {
		return apperrors.NotFoundf("template %s", templateId)
	}
	return nil
}

// touchSession bumps updated_at and, exactly once per session, replaces
// the default title with an AI-generated one.
func (s *resumeChatService) touchSession(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, firstMessage string, isFirstTurn bool) error {
	now := time.Now()
	session.UpdatedAt = &now

	if isFirstTurn && !session.TitleAutoSet && session.Title == constant.DefaultSessionTitle {
		title, err := s.enhancer.GenerateTitle(ctx, firstMessage)
		if err != nil {
			s.logger.Warn("chat", "title generation failed, using fallback", map[string]interface{}{
				"chat_id": session.Id.String(),
				"error":   err.Error(),
			})
			title = ai.FallbackTitle(firstMessage)
		}
		if title != "" {
			session.Title = title
			session.TitleAutoSet = true
		}
	}

	return uow.ChatSessionRepository().Update(ctx, session)
}

func (s *resumeChatService) publishCompleted(entry *entity.EnhancementHistory) {
	payload, err := json.Marshal(dto.PublishEnhancementCompletedMessage{
		HistoryId: entry.Id,
		UserId:    entry.UserId,
		ChatId:    entry.ChatSessionId,
		Tag:       entry.Tag,
	})
	if err != nil {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Warn("chat", "failed to publish enhancement event", map[string]interface{}{
			"history_id": entry.Id.String(),
			"error":      err.Error(),
		})
	}
}

// wrapAIError translates provider failures into the domain taxonomy.
// Parse and provider failures surface identically to the user; the log
// keeps them apart.
func (s *resumeChatService) wrapAIError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ai.ErrBadOutput):
		s.logger.Error("chat", "AI output unparseable after retries", map[string]interface{}{"error": err.Error()})
		return apperrors.ErrParseFailure
	default:
		s.logger.Error("chat", "AI provider unavailable", map[string]interface{}{"error": err.Error()})
		return apperrors.ErrProviderUnavailable
	}
}

func historyToState(entries []*entity.EnhancementHistory) []state.Entry {
	log := make([]state.Entry, len(entries))
	for i, e := range entries {
		log[i] = state.Entry{
			UserMessage:      e.EffectiveUserMessage(),
			AssistantMessage: e.AssistantMessage,
			Original:         e.OriginalResume,
			Enhanced:         e.EnhancedResume,
			ResumeHtml:       derefString(e.ResumeHtml),
			EnhancedHtml:     derefString(e.EnhancedHtml),
		}
	}
	return log
}

func sessionSummary(session *entity.ChatSession) *dto.SessionSummaryResponse {
	return &dto.SessionSummaryResponse{
		Id:           session.Id,
		Title:        session.Title,
		TemplateId:   session.TemplateId,
		MessageCount: session.MessageCount,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
