package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/contract"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"
	"ai-resume-be/pkg/ai"
	"ai-resume-be/pkg/resume"
)

// In-memory doubles for the repository layer. They interpret the same
// specifications the GORM implementations translate to SQL, so service
// tests exercise real query semantics without a database.

type memStore struct {
	mu sync.Mutex

	sessions  []*entity.ChatSession
	histories []*entity.EnhancementHistory
	masters   []*entity.MasterResume
	templates []*entity.ResumeTemplate
	plans     []*entity.SubscriptionPlan
	subs      []*entity.UserSubscription
}

type memFactory struct {
	store *memStore
}

func newMemFactory() *memFactory {
	return &memFactory{store: &memStore{}}
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUow{store: f.store}
}

type memUow struct {
	store *memStore
}

func (u *memUow) Begin(ctx context.Context) error { return nil }
func (u *memUow) Commit() error                   { return nil }
func (u *memUow) Rollback() error                 { return nil }

func (u *memUow) UserRepository() contract.UserRepository       { return nil }
func (u *memUow) BillingRepository() contract.BillingRepository { return nil }

func (u *memUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &memSessionRepo{store: u.store}
}

func (u *memUow) EnhancementHistoryRepository() contract.EnhancementHistoryRepository {
	return &memHistoryRepo{store: u.store}
}

func (u *memUow) MasterResumeRepository() contract.MasterResumeRepository {
	return &memMasterRepo{store: u.store}
}

func (u *memUow) TemplateRepository() contract.TemplateRepository {
	return &memTemplateRepo{store: u.store}
}

func (u *memUow) SubscriptionRepository() contract.SubscriptionRepository {
	return &memSubscriptionRepo{store: u.store}
}

// --- chat sessions ---

type memSessionRepo struct {
	store *memStore
}

func (r *memSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *session
	r.store.sessions = append(r.store.sessions, &cp)
	return nil
}

func (r *memSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, s := range r.store.sessions {
		if s.Id == session.Id {
			cp := *session
			r.store.sessions[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sessions {
		if s.Id == id {
			now := time.Now()
			s.IsDeleted = true
			s.IsActive = false
			s.DeletedAt = &now
		}
	}
	return nil
}

func (r *memSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *memSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*entity.ChatSession
	for _, s := range r.store.sessions {
		if s.IsDeleted {
			continue
		}
		if sessionMatches(s, specs) {
			cp := *s
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *memSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func (r *memSessionRepo) FindAllWithCounts(ctx context.Context, userId uuid.UUID) ([]*entity.ChatSession, error) {
	sessions, err := r.FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range sessions {
		for _, h := range r.store.histories {
			if h.ChatSessionId != nil && *h.ChatSessionId == s.Id {
				s.MessageCount++
			}
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

func sessionMatches(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != v.UserID {
				return false
			}
		case specification.ActiveSessions:
			if !s.IsActive {
				return false
			}
		}
	}
	return true
}

// --- enhancement history ---

type memHistoryRepo struct {
	store *memStore
}

func (r *memHistoryRepo) Create(ctx context.Context, history *entity.EnhancementHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *history
	r.store.histories = append(r.store.histories, &cp)
	return nil
}

func (r *memHistoryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EnhancementHistory, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *memHistoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EnhancementHistory, error) {
	r.store.mu.Lock()

	var result []*entity.EnhancementHistory
	for _, h := range r.store.histories {
		if historyMatches(h, specs) {
			cp := *h
			result = append(result, &cp)
		}
	}
	r.store.mu.Unlock()

	for _, spec := range specs {
		if v, ok := spec.(specification.OrderBy); ok && v.Field == "created_at" {
			desc := v.Desc
			sort.SliceStable(result, func(i, j int) bool {
				if desc {
					return result[i].CreatedAt.After(result[j].CreatedAt)
				}
				return result[i].CreatedAt.Before(result[j].CreatedAt)
			})
		}
	}
	for _, spec := range specs {
		if v, ok := spec.(specification.Pagination); ok {
			if v.Offset >= len(result) {
				return nil, nil
			}
			end := v.Offset + v.Limit
			if end > len(result) {
				end = len(result)
			}
			result = result[v.Offset:end]
		}
	}
	return result, nil
}

func (r *memHistoryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func historyMatches(h *entity.EnhancementHistory, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if h.Id != v.ID {
				return false
			}
		case specification.UserOwnedBy:
			if h.UserId != v.UserID {
				return false
			}
		case specification.ByChatSessionID:
			if h.ChatSessionId == nil || *h.ChatSessionId != v.ChatSessionID {
				return false
			}
		case specification.CreatedSince:
			if h.CreatedAt.Before(v.Since) {
				return false
			}
		case specification.ByTemplateID:
			if h.TemplateId == nil || *h.TemplateId != v.TemplateID {
				return false
			}
		case specification.HistorySearchQuery:
			q := strings.ToLower(v.Query)
			if !strings.Contains(strings.ToLower(h.EffectiveUserMessage()), q) {
				return false
			}
		}
	}
	return true
}

// --- master resumes ---

type memMasterRepo struct {
	store *memStore
}

func (r *memMasterRepo) Upsert(ctx context.Context, m *entity.MasterResume) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.masters {
		if existing.UserId == m.UserId {
			cp := *m
			r.store.masters[i] = &cp
			return nil
		}
	}
	cp := *m
	r.store.masters = append(r.store.masters, &cp)
	return nil
}

func (r *memMasterRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MasterResume, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.masters {
		ok := true
		for _, spec := range specs {
			if v, isOwner := spec.(specification.UserOwnedBy); isOwner && m.UserId != v.UserID {
				ok = false
			}
		}
		if ok {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMasterRepo) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.masters[:0]
	for _, m := range r.store.masters {
		if m.UserId != userId {
			kept = append(kept, m)
		}
	}
	r.store.masters = kept
	return nil
}

// --- templates ---

type memTemplateRepo struct {
	store *memStore
}

func (r *memTemplateRepo) Create(ctx context.Context, t *entity.ResumeTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *t
	r.store.templates = append(r.store.templates, &cp)
	return nil
}

func (r *memTemplateRepo) Update(ctx context.Context, t *entity.ResumeTemplate) error { return nil }

func (r *memTemplateRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResumeTemplate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, t := range r.store.templates {
		ok := true
		for _, spec := range specs {
			if v, isID := spec.(specification.ByID); isID && t.Id != v.ID {
				ok = false
			}
		}
		if ok {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTemplateRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResumeTemplate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.ResumeTemplate, len(r.store.templates))
	for i, t := range r.store.templates {
		cp := *t
		result[i] = &cp
	}
	return result, nil
}

// --- subscriptions ---

type memSubscriptionRepo struct {
	store *memStore
}

func (r *memSubscriptionRepo) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *plan
	r.store.plans = append(r.store.plans, &cp)
	return nil
}

func (r *memSubscriptionRepo) UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	return nil
}

func (r *memSubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.plans {
		ok := true
		for _, spec := range specs {
			switch v := spec.(type) {
			case specification.ByID:
				if p.Id != v.ID {
					ok = false
				}
			case specification.FilterBy:
				if v.Field == "slug" && p.Slug != v.Value.(string) {
					ok = false
				}
			}
		}
		if ok {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSubscriptionRepo) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	result := make([]*entity.SubscriptionPlan, len(r.store.plans))
	for i, p := range r.store.plans {
		cp := *p
		result[i] = &cp
	}
	return result, nil
}

func (r *memSubscriptionRepo) CreateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *sub
	r.store.subs = append(r.store.subs, &cp)
	return nil
}

func (r *memSubscriptionRepo) UpdateSubscription(ctx context.Context, sub *entity.UserSubscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, s := range r.store.subs {
		if s.Id == sub.Id {
			cp := *sub
			r.store.subs[i] = &cp
		}
	}
	return nil
}

func (r *memSubscriptionRepo) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *memSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error) {
	matches, err := r.FindAllSubscriptions(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *memSubscriptionRepo) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*entity.UserSubscription
	for _, s := range r.store.subs {
		ok := true
		for _, spec := range specs {
			if v, isOwner := spec.(specification.UserOwnedBy); isOwner && s.UserId != v.UserID {
				ok = false
			}
		}
		if ok {
			cp := *s
			result = append(result, &cp)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memSubscriptionRepo) CreateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error {
	return nil
}

func (r *memSubscriptionRepo) UpdateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error {
	return nil
}

func (r *memSubscriptionRepo) FindOneTransaction(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error) {
	return nil, nil
}

func (r *memSubscriptionRepo) FindAllTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error) {
	return nil, nil
}

// --- enhancer double ---

type stubEnhancer struct {
	mu         sync.Mutex
	titleCalls int

	enhanceFn func(current *resume.Resume, instruction string) (*resume.Resume, error)
	titleFn   func(instruction string) (string, error)
	extractFn func(input ai.ExtractInput) (*resume.Resume, error)
}

func (s *stubEnhancer) EnhanceResume(ctx context.Context, current *resume.Resume, instruction string) (*resume.Resume, error) {
	if s.enhanceFn != nil {
		return s.enhanceFn(current, instruction)
	}
	out := *current
	out.Summary = "enhanced: " + out.Summary
	return &out, nil
}

func (s *stubEnhancer) EnhanceHtml(ctx context.Context, html string, current *resume.Resume, instruction string) (string, *resume.Resume, error) {
	out, err := s.EnhanceResume(ctx, current, instruction)
	if err != nil {
		return "", nil, err
	}
	return html, out, nil
}

func (s *stubEnhancer) ExtractResume(ctx context.Context, input ai.ExtractInput) (*resume.Resume, error) {
	if s.extractFn != nil {
		return s.extractFn(input)
	}
	return &resume.Resume{Summary: strings.TrimSpace(input.Text)}, nil
}

func (s *stubEnhancer) GenerateTitle(ctx context.Context, instruction string) (string, error) {
	s.mu.Lock()
	s.titleCalls++
	s.mu.Unlock()
	if s.titleFn != nil {
		return s.titleFn(instruction)
	}
	return "Generated Title", nil
}

func (s *stubEnhancer) TitleCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.titleCalls
}

// --- logger double ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
