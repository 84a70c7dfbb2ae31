package unitofwork

import (
	"context"

	"ai-resume-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatSessionRepository() contract.ChatSessionRepository
	EnhancementHistoryRepository() contract.EnhancementHistoryRepository
	MasterResumeRepository() contract.MasterResumeRepository
	TemplateRepository() contract.TemplateRepository
	SubscriptionRepository() contract.SubscriptionRepository
	BillingRepository() contract.BillingRepository
}
