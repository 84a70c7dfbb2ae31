// FILE: internal/dto/usage_dto.go
// DTOs for usage limits and status checking
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UsageLimit represents a single limit status
type UsageLimit struct {
	Used     int        `json:"used"`
	Limit    int        `json:"limit"` // -1 = unlimited, 0 = disabled
	CanUse   bool       `json:"can_use"`
	ResetsAt *time.Time `json:"resets_at,omitempty"` // For daily limits
}

// DailyLimits for usage that resets at UTC midnight
type DailyLimits struct {
	Tokens         UsageLimit `json:"tokens"`
	ActiveSessions UsageLimit `json:"active_sessions"`
}

// UsageStatusResponse is returned by GET /api/user/usage-status
type UsageStatusResponse struct {
	Plan             PlanInfo    `json:"plan"`
	Daily            DailyLimits `json:"daily"`
	UpgradeAvailable bool        `json:"upgrade_available"`
}

type PlanInfo struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// PlanWithBenefitsResponse is returned by GET /api/plans (public)
type PlanWithBenefitsResponse struct {
	Id            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Slug          string       `json:"slug"`
	Tagline       string       `json:"tagline"`
	Price         float64      `json:"price"`
	BillingPeriod string       `json:"billing_period"`
	IsMostPopular bool         `json:"is_most_popular"`
	Benefits      []BenefitDTO `json:"benefits"`
}

type BenefitDTO struct {
	Code  string `json:"code"`
	Value int    `json:"value"`
}

// LimitExceededError carries usage details through the error path.
type LimitExceededError struct {
	Code       string    `json:"code"`
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily usage limit exceeded"
}
