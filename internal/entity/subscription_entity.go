package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string
type PaymentStatus string
type BillingPeriod string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"

	BillingPeriodMonthly BillingPeriod = "monthly"
	BillingPeriodYearly  BillingPeriod = "yearly"
)

type SubscriptionPlan struct {
	Id            uuid.UUID
	Name          string
	Slug          string
	Description   string
	Tagline       string
	Price         float64
	TaxRate       float64
	BillingPeriod BillingPeriod
	IsMostPopular bool
	IsActive      bool
	SortOrder     int

	// Benefits keyed later by code; -1 means unlimited.
	Benefits []PlanBenefit
}

type PlanBenefit struct {
	Id     uuid.UUID
	PlanId uuid.UUID
	Code   string
	Value  int
}

// BenefitValue resolves a benefit by code. ok is false when the plan does
// not carry that benefit at all.
func (p *SubscriptionPlan) BenefitValue(code string) (int, bool) {
	for _, b := range p.Benefits {
		if b.Code == code {
			return b.Value, true
		}
	}
	return 0, false
}

type UserSubscription struct {
	Id                    uuid.UUID
	UserId                uuid.UUID
	PlanId                uuid.UUID
	Status                SubscriptionStatus
	CurrentPeriodStart    time.Time
	CurrentPeriodEnd      time.Time
	PaymentStatus         PaymentStatus
	MidtransTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type PaymentTransaction struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	SubscriptionId *uuid.UUID
	OrderId        string
	GrossAmount    float64
	Status         string
	PaymentType    string
	SnapToken      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
