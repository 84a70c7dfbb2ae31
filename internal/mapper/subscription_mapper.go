package mapper

import (
	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:            p.Id,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Tagline:       p.Tagline,
		Price:         p.Price,
		TaxRate:       p.TaxRate,
		BillingPeriod: entity.BillingPeriod(p.BillingPeriod),
		IsMostPopular: p.IsMostPopular,
		IsActive:      p.IsActive,
		SortOrder:     p.SortOrder,
		Benefits:      m.benefitsToEntities(p.Benefits),
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:            p.Id,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Tagline:       p.Tagline,
		Price:         p.Price,
		TaxRate:       p.TaxRate,
		BillingPeriod: string(p.BillingPeriod),
		IsMostPopular: p.IsMostPopular,
		IsActive:      p.IsActive,
		SortOrder:     p.SortOrder,
		Benefits:      m.benefitsToModels(p.Benefits),
	}
}

func (m *SubscriptionMapper) PlansToEntities(models []*model.SubscriptionPlan) []*entity.SubscriptionPlan {
	entities := make([]*entity.SubscriptionPlan, len(models))
	for i, p := range models {
		entities[i] = m.PlanToEntity(p)
	}
	return entities
}

func (m *SubscriptionMapper) benefitsToEntities(models []*model.PlanBenefit) []entity.PlanBenefit {
	if models == nil {
		return nil
	}
	entities := make([]entity.PlanBenefit, len(models))
	for i, b := range models {
		entities[i] = entity.PlanBenefit{
			Id:     b.Id,
			PlanId: b.PlanId,
			Code:   b.Code,
			Value:  b.Value,
		}
	}
	return entities
}

func (m *SubscriptionMapper) benefitsToModels(entities []entity.PlanBenefit) []*model.PlanBenefit {
	if entities == nil {
		return nil
	}
	models := make([]*model.PlanBenefit, len(entities))
	for i, b := range entities {
		models[i] = &model.PlanBenefit{
			Id:     b.Id,
			PlanId: b.PlanId,
			Code:   b.Code,
			Value:  b.Value,
		}
	}
	return models
}

func (m *SubscriptionMapper) UserSubscriptionToEntity(s *model.UserSubscription) *entity.UserSubscription {
	if s == nil {
		return nil
	}
	return &entity.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                entity.SubscriptionStatus(s.Status),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		PaymentStatus:         entity.PaymentStatus(s.PaymentStatus),
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) UserSubscriptionToModel(s *entity.UserSubscription) *model.UserSubscription {
	if s == nil {
		return nil
	}
	return &model.UserSubscription{
		Id:                    s.Id,
		UserId:                s.UserId,
		PlanId:                s.PlanId,
		Status:                string(s.Status),
		CurrentPeriodStart:    s.CurrentPeriodStart,
		CurrentPeriodEnd:      s.CurrentPeriodEnd,
		PaymentStatus:         string(s.PaymentStatus),
		MidtransTransactionId: s.MidtransTransactionId,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) TransactionToEntity(t *model.PaymentTransaction) *entity.PaymentTransaction {
	if t == nil {
		return nil
	}
	return &entity.PaymentTransaction{
		Id:             t.Id,
		UserId:         t.UserId,
		SubscriptionId: t.SubscriptionId,
		OrderId:        t.OrderId,
		GrossAmount:    t.GrossAmount,
		Status:         t.Status,
		PaymentType:    t.PaymentType,
		SnapToken:      t.SnapToken,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (m *SubscriptionMapper) TransactionToModel(t *entity.PaymentTransaction) *model.PaymentTransaction {
	if t == nil {
		return nil
	}
	return &model.PaymentTransaction{
		Id:             t.Id,
		UserId:         t.UserId,
		SubscriptionId: t.SubscriptionId,
		OrderId:        t.OrderId,
		GrossAmount:    t.GrossAmount,
		Status:         t.Status,
		PaymentType:    t.PaymentType,
		SnapToken:      t.SnapToken,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
