// FILE: internal/dto/billing_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserBillingResponse for user's billing info on Settings page
type UserBillingResponse struct {
	Id           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	AddressLine1 string    `json:"address_line1"`
	City         string    `json:"city"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
}

// UserBillingUpdateRequest for user updating their billing info
type UserBillingUpdateRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	City         string `json:"city" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required,max=10"`
	Country      string `json:"country" validate:"required"`
}

type PaymentHistoryResponse struct {
	Id          uuid.UUID `json:"id"`
	OrderId     string    `json:"order_id"`
	PlanName    string    `json:"plan_name"`
	GrossAmount float64   `json:"gross_amount"`
	Status      string    `json:"status"`
	PaymentType string    `json:"payment_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
