// FILE: internal/dto/template_dto.go
package dto

import (
	"github.com/google/uuid"
)

type TemplateResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PreviewURL  string    `json:"preview_url,omitempty"`
	SortOrder   int       `json:"sort_order"`
}
