package models

import (
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// UpdateTemplateRequest запрос на замену полей шаблона
type UpdateTemplateRequest struct {
	ActorID int64
	Kind    string
	Fields  []domain.TemplateField
}

// TemplateResponse шаблон анкеты
type TemplateResponse struct {
	Kind      string                 `json:"kind"`
	Fields    []domain.TemplateField `json:"fields"`
	IsDefault bool                   `json:"isDefault"`
	UpdatedAt *time.Time             `json:"updatedAt,omitempty"`
}

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.FormTemplate, isDefault bool) *TemplateResponse {
	if t == nil {
		return nil
	}

	fields := t.Fields
	if fields == nil {
		fields = []domain.TemplateField{}
	}

	resp := &TemplateResponse{
		Kind:      string(t.Kind),
		Fields:    fields,
		IsDefault: isDefault,
	}
	if !t.UpdatedAt.IsZero() {
		updatedAt := t.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
