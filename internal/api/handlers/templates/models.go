package templates

import "github.com/m04kA/SMC-AdmissionsService/internal/domain"

// UpdateTemplateRequest HTTP request model
type UpdateTemplateRequest struct {
	Fields []domain.TemplateField `json:"fields" validate:"required,max=100,dive"`
}
