package admissions

import (
	"net/http"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/admissions/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// UpdateAdmissionRequest HTTP request model
// Fields дополняют сохраненную анкету; status submitted подает дело на рассмотрение
type UpdateAdmissionRequest struct {
	Fields map[string]interface{} `json:"fields"`
	Status *string                `json:"status,omitempty" validate:"omitempty,oneof=draft submitted"`
}

// AddDocumentRequest HTTP request model
type AddDocumentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	URL  string `json:"url" validate:"required,url"`
}

// ReviewRequest HTTP request model
type ReviewRequest struct {
	Decision string  `json:"decision" validate:"required,oneof=approved rejected waitlisted"`
	Remarks  *string `json:"remarks,omitempty" validate:"omitempty,max=1000"`
}

// ToListRequest формирует фильтр из query параметров
// Query params: status, search, limit, offset
func ToListRequest(r *http.Request) (*models.ListAdmissionsRequest, error) {
	limit, err := handlers.QueryInt(r, "limit", defaultListLimit)
	if err != nil || limit <= 0 || limit > maxListLimit {
		return nil, errInvalidLimit
	}
	offset, err := handlers.QueryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		return nil, errInvalidOffset
	}

	return &models.ListAdmissionsRequest{
		Status: handlers.QueryString(r, "status"),
		Search: handlers.QueryString(r, "search"),
		Limit:  uint64(limit),
		Offset: uint64(offset),
	}, nil
}
