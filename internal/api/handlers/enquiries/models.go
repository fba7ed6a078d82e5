package enquiries

import (
	"net/http"

	"github.com/m04kA/SMC-AdmissionsService/internal/api/handlers"
	"github.com/m04kA/SMC-AdmissionsService/internal/service/enquiries/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// SubmitEnquiryRequest HTTP request model
// Fields содержит ответы на дополнительные вопросы шаблона enquiry
type SubmitEnquiryRequest struct {
	ParentName  string                 `json:"parentName" validate:"required,max=200"`
	StudentName string                 `json:"studentName" validate:"required,max=200"`
	Mobile      string                 `json:"mobile" validate:"required,max=20"`
	Email       string                 `json:"email" validate:"required,email"`
	Grade       string                 `json:"grade" validate:"required,max=50"`
	Fields      map[string]interface{} `json:"fields"`
}

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SubmitEnquiryRequest) ToServiceRequest() *models.SubmitEnquiryRequest {
	return &models.SubmitEnquiryRequest{
		ParentName:  r.ParentName,
		StudentName: r.StudentName,
		Mobile:      r.Mobile,
		Email:       r.Email,
		Grade:       r.Grade,
		Fields:      r.Fields,
	}
}

// ToListRequest формирует фильтр из query параметров
// Query params: status, grade, search, from, to, limit, offset
func ToListRequest(r *http.Request) (*models.ListEnquiriesRequest, error) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}
	limit, err := handlers.QueryInt(r, "limit", defaultListLimit)
	if err != nil || limit <= 0 || limit > maxListLimit {
		return nil, errInvalidLimit
	}
	offset, err := handlers.QueryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		return nil, errInvalidOffset
	}

	return &models.ListEnquiriesRequest{
		Status: handlers.QueryString(r, "status"),
		Grade:  handlers.QueryString(r, "grade"),
		Search: handlers.QueryString(r, "search"),
		From:   from,
		To:     to,
		Limit:  uint64(limit),
		Offset: uint64(offset),
	}, nil
}
