package models

import (
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// Request модели

// SubmitEnquiryRequest анкета обращения с сайта
type SubmitEnquiryRequest struct {
	ParentName  string
	StudentName string
	Mobile      string
	Email       string
	Grade       string
	Fields      map[string]interface{}
}

// ListEnquiriesRequest фильтр списка обращений
type ListEnquiriesRequest struct {
	Status *string
	Grade  *string
	Search *string
	From   *time.Time
	To     *time.Time
	Limit  uint64
	Offset uint64
}

// UpdateStatusRequest запрос на смену статуса обращения
type UpdateStatusRequest struct {
	ActorID int64
	Status  string
}

// Response модели

// EnquiryResponse обращение
type EnquiryResponse struct {
	ID          int64                  `json:"id"`
	TokenID     string                 `json:"tokenId"`
	ParentName  string                 `json:"parentName"`
	StudentName string                 `json:"studentName"`
	Mobile      string                 `json:"mobile"`
	Email       string                 `json:"email"`
	Grade       string                 `json:"grade"`
	Status      string                 `json:"status"`
	Fields      map[string]interface{} `json:"fields"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// EnquiryListResponse ответ со списком обращений
type EnquiryListResponse struct {
	Enquiries []EnquiryResponse `json:"enquiries"`
}

// FromDomainEnquiry конвертирует domain модель в DTO
func FromDomainEnquiry(e *domain.Enquiry) *EnquiryResponse {
	if e == nil {
		return nil
	}

	fields := map[string]interface{}(e.Fields)
	if fields == nil {
		fields = map[string]interface{}{}
	}

	return &EnquiryResponse{
		ID:          e.ID,
		TokenID:     e.TokenID,
		ParentName:  e.ParentName,
		StudentName: e.StudentName,
		Mobile:      e.Mobile,
		Email:       e.Email,
		Grade:       e.Grade,
		Status:      string(e.Status),
		Fields:      fields,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// FromDomainEnquiryList конвертирует список обращений
func FromDomainEnquiryList(list []*domain.Enquiry) *EnquiryListResponse {
	resp := &EnquiryListResponse{Enquiries: make([]EnquiryResponse, 0, len(list))}
	for _, e := range list {
		resp.Enquiries = append(resp.Enquiries, *FromDomainEnquiry(e))
	}
	return resp
}
