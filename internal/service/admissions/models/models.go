package models

import (
	"time"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
)

// Request модели

// ListAdmissionsRequest фильтр списка дел
type ListAdmissionsRequest struct {
	Status *string
	Search *string
	Limit  uint64
	Offset uint64
}

// UpdateAdmissionRequest изменение анкеты дела
// Fields дополняют сохраненные поля; Status может быть draft или submitted
type UpdateAdmissionRequest struct {
	ActorID int64
	Fields  map[string]interface{}
	Status  *string
}

// AddDocumentRequest прикрепление документа
type AddDocumentRequest struct {
	ActorID int64
	Name    string
	URL     string
}

// ReviewRequest решение директора
type ReviewRequest struct {
	ActorID   int64
	ActorRole domain.AdminRole
	Decision  string
	Remarks   *string
}

// Response модели

// DocumentResponse документ дела
type DocumentResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// AdmissionResponse дело о поступлении
type AdmissionResponse struct {
	ID               int64                  `json:"id"`
	EnquiryID        int64                  `json:"enquiryId"`
	TokenID          string                 `json:"tokenId"`
	Status           string                 `json:"status"`
	Fields           map[string]interface{} `json:"fields"`
	Documents        []DocumentResponse     `json:"documents"`
	MissingDocuments []string               `json:"missingDocuments,omitempty"`
	PrincipalRemarks *string                `json:"principalRemarks,omitempty"`
	ReviewedBy       *int64                 `json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time             `json:"reviewedAt,omitempty"`
	SubmittedAt      *time.Time             `json:"submittedAt,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// AdmissionListResponse ответ со списком дел
type AdmissionListResponse struct {
	Admissions []AdmissionResponse `json:"admissions"`
}

// FromDomainDocument конвертирует документ
func FromDomainDocument(d domain.AdmissionDocument) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID,
		Name:       d.Name,
		URL:        d.URL,
		UploadedAt: d.UploadedAt,
	}
}

// FromDomainAdmission конвертирует domain модель в DTO
func FromDomainAdmission(a *domain.Admission) *AdmissionResponse {
	if a == nil {
		return nil
	}

	fields := map[string]interface{}(a.Fields)
	if fields == nil {
		fields = map[string]interface{}{}
	}

	resp := &AdmissionResponse{
		ID:               a.ID,
		EnquiryID:        a.EnquiryID,
		TokenID:          a.TokenID,
		Status:           string(a.Status),
		Fields:           fields,
		Documents:        make([]DocumentResponse, 0, len(a.Documents)),
		PrincipalRemarks: a.PrincipalRemarks,
		ReviewedBy:       a.ReviewedBy,
		ReviewedAt:       a.ReviewedAt,
		SubmittedAt:      a.SubmittedAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
	for _, d := range a.Documents {
		resp.Documents = append(resp.Documents, FromDomainDocument(d))
	}
	return resp
}

// FromDomainAdmissionList конвертирует список дел (без документов)
func FromDomainAdmissionList(list []*domain.Admission) *AdmissionListResponse {
	resp := &AdmissionListResponse{Admissions: make([]AdmissionResponse, 0, len(list))}
	for _, a := range list {
		resp.Admissions = append(resp.Admissions, *FromDomainAdmission(a))
	}
	return resp
}
