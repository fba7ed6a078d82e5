package domain

import "time"

// AdmissionStatus статус дела о поступлении
type AdmissionStatus string

const (
	AdmissionStatusDraft      AdmissionStatus = "draft"
	AdmissionStatusSubmitted  AdmissionStatus = "submitted"
	AdmissionStatusApproved   AdmissionStatus = "approved"
	AdmissionStatusRejected   AdmissionStatus = "rejected"
	AdmissionStatusWaitlisted AdmissionStatus = "waitlisted"
)

// AdmissionStatuses допустимые статусы
var AdmissionStatuses = []AdmissionStatus{
	AdmissionStatusDraft,
	AdmissionStatusSubmitted,
	AdmissionStatusApproved,
	AdmissionStatusRejected,
	AdmissionStatusWaitlisted,
}

// ReviewDecisions решения, которые может принять директор
var ReviewDecisions = []AdmissionStatus{
	AdmissionStatusApproved,
	AdmissionStatusRejected,
	AdmissionStatusWaitlisted,
}

// Admission дело о поступлении, открытое по обращению
type Admission struct {
	ID        int64
	EnquiryID int64
	TokenID   string
	Status    AdmissionStatus
	Fields    Fields

	Documents []AdmissionDocument

	PrincipalRemarks *string
	ReviewedBy       *int64
	ReviewedAt       *time.Time
	SubmittedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdmissionDocument загруженный документ (файл хранится вне сервиса)
type AdmissionDocument struct {
	ID          int64
	AdmissionID int64
	Name        string
	URL         string
	UploadedAt  time.Time
}

// CanBeEdited сотрудники могут редактировать дело до решения директора
func (a *Admission) CanBeEdited() bool {
	return a.Status == AdmissionStatusDraft || a.Status == AdmissionStatusSubmitted
}

// CanBeReviewed решение принимается только по поданному делу
func (a *Admission) CanBeReviewed() bool {
	return a.Status == AdmissionStatusSubmitted
}

// IsDecided возвращает true, если директор уже принял решение
func (a *Admission) IsDecided() bool {
	return a.Status == AdmissionStatusApproved ||
		a.Status == AdmissionStatusRejected ||
		a.Status == AdmissionStatusWaitlisted
}

// MissingDocuments возвращает обязательные документы, которые еще не загружены
func (a *Admission) MissingDocuments(required []string) []string {
	uploaded := make(map[string]struct{}, len(a.Documents))
	for _, d := range a.Documents {
		uploaded[d.Name] = struct{}{}
	}

	missing := make([]string, 0)
	for _, name := range required {
		if _, ok := uploaded[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsValid проверяет, что статус из допустимого списка
func (s AdmissionStatus) IsValid() bool {
	for _, v := range AdmissionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsReviewDecision проверяет, что статус является решением директора
func (s AdmissionStatus) IsReviewDecision() bool {
	for _, v := range ReviewDecisions {
		if s == v {
			return true
		}
	}
	return false
}

// AdmissionFilter фильтр списка дел
type AdmissionFilter struct {
	Status *AdmissionStatus
	Search *string
	Limit  uint64
	Offset uint64
}
