package domain

import "time"

// EnquiryStatus статус обращения
type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "new"
	EnquiryStatusContacted EnquiryStatus = "contacted"
	EnquiryStatusConverted EnquiryStatus = "converted"
	EnquiryStatusClosed    EnquiryStatus = "closed"
)

// EnquiryStatuses допустимые статусы обращения
var EnquiryStatuses = []EnquiryStatus{
	EnquiryStatusNew,
	EnquiryStatusContacted,
	EnquiryStatusConverted,
	EnquiryStatusClosed,
}

// Enquiry первичное обращение родителя (до поступления)
type Enquiry struct {
	ID          int64
	TokenID     string // ENQ-YYYYMMDD-XXXXXX
	ParentName  string
	StudentName string
	Mobile      string
	Email       string
	Grade       string // класс, в который поступает ребенок
	Status      EnquiryStatus
	Fields      Fields // поля из шаблона анкеты

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeConverted возвращает true, если по обращению можно открыть дело о поступлении
func (e *Enquiry) CanBeConverted() bool {
	return e.Status == EnquiryStatusNew || e.Status == EnquiryStatusContacted
}

// IsValid проверяет, что статус из допустимого списка
func (s EnquiryStatus) IsValid() bool {
	for _, v := range EnquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// EnquiryFilter фильтр списка обращений
type EnquiryFilter struct {
	Status *EnquiryStatus
	Grade  *string
	Search *string // по имени, телефону или токену
	From   *time.Time
	To     *time.Time
	Limit  uint64
	Offset uint64
}
