package create_admission

import "github.com/m04kA/SMC-AdmissionsService/internal/domain"

// Request модель запроса на открытие дела по обращению
type Request struct {
	EnquiryID int64
	ActorID   int64
}

// copyFields копирует поля анкеты обращения и добавляет основные данные семьи
func copyFields(e *domain.Enquiry) domain.Fields {
	fields := make(domain.Fields, len(e.Fields)+4)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields["parentName"] = e.ParentName
	fields["studentName"] = e.StudentName
	fields["grade"] = e.Grade
	fields["email"] = e.Email
	return fields
}
