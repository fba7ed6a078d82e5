package domain

import (
	"fmt"
	"strings"
	"time"
)

// TemplateKind тип шаблона формы
type TemplateKind string

const (
	TemplateEnquiry   TemplateKind = "enquiry"
	TemplateAdmission TemplateKind = "admission"
	TemplateDocuments TemplateKind = "documents"
)

// TemplateKinds все типы шаблонов
var TemplateKinds = []TemplateKind{TemplateEnquiry, TemplateAdmission, TemplateDocuments}

// FieldType тип поля формы
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldSelect FieldType = "select"
	FieldEmail  FieldType = "email"
	FieldPhone  FieldType = "phone"
	FieldFile   FieldType = "file"
)

var fieldTypes = map[FieldType]struct{}{
	FieldText: {}, FieldNumber: {}, FieldDate: {}, FieldSelect: {},
	FieldEmail: {}, FieldPhone: {}, FieldFile: {},
}

// TemplateField описание одного поля формы
type TemplateField struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// FormTemplate редактируемый администратором шаблон формы
// Шаблон documents описывает список документов, которые нужно приложить к делу
type FormTemplate struct {
	Kind      TemplateKind
	Fields    []TemplateField
	UpdatedBy *int64
	UpdatedAt time.Time
}

// IsValid проверяет тип шаблона
func (k TemplateKind) IsValid() bool {
	for _, v := range TemplateKinds {
		if k == v {
			return true
		}
	}
	return false
}

// RequiredNames имена обязательных полей
func (t *FormTemplate) RequiredNames() []string {
	names := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// ValidateDefinition проверяет корректность самого шаблона
func (t *FormTemplate) ValidateDefinition() error {
	if len(t.Fields) > MaxTemplateFields {
		return fmt.Errorf("too many fields: %d > %d", len(t.Fields), MaxTemplateFields)
	}

	seen := make(map[string]struct{}, len(t.Fields))
	for i, f := range t.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("field #%d: name is required", i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("field %q: duplicate name", name)
		}
		seen[name] = struct{}{}

		if _, ok := fieldTypes[f.Type]; !ok {
			return fmt.Errorf("field %q: unknown type %q", name, f.Type)
		}
		if f.Type == FieldSelect && len(f.Options) == 0 {
			return fmt.Errorf("field %q: select requires options", name)
		}
	}
	return nil
}

// FieldError ошибка значения конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors ошибки проверки формы, возвращаемые как error
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Validate проверяет значения формы по шаблону
// Возвращает список ошибок; пустой список означает, что форма корректна
func (t *FormTemplate) Validate(values Fields) []FieldError {
	errs := make([]FieldError, 0)

	for _, f := range t.Fields {
		if f.Type == FieldFile {
			// файлы прикладываются отдельно как документы дела
			continue
		}

		value := strings.TrimSpace(values.String(f.Name))
		if value == "" {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: "is required"})
			}
			continue
		}

		if f.Type == FieldSelect && !contains(f.Options, value) {
			errs = append(errs, FieldError{Field: f.Name, Message: "is not one of the allowed options"})
		}
		if f.Type == FieldDate {
			if _, err := time.Parse(DateFormat, value); err != nil {
				errs = append(errs, FieldError{Field: f.Name, Message: "must be a date in YYYY-MM-DD format"})
			}
		}
	}

	return errs
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultTemplate шаблон, используемый пока администратор не сохранил свой
func DefaultTemplate(kind TemplateKind) FormTemplate {
	switch kind {
	case TemplateEnquiry:
		return FormTemplate{Kind: kind, Fields: []TemplateField{
			{Name: "dateOfBirth", Label: "Date of birth", Type: FieldDate, Required: true},
			{Name: "currentSchool", Label: "Current school", Type: FieldText},
			{Name: "source", Label: "How did you hear about us", Type: FieldSelect,
				Options: []string{"website", "friend", "newspaper", "social", "other"}},
		}}
	case TemplateAdmission:
		return FormTemplate{Kind: kind, Fields: []TemplateField{
			{Name: "fatherName", Label: "Father's name", Type: FieldText, Required: true},
			{Name: "motherName", Label: "Mother's name", Type: FieldText, Required: true},
			{Name: "address", Label: "Residential address", Type: FieldText, Required: true},
			{Name: "previousGrade", Label: "Previous grade", Type: FieldText},
		}}
	case TemplateDocuments:
		return FormTemplate{Kind: kind, Fields: []TemplateField{
			{Name: "birthCertificate", Label: "Birth certificate", Type: FieldFile, Required: true},
			{Name: "photo", Label: "Passport photo", Type: FieldFile, Required: true},
			{Name: "reportCard", Label: "Last report card", Type: FieldFile},
		}}
	default:
		return FormTemplate{Kind: kind}
	}
}
