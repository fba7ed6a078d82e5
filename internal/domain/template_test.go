package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormTemplate_Validate(t *testing.T) {
	tpl := FormTemplate{Kind: TemplateEnquiry, Fields: []TemplateField{
		{Name: "dateOfBirth", Type: FieldDate, Required: true},
		{Name: "source", Type: FieldSelect, Options: []string{"website", "friend"}},
		{Name: "notes", Type: FieldText},
		{Name: "photo", Type: FieldFile, Required: true},
	}}

	errs := tpl.Validate(Fields{"source": "tv"})
	assert.ElementsMatch(t, []FieldError{
		{Field: "dateOfBirth", Message: "is required"},
		{Field: "source", Message: "is not one of the allowed options"},
	}, errs)

	errs = tpl.Validate(Fields{"dateOfBirth": "2019-02-30"})
	assert.Equal(t, []FieldError{{Field: "dateOfBirth", Message: "must be a date in YYYY-MM-DD format"}}, errs)

	assert.Empty(t, tpl.Validate(Fields{"dateOfBirth": "2019-02-01", "source": "friend"}))
}

func TestFormTemplate_ValidateDefinition(t *testing.T) {
	ok := DefaultTemplate(TemplateAdmission)
	assert.NoError(t, ok.ValidateDefinition())

	dup := FormTemplate{Fields: []TemplateField{
		{Name: "a", Type: FieldText},
		{Name: "a", Type: FieldText},
	}}
	assert.Error(t, dup.ValidateDefinition())

	badType := FormTemplate{Fields: []TemplateField{{Name: "a", Type: "color"}}}
	assert.Error(t, badType.ValidateDefinition())

	noOptions := FormTemplate{Fields: []TemplateField{{Name: "a", Type: FieldSelect}}}
	assert.Error(t, noOptions.ValidateDefinition())
}

func TestAdmission_MissingDocuments(t *testing.T) {
	a := Admission{Documents: []AdmissionDocument{{Name: "photo"}}}
	docs := DefaultTemplate(TemplateDocuments)

	assert.Equal(t, []string{"birthCertificate"}, a.MissingDocuments(docs.RequiredNames()))

	a.Documents = append(a.Documents, AdmissionDocument{Name: "birthCertificate"})
	assert.Empty(t, a.MissingDocuments(docs.RequiredNames()))
}

func TestFields_ScanAndMerge(t *testing.T) {
	var f Fields
	assert.NoError(t, f.Scan([]byte(`{"fatherName":"Ravi","age":6}`)))
	assert.Equal(t, "Ravi", f.String("fatherName"))
	assert.Equal(t, "6", f.String("age"))
	assert.Equal(t, "", f.String("missing"))

	merged := f.Merge(Fields{"fatherName": "Ravi K"})
	assert.Equal(t, "Ravi K", merged.String("fatherName"))
	assert.Equal(t, "Ravi", f.String("fatherName"))
}
