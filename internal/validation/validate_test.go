package validation

import (
	"testing"

	"patient-profile-service/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() entities.PatientRecord {
	rec := entities.NewPatientRecord("PAT-1")
	rec.PatientID = "2024-N4D-001"
	rec.Category = "Adult"
	rec.Initials = "JD"
	rec.Age = entities.Num(30)
	rec.PrimaryDiagnosis = "Hypertension"
	return rec
}

// Empty errors iff all five required fields are present.
func TestValidateRequiredFields(t *testing.T) {
	res := Validate(validRecord())
	assert.True(t, res.Valid())
	assert.Empty(t, res.Section)

	cases := []struct {
		name    string
		mutate  func(*entities.PatientRecord)
		field   string
		section string
	}{
		{"missing patientId", func(r *entities.PatientRecord) { r.PatientID = "" }, "patientId", SectionMeta},
		{"missing category", func(r *entities.PatientRecord) { r.Category = "" }, "category", SectionMeta},
		{"missing initials", func(r *entities.PatientRecord) { r.Initials = "" }, "initials", SectionProfile},
		{"missing age", func(r *entities.PatientRecord) { r.Age = entities.OptionalNumber{} }, "age", SectionProfile},
		{"zero age", func(r *entities.PatientRecord) { r.Age = entities.Num(0) }, "age", SectionProfile},
		{"missing diagnosis", func(r *entities.PatientRecord) { r.PrimaryDiagnosis = "" }, "primaryDiagnosis", SectionMedical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(&rec)
			res := Validate(rec)
			require.False(t, res.Valid())
			assert.Equal(t, map[string]string{tc.field: RequiredLabel}, res.Errors)
			assert.Equal(t, tc.section, res.Section)
		})
	}
}

// The hinted section is the earliest group containing an error.
func TestSectionPriority(t *testing.T) {
	rec := validRecord()
	rec.Initials = ""
	rec.PrimaryDiagnosis = ""
	assert.Equal(t, SectionProfile, Validate(rec).Section)

	rec.Category = ""
	assert.Equal(t, SectionMeta, Validate(rec).Section)
}

func TestValidateIsPureAndDeterministic(t *testing.T) {
	rec := entities.NewPatientRecord("PAT-1")
	first := Validate(rec)
	second := Validate(rec)
	assert.Equal(t, first.Errors, second.Errors)
	assert.Equal(t, first.Section, second.Section)

	// The input is untouched.
	assert.Equal(t, entities.NewPatientRecord("PAT-1"), rec)
}
