// Package validation gates promotion of a draft to a remote write.
package validation

import "patient-profile-service/internal/domain/entities"

// RequiredLabel is the error attached to every missing required field.
const RequiredLabel = "Required"

// Form sections, in the fixed priority order used for the reveal hint.
const (
	SectionMeta    = "meta"
	SectionProfile = "profile"
	SectionMedical = "medical"
)

// Result is the outcome of validating a record. Errors maps document field
// names to error labels; an empty map signifies valid. Section names the
// earliest group containing an error so the caller can auto-expand it, and
// is empty when valid.
type Result struct {
	Errors  map[string]string
	Section string
}

// Valid reports whether the record passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks the five required fields: patient identifier, category,
// initials, age and primary diagnosis. It is deterministic and never
// mutates its input.
func Validate(record entities.PatientRecord) Result {
	errs := make(map[string]string)
	if record.PatientID == "" {
		errs["patientId"] = RequiredLabel
	}
	if record.Category == "" {
		errs["category"] = RequiredLabel
	}
	if record.Initials == "" {
		errs["initials"] = RequiredLabel
	}
	if !record.Age.Set || record.Age.Value == 0 {
		errs["age"] = RequiredLabel
	}
	if record.PrimaryDiagnosis == "" {
		errs["primaryDiagnosis"] = RequiredLabel
	}

	res := Result{Errors: errs}
	switch {
	case len(errs) == 0:
	case errs["patientId"] != "" || errs["category"] != "":
		res.Section = SectionMeta
	case errs["initials"] != "" || errs["age"] != "":
		res.Section = SectionProfile
	default:
		res.Section = SectionMedical
	}
	return res
}
