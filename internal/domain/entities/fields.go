package entities

import (
	"reflect"
	"strings"
)

// FieldKind classifies a record field by its document name, so the edit
// layer can route mutations without hard-coding the field list twice.
type FieldKind int

const (
	FieldUnknown FieldKind = iota
	FieldImmutable
	FieldScalar
	FieldTagSet
	FieldMedications
	FieldProgressNotes
)

var fieldKinds = buildFieldKinds()

func buildFieldKinds() map[string]FieldKind {
	kinds := make(map[string]FieldKind)
	t := reflect.TypeOf(PatientRecord{})
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name := strings.Split(tag, ",")[0]
		if name == "" || name == "-" {
			continue
		}
		switch name {
		case "id", "lastUpdated":
			kinds[name] = FieldImmutable
		case "chronicDiseases", "allergies", "familyHistory", "referredTo":
			kinds[name] = FieldTagSet
		case "medications":
			kinds[name] = FieldMedications
		case "progressNotes":
			kinds[name] = FieldProgressNotes
		default:
			kinds[name] = FieldScalar
		}
	}
	return kinds
}

// KindOf reports how the named document field may be mutated.
func KindOf(name string) FieldKind {
	return fieldKinds[name]
}

// TagSet returns a pointer to the named tag-set field, or false when the
// name is not one of the four tag fields.
func (r *PatientRecord) TagSet(name string) (*[]string, bool) {
	switch name {
	case "chronicDiseases":
		return &r.ChronicDiseases, true
	case "allergies":
		return &r.Allergies, true
	case "familyHistory":
		return &r.FamilyHistory, true
	case "referredTo":
		return &r.ReferredTo, true
	}
	return nil, false
}
