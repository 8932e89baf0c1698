// Package draft holds the in-progress edit buffer for one patient record.
// A Draft owns a private copy of the record for the duration of a form
// session; nothing here talks to the remote collection.
package draft

import (
	"encoding/json"
	"fmt"
	"time"

	"patient-profile-service/internal/domain/entities"
	"patient-profile-service/internal/validation"

	"github.com/google/uuid"
)

// Draft is the mutable edit buffer plus the per-field error map. An error
// disappears the instant its field is touched and is not re-validated until
// the next Validate call.
type Draft struct {
	record entities.PatientRecord
	errors map[string]string
}

// New seeds a draft from an existing record.
func New(source entities.PatientRecord) *Draft {
	return &Draft{
		record: source.Clone(),
		errors: make(map[string]string),
	}
}

// NewBlank seeds a draft for a freshly created record.
func NewBlank(id string) *Draft {
	return New(entities.NewPatientRecord(id))
}

// SetField replaces one scalar field, addressed by its document name, and
// clears any validation error on it. The value goes through the record's own
// JSON contract, so a string field takes a string and a numeric field takes
// a number or blank.
func (d *Draft) SetField(name string, value any) error {
	if entities.KindOf(name) != entities.FieldScalar {
		return fmt.Errorf("field %q is not a settable scalar", name)
	}
	patch, err := json.Marshal(map[string]any{name: value})
	if err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	if err := json.Unmarshal(patch, &d.record); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	delete(d.errors, name)
	return nil
}

// ToggleTag adds the tag if absent and removes it if present. It never
// introduces a duplicate, so applying it twice restores the set.
func (d *Draft) ToggleTag(listField, tag string) error {
	set, ok := d.record.TagSet(listField)
	if !ok {
		return fmt.Errorf("field %q is not a tag set", listField)
	}
	for i, existing := range *set {
		if existing == tag {
			*set = append((*set)[:i], (*set)[i+1:]...)
			return nil
		}
	}
	*set = append(*set, tag)
	return nil
}

// AddMedication appends a blank medication with a fresh id and returns it.
// No validation happens here.
func (d *Draft) AddMedication() entities.Medication {
	med := entities.Medication{
		ID:         uuid.NewString(),
		Compliance: entities.ComplianceYes,
	}
	d.record.Medications = append(d.record.Medications, med)
	return med
}

// UpdateMedication replaces one field of the medication with the given id.
// Silently a no-op when the id is not found.
func (d *Draft) UpdateMedication(id, field, value string) {
	for i := range d.record.Medications {
		if d.record.Medications[i].ID != id {
			continue
		}
		switch field {
		case "name":
			d.record.Medications[i].Name = value
		case "dose":
			d.record.Medications[i].Dose = value
		case "route":
			d.record.Medications[i].Route = value
		case "frequency":
			d.record.Medications[i].Frequency = value
		case "purpose":
			d.record.Medications[i].Purpose = value
		case "compliance":
			d.record.Medications[i].Compliance = entities.Compliance(value)
		}
		return
	}
}

// RemoveMedication removes by id; no-op when the id is not found.
func (d *Draft) RemoveMedication(id string) {
	for i := range d.record.Medications {
		if d.record.Medications[i].ID == id {
			d.record.Medications = append(d.record.Medications[:i], d.record.Medications[i+1:]...)
			return
		}
	}
}

// AddProgressNote prepends a note so the newest entry leads the list. The
// note receives a fresh id, a display date and an epoch-ms timestamp; vitals
// and text come from the caller.
func (d *Draft) AddProgressNote(note entities.ProgressNote) entities.ProgressNote {
	now := time.Now()
	note.ID = uuid.NewString()
	note.Timestamp = now.UnixMilli()
	if note.Date == "" {
		note.Date = now.Format("Jan 2, 2006")
	}
	d.record.ProgressNotes = append([]entities.ProgressNote{note}, d.record.ProgressNotes...)
	return note
}

// UpdateProgressNote replaces the note with the same id in place, keeping
// its position; no-op when the id is not found.
func (d *Draft) UpdateProgressNote(id string, note entities.ProgressNote) {
	for i := range d.record.ProgressNotes {
		if d.record.ProgressNotes[i].ID == id {
			note.ID = id
			d.record.ProgressNotes[i] = note
			return
		}
	}
}

// RemoveProgressNote removes by id; no-op when the id is not found.
func (d *Draft) RemoveProgressNote(id string) {
	for i := range d.record.ProgressNotes {
		if d.record.ProgressNotes[i].ID == id {
			d.record.ProgressNotes = append(d.record.ProgressNotes[:i], d.record.ProgressNotes[i+1:]...)
			return
		}
	}
}

// Reset replaces the entire draft with a new source record, used when the
// selected record changes underneath an open form. All errors are cleared.
func (d *Draft) Reset(source entities.PatientRecord) {
	d.record = source.Clone()
	d.errors = make(map[string]string)
}

// Validate runs the validation gate over the current buffer and stores the
// resulting field errors on the draft.
func (d *Draft) Validate() validation.Result {
	res := validation.Validate(d.record)
	d.errors = make(map[string]string, len(res.Errors))
	for k, v := range res.Errors {
		d.errors[k] = v
	}
	return res
}

// Record returns a deep copy of the current buffer.
func (d *Draft) Record() entities.PatientRecord {
	return d.record.Clone()
}

// SetErrors replaces the field-error map, for callers that surface errors
// produced outside the local gate.
func (d *Draft) SetErrors(errs map[string]string) {
	d.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		d.errors[k] = v
	}
}

// Errors returns the current field-error map (a copy).
func (d *Draft) Errors() map[string]string {
	out := make(map[string]string, len(d.errors))
	for k, v := range d.errors {
		out[k] = v
	}
	return out
}
