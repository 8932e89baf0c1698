package draft

import (
	"testing"

	"patient-profile-service/internal/domain/entities"
	"patient-profile-service/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFieldScalars(t *testing.T) {
	d := NewBlank("PAT-1")

	require.NoError(t, d.SetField("patientId", "2024-N4D-001"))
	require.NoError(t, d.SetField("age", 30))
	require.NoError(t, d.SetField("temp", ""))

	rec := d.Record()
	assert.Equal(t, "2024-N4D-001", rec.PatientID)
	assert.True(t, rec.Age.Set)
	assert.Equal(t, 30.0, rec.Age.Value)
	assert.False(t, rec.Temp.Set)
}

func TestSetFieldRejectsNonScalars(t *testing.T) {
	d := NewBlank("PAT-1")
	assert.Error(t, d.SetField("id", "other"))
	assert.Error(t, d.SetField("lastUpdated", 42))
	assert.Error(t, d.SetField("medications", nil))
	assert.Error(t, d.SetField("noSuchField", "x"))
}

// Touching a field clears its error immediately; the field is not
// re-validated until the next Validate call.
func TestEditClearsError(t *testing.T) {
	d := NewBlank("PAT-1")
	res := d.Validate()
	require.Equal(t, validation.RequiredLabel, d.Errors()["initials"])
	require.False(t, res.Valid())

	require.NoError(t, d.SetField("initials", ""))
	_, stillThere := d.Errors()["initials"]
	assert.False(t, stillThere, "error must clear on touch even if the value is still blank")
	assert.Contains(t, d.Errors(), "age", "untouched errors remain")
}

func TestToggleTagIsItsOwnInverse(t *testing.T) {
	d := NewBlank("PAT-1")

	require.NoError(t, d.ToggleTag("chronicDiseases", "Hypertension"))
	assert.Equal(t, []string{"Hypertension"}, d.Record().ChronicDiseases)

	require.NoError(t, d.ToggleTag("chronicDiseases", "Hypertension"))
	assert.Empty(t, d.Record().ChronicDiseases)

	// Never a duplicate.
	require.NoError(t, d.ToggleTag("referredTo", "RHU/CHO"))
	require.NoError(t, d.ToggleTag("referredTo", "Hospital/ER"))
	require.NoError(t, d.ToggleTag("referredTo", "RHU/CHO"))
	assert.Equal(t, []string{"Hospital/ER"}, d.Record().ReferredTo)

	assert.Error(t, d.ToggleTag("patientId", "x"))
}

func TestMedicationAddRemoveRoundTrip(t *testing.T) {
	d := NewBlank("PAT-1")
	d.UpdateMedication("nope", "name", "x") // no-op on empty list
	before := d.Record().Medications

	med := d.AddMedication()
	require.Len(t, d.Record().Medications, 1)
	assert.NotEmpty(t, med.ID)
	assert.Equal(t, entities.ComplianceYes, med.Compliance)

	d.RemoveMedication(med.ID)
	assert.Equal(t, before, d.Record().Medications)

	d.RemoveMedication(med.ID) // no-op when absent
	assert.Empty(t, d.Record().Medications)
}

func TestUpdateMedicationByID(t *testing.T) {
	d := NewBlank("PAT-1")
	med := d.AddMedication()
	other := d.AddMedication()

	d.UpdateMedication(med.ID, "name", "Metformin")
	d.UpdateMedication(med.ID, "compliance", "No")
	d.UpdateMedication("missing-id", "name", "ignored")

	meds := d.Record().Medications
	assert.Equal(t, "Metformin", meds[0].Name)
	assert.Equal(t, entities.ComplianceNo, meds[0].Compliance)
	assert.Equal(t, other.ID, meds[1].ID)
	assert.Empty(t, meds[1].Name)
}

func TestProgressNotesPrependAndEdit(t *testing.T) {
	d := NewBlank("PAT-1")
	first := d.AddProgressNote(entities.ProgressNote{Notes: "initial visit"})
	second := d.AddProgressNote(entities.ProgressNote{Notes: "follow-up"})

	notes := d.Record().ProgressNotes
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID, "newest note leads the list")
	assert.NotEmpty(t, notes[0].Date)
	assert.NotZero(t, notes[0].Timestamp)

	d.UpdateProgressNote(first.ID, entities.ProgressNote{Notes: "amended"})
	notes = d.Record().ProgressNotes
	assert.Equal(t, "amended", notes[1].Notes)
	assert.Equal(t, first.ID, notes[1].ID, "id survives an edit")

	d.RemoveProgressNote(second.ID)
	assert.Len(t, d.Record().ProgressNotes, 1)
	d.RemoveProgressNote("missing") // no-op
}

func TestResetReplacesBufferAndClearsErrors(t *testing.T) {
	d := NewBlank("PAT-1")
	d.Validate()
	require.NotEmpty(t, d.Errors())

	source := entities.NewPatientRecord("PAT-2")
	source.Initials = "JD"
	d.Reset(source)

	assert.Equal(t, "PAT-2", d.Record().ID)
	assert.Equal(t, "JD", d.Record().Initials)
	assert.Empty(t, d.Errors())
}

func TestDraftOwnsItsCopy(t *testing.T) {
	source := entities.NewPatientRecord("PAT-1")
	source.ChronicDiseases = []string{"TB"}
	d := New(source)

	require.NoError(t, d.ToggleTag("chronicDiseases", "Cancer"))
	assert.Equal(t, []string{"TB"}, source.ChronicDiseases, "draft never mutates its seed")
}

func TestSetErrorsReplacesMapAndStaysDetached(t *testing.T) {
	d := NewBlank("PAT-1")
	errs := map[string]string{"initials": "Required"}
	d.SetErrors(errs)

	errs["age"] = "Required"
	assert.Equal(t, map[string]string{"initials": "Required"}, d.Errors())
}
