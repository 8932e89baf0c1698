package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"patient-profile-service/internal/domain/entities"
)

// JSON is the raw snapshot export: the record document, pretty-printed.
func JSON(record entities.PatientRecord) ([]byte, error) {
	return json.MarshalIndent(record, "", "  ")
}

// Text is the plain-text snapshot export used for quick sharing.
func Text(record entities.PatientRecord) string {
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	b.WriteString("PUBLIC HEALTH NURSING RECORD\n")
	b.WriteString("============================\n")
	line("Patient ID", record.PatientID)
	line("Category", record.Category)
	line("Initials", record.Initials)
	line("Age", record.Age.Display())
	line("Gender", record.Gender)
	line("Primary Diagnosis", record.PrimaryDiagnosis)
	line("Secondary Diagnosis", record.SecondaryDiagnosis)
	line("Chronic Diseases", joinTags(record.ChronicDiseases, record.OtherChronicDisease))
	line("Family History", joinTags(record.FamilyHistory, record.OtherFamilyHistory))
	fmt.Fprintf(&b, "Vitals: BP %s/%s  HR %s  RR %s  TEMP %s  WT %s\n",
		record.BPSystolic.Display(), record.BPDiastolic.Display(), record.HR.Display(),
		record.RR.Display(), record.Temp.Display(), record.Weight.Display())

	if len(record.Medications) > 0 {
		b.WriteString("Medications:\n")
		for _, med := range record.Medications {
			fmt.Fprintf(&b, "  - %s %s %s %s (%s, compliance: %s)\n",
				med.Name, med.Dose, med.Route, med.Frequency, med.Purpose, med.Compliance)
		}
	}
	line("Referred To", joinTags(record.ReferredTo, record.OtherReferredTo))
	line("Interventions", record.NursingInterventions)

	if len(record.ProgressNotes) > 0 {
		b.WriteString("Progress Notes:\n")
		for _, note := range record.ProgressNotes {
			fmt.Fprintf(&b, "  [%s] BP %s/%s HR %s - %s\n",
				note.Date, note.BPSystolic.Display(), note.BPDiastolic.Display(),
				note.HR.Display(), note.Notes)
		}
	}
	if record.LastUpdated > 0 {
		line("Last Updated", time.UnixMilli(record.LastUpdated).Format("Jan 2, 2006 3:04 PM"))
	}
	return b.String()
}
