// Package report turns a patient record into its export formats: the
// formatted PDF report, raw text/JSON snapshots and the directory roster.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"patient-profile-service/internal/domain/entities"

	"github.com/jung-kurt/gofpdf"
)

const pageMargin = 15.0

// PDF renders the full clinical report. On failure no partial output is
// returned.
func PDF(record entities.PatientRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pageMargin

	// Header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(usable, 10, "PUBLIC HEALTH NURSING RECORD", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(usable, 7,
		fmt.Sprintf("N4D ENCODING QUESTIONNAIRE - GENERATED: %s", time.Now().Format("1/2/2006 3:04 PM")),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	section := func(title string) {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.SetFillColor(245, 248, 251)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(usable, 9, strings.ToUpper(title), "B", 1, "L", true, 0, "")
		pdf.Ln(2)
	}
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(usable, 4, strings.ToUpper(label), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(30, 30, 30)
		pdf.MultiCell(usable, 5, value, "", "L", false)
		pdf.Ln(1.5)
	}

	section("Meta & Header")
	field("Patient ID", record.PatientID)
	field("Category", record.Category)
	field("Family Code", record.FamilyCode)
	field("Student In-Charge", record.StudentInCharge)

	section("Patient Profile")
	field("Initials", record.Initials)
	field("Age", record.Age.Display())
	field("Date of Birth", record.DOB)
	field("Gender", record.Gender)
	field("Civil Status", record.CivilStatus)
	field("Address", record.Address)
	field("Contact", record.ContactNumber)
	field("Emergency Contact", joinNonEmpty(" / ", record.EmergencyContact, record.EmergencyRelation, record.EmergencyNumber))

	section("Medical Information")
	field("Primary Diagnosis", record.PrimaryDiagnosis)
	field("Secondary Diagnosis", record.SecondaryDiagnosis)
	field("Chronic Diseases", joinTags(record.ChronicDiseases, record.OtherChronicDisease))
	field("Hospitalizations", record.Hospitalizations)
	field("Allergies", joinNonEmpty("; ",
		prefixNonEmpty("Drug: ", record.DrugAllergies),
		prefixNonEmpty("Food: ", record.FoodAllergies),
		prefixNonEmpty("Other: ", record.OtherAllergies)))
	field("Family History", joinTags(record.FamilyHistory, record.OtherFamilyHistory))

	section("Baseline Clinical Status")
	field("Subjective Symptoms", record.SubjectiveSymptoms)
	field("Objective Findings", record.ObjectiveFindings)

	// Vitals strip
	pdf.SetFillColor(250, 250, 250)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(30, 30, 30)
	vitals := fmt.Sprintf("BP: %s/%s   HR: %s bpm   RR: %s cpm   TEMP: %s C   WT: %s kg   HT: %s cm",
		record.BPSystolic.Display(), record.BPDiastolic.Display(), record.HR.Display(),
		record.RR.Display(), record.Temp.Display(), record.Weight.Display(), record.Height.Display())
	pdf.CellFormat(usable, 10, vitals, "", 1, "L", true, 0, "")
	pdf.Ln(2)

	if len(record.Medications) > 0 {
		section("Current Medications")
		for _, med := range record.Medications {
			field(med.Name, fmt.Sprintf("%s, %s, %s - %s (Compliance: %s)",
				med.Dose, med.Route, med.Frequency, med.Purpose, med.Compliance))
		}
	}
	field("Treatments", record.Treatments)
	field("Immunization Status", record.ImmunizationStatus)

	section("Social & Lifestyle")
	field("Living Situation", joinNonEmpty(" - ", record.LivingSituation, record.OtherLivingSituation))
	field("Education", record.Education)
	field("Source of Income", record.SourceOfIncome)
	field("Physical Activity", joinNonEmpty(" - ", record.PhysicalActivity, record.ActivityType, record.ActivityFreq))
	field("Tobacco Use", joinNonEmpty(" - ", record.TobaccoUse, record.TobaccoType, record.TobaccoFreq))
	field("Alcohol Use", joinNonEmpty(" - ", record.AlcoholUse, record.AlcoholType))
	field("Substance Use", joinNonEmpty(" - ", record.SubstanceUse, record.SubstanceFreq))
	field("Support System", record.SupportSystem)

	section("Plan of Care")
	field("Other Problems", record.OtherProblems)
	field("Short-Term Goals", record.ShortTermGoals)
	field("Nursing Interventions", record.NursingInterventions)

	if len(record.ReferredTo) > 0 || record.ReferralReason != "" {
		section("Clinical Referral")
		field("Referred To", joinTags(record.ReferredTo, record.OtherReferredTo))
		field("Reason", record.ReferralReason)
		field("Urgency", record.ReferralUrgency)
		field("Date", record.ReferralDate)
		field("Outcome", record.ReferralOutcome)
	}

	if len(record.ProgressNotes) > 0 {
		pdf.AddPage()
		section("Progress Notes")
		for _, note := range record.ProgressNotes {
			field(note.Date, fmt.Sprintf("BP %s/%s  HR %s  RR %s  TEMP %s  WT %s\n%s",
				note.BPSystolic.Display(), note.BPDiastolic.Display(), note.HR.Display(),
				note.RR.Display(), note.Temp.Display(), note.Weight.Display(), note.Notes))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func joinTags(tags []string, other string) string {
	all := append([]string(nil), tags...)
	if other != "" {
		all = append(all, other)
	}
	return strings.Join(all, ", ")
}

func prefixNonEmpty(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}
