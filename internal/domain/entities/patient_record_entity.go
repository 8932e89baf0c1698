package entities

// PatientRecord is the root document of the patient collection. Field names
// follow the camelCase schema of the shared remote documents, so records
// written by older clients unmarshal cleanly; absent fields simply keep
// their zero value and render as placeholders.
type PatientRecord struct {
	ID          string `json:"id"`
	LastUpdated int64  `json:"lastUpdated"` // epoch ms, stamped by the writer on every commit

	// Header / meta
	PatientID       string `json:"patientId"`
	FamilyCode      string `json:"familyCode"`
	Category        string `json:"category"`
	StudentInCharge string `json:"studentInCharge"`

	// Profile
	Initials          string         `json:"initials"`
	Age               OptionalNumber `json:"age"`
	DOB               string         `json:"dob"`
	Gender            string         `json:"gender"`
	CivilStatus       string         `json:"civilStatus"`
	Address           string         `json:"address"`
	ContactNumber     string         `json:"contactNumber"`
	ContactMethod     string         `json:"contactMethod"`
	EmergencyContact  string         `json:"emergencyContact"`
	EmergencyRelation string         `json:"emergencyRelation"`
	EmergencyNumber   string         `json:"emergencyNumber"`

	// Medical info
	PrimaryDiagnosis    string   `json:"primaryDiagnosis"`
	SecondaryDiagnosis  string   `json:"secondaryDiagnosis"`
	ChronicDiseases     []string `json:"chronicDiseases"`
	OtherChronicDisease string   `json:"otherChronicDisease"`
	Hospitalizations    string   `json:"hospitalizations"`
	Allergies           []string `json:"allergies"`
	DrugAllergies       string   `json:"drugAllergies"`
	FoodAllergies       string   `json:"foodAllergies"`
	OtherAllergies      string   `json:"otherAllergies"`
	FamilyHistory       []string `json:"familyHistory"`
	OtherFamilyHistory  string   `json:"otherFamilyHistory"`

	// Clinical status (baseline)
	SubjectiveSymptoms string         `json:"subjectiveSymptoms"`
	ObjectiveFindings  string         `json:"objectiveFindings"`
	BPSystolic         OptionalNumber `json:"bpSystolic"`
	BPDiastolic        OptionalNumber `json:"bpDiastolic"`
	HR                 OptionalNumber `json:"hr"`
	RR                 OptionalNumber `json:"rr"`
	Temp               OptionalNumber `json:"temp"`
	Weight             OptionalNumber `json:"weight"`
	Height             OptionalNumber `json:"height"`
	Medications        []Medication   `json:"medications"`
	Treatments         string         `json:"treatments"`
	ImmunizationStatus string         `json:"immunizationStatus"`

	// Social & lifestyle
	LivingSituation      string `json:"livingSituation"`
	OtherLivingSituation string `json:"otherLivingSituation"`
	Education            string `json:"education"`
	SourceOfIncome       string `json:"sourceOfIncome"`
	PhysicalActivity     string `json:"physicalActivity"`
	ActivityType         string `json:"activityType"`
	ActivityFreq         string `json:"activityFreq"`
	TobaccoUse           string `json:"tobaccoUse"`
	TobaccoType          string `json:"tobaccoType"`
	TobaccoFreq          string `json:"tobaccoFreq"`
	TobaccoInside        string `json:"tobaccoInside"`
	AlcoholUse           string `json:"alcoholUse"`
	AlcoholType          string `json:"alcoholType"`
	SubstanceUse         string `json:"substanceUse"`
	SubstanceFreq        string `json:"substanceFreq"`

	// Other social
	DifficultyMedicines  string `json:"difficultyMedicines"`
	SupportSystem        string `json:"supportSystem"`
	IllnessAffectsWork   string `json:"illnessAffectsWork"`
	IllnessEffectDetails string `json:"illnessEffectDetails"`

	// Plan
	OtherProblems        string `json:"otherProblems"`
	ShortTermGoals       string `json:"shortTermGoals"`
	NursingInterventions string `json:"nursingInterventions"`

	// Referral
	ReferredTo      []string `json:"referredTo"`
	OtherReferredTo string   `json:"otherReferredTo"`
	ReferralReason  string   `json:"referralReason"`
	ReferralUrgency string   `json:"referralUrgency"`
	ReferralDate    string   `json:"referralDate"`
	ReferralOutcome string   `json:"referralOutcome"`

	// Monitoring
	ProgressNotes []ProgressNote `json:"progressNotes"`
}

// NewPatientRecord returns an all-default record with the given id. Every
// field has a defined zero, so a record created here and one hydrated from a
// sparse remote document are shape-identical.
func NewPatientRecord(id string) PatientRecord {
	return PatientRecord{
		ID:              id,
		ChronicDiseases: []string{},
		Allergies:       []string{},
		FamilyHistory:   []string{},
		ReferredTo:      []string{},
		Medications:     []Medication{},
		ProgressNotes:   []ProgressNote{},
	}
}

// Clone returns a deep copy: slices and sub-entities are not shared with
// the receiver. Nil slices normalize to empty ones so a clone always has
// the defined defaults.
func (r PatientRecord) Clone() PatientRecord {
	c := r
	c.ChronicDiseases = cloneStrings(r.ChronicDiseases)
	c.Allergies = cloneStrings(r.Allergies)
	c.FamilyHistory = cloneStrings(r.FamilyHistory)
	c.ReferredTo = cloneStrings(r.ReferredTo)
	c.Medications = append(make([]Medication, 0, len(r.Medications)), r.Medications...)
	c.ProgressNotes = append(make([]ProgressNote, 0, len(r.ProgressNotes)), r.ProgressNotes...)
	return c
}

func cloneStrings(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}
