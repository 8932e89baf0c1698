package entities

// Compliance is the self-reported medication-compliance answer.
type Compliance string

const (
	ComplianceYes       Compliance = "Yes"
	ComplianceNo        Compliance = "No"
	ComplianceSometimes Compliance = "Sometimes"
)

// Medication is one entry of a record's current-medication list. Each entry
// carries its own generated id so it can be updated or removed independently
// of its siblings.
type Medication struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Dose       string     `json:"dose"`
	Route      string     `json:"route"`
	Frequency  string     `json:"frequency"`
	Purpose    string     `json:"purpose"`
	Compliance Compliance `json:"compliance"`
}
