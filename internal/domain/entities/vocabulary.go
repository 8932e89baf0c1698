package entities

// Fixed vocabularies of the encoding form. The tag-set fields
// (chronicDiseases, familyHistory, referredTo) only ever hold values from
// these lists plus the free-text "other" companions.

var Categories = []string{
	"Maternal", "Child (0-5)", "Adolescent", "Adult", "Elderly", "NCD", "TB", "Others",
}

var Genders = []string{"Male", "Female", "Others"}

var CivilStatuses = []string{"Single", "Married", "Widowed", "Live-in", "Separated"}

var ChronicDiseaseOptions = []string{
	"Hypertension", "Diabetes", "Asthma/COPD", "Heart Disease",
	"Kidney Disease", "Stroke", "TB", "Cancer",
}

var FamilyHistoryOptions = []string{
	"Hypertension", "Diabetes", "Heart Disease", "Stroke", "Cancer", "TB", "Mental illness",
}

var ReferralOptions = []string{
	"BHS/Midwife", "RHU/CHO", "Hospital/ER", "Social Worker", "Mental Health",
}

var TobaccoUseOptions = []string{"Never", "Former", "Current"}
