// Package view derives the directory and detail presentations from the
// materialized list. Everything here treats the list as read-only input.
package view

import (
	"sort"
	"strings"

	"patient-profile-service/internal/domain/entities"
)

// SortMode selects the directory ordering.
type SortMode string

const (
	SortNewest    SortMode = "newest" // lastUpdated descending, the default
	SortOldest    SortMode = "oldest"
	SortInitials  SortMode = "initials"
	SortPatientID SortMode = "patientId"
)

// ParseSortMode maps a request parameter to a mode, falling back to the
// default for anything unrecognized.
func ParseSortMode(raw string) SortMode {
	switch SortMode(raw) {
	case SortOldest, SortInitials, SortPatientID:
		return SortMode(raw)
	default:
		return SortNewest
	}
}

// Filter keeps records whose patient identifier, initials or primary
// diagnosis contains the query as a case-insensitive substring. An empty
// query keeps everything.
func Filter(records []entities.PatientRecord, query string) []entities.PatientRecord {
	q := strings.ToLower(query)
	out := make([]entities.PatientRecord, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.PatientID), q) ||
			strings.Contains(strings.ToLower(rec.Initials), q) ||
			strings.Contains(strings.ToLower(rec.PrimaryDiagnosis), q) {
			out = append(out, rec)
		}
	}
	return out
}

// Sort returns a newly ordered copy; the input slice is never rearranged.
// Ordering for equal keys is unspecified.
func Sort(records []entities.PatientRecord, mode SortMode) []entities.PatientRecord {
	out := append([]entities.PatientRecord(nil), records...)
	switch mode {
	case SortOldest:
		sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated < out[j].LastUpdated })
	case SortInitials:
		sort.Slice(out, func(i, j int) bool { return out[i].Initials < out[j].Initials })
	case SortPatientID:
		sort.Slice(out, func(i, j int) bool { return out[i].PatientID < out[j].PatientID })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated > out[j].LastUpdated })
	}
	return out
}

// Select picks the active record for the detail view by id. The caller
// holds the returned value until it navigates away or a fresher copy with
// the same id arrives; staleness is not auto-reconciled.
func Select(records []entities.PatientRecord, id string) (entities.PatientRecord, bool) {
	for _, rec := range records {
		if rec.ID == id {
			return rec.Clone(), true
		}
	}
	return entities.PatientRecord{}, false
}
