package entities

// ProgressNote is one monitoring entry of a record. Date is the display
// string shown to the reader; Timestamp is kept for record-keeping only,
// display order is the array order maintained by the caller (newest entries
// are prepended on creation).
type ProgressNote struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	Timestamp   int64          `json:"timestamp"`
	BPSystolic  OptionalNumber `json:"bpSystolic"`
	BPDiastolic OptionalNumber `json:"bpDiastolic"`
	HR          OptionalNumber `json:"hr"`
	RR          OptionalNumber `json:"rr"`
	Temp        OptionalNumber `json:"temp"`
	Weight      OptionalNumber `json:"weight"`
	Notes       string         `json:"notes"`
}
