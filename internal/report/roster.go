package report

import (
	"bytes"
	"fmt"
	"time"

	"patient-profile-service/internal/domain/entities"

	"github.com/xuri/excelize/v2"
)

// Roster exports the directory as an XLSX sheet, one row per record.
func Roster(records []entities.PatientRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Directory"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Patient ID", "Initials", "Category", "Primary Diagnosis", "Age", "Last Updated"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, rec := range records {
		updated := ""
		if rec.LastUpdated > 0 {
			updated = time.UnixMilli(rec.LastUpdated).Format("2006-01-02 15:04")
		}
		values := []any{rec.PatientID, rec.Initials, rec.Category, rec.PrimaryDiagnosis, rec.Age.Display(), updated}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write roster: %w", err)
	}
	return buf.Bytes(), nil
}
