package rosterclient

import (
	"fmt"
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// Expected column names in the absences CSV
var absenceFields = []string{
	"person_id",
	"start_date",
	"end_date",
	"replacement_activity",
}

const absenceDateLayout = "2006-01-02"

// ReadAbsences parses absence windows from a CSV file. Dates are
// inclusive and must be formatted 2006-01-02. Rows with no person id
// are skipped.
func ReadAbsences(path string) ([]model.Absence, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	indexes, err := fieldIndexes(rows[0], absenceFields)
	if err != nil {
		return nil, err
	}

	absences := make([]model.Absence, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		personID := getField(indexes, "person_id", row)
		// Skip empty rows (rows with no person id)
		if personID == "" {
			continue
		}

		start, err := time.Parse(absenceDateLayout, getField(indexes, "start_date", row))
		if err != nil {
			return nil, fmt.Errorf("invalid start_date in row %d: %w", i, err)
		}

		end, err := time.Parse(absenceDateLayout, getField(indexes, "end_date", row))
		if err != nil {
			return nil, fmt.Errorf("invalid end_date in row %d: %w", i, err)
		}

		if end.Before(start) {
			return nil, fmt.Errorf("end_date before start_date in row %d", i)
		}

		absences = append(absences, model.Absence{
			PersonID:            personID,
			StartDate:           start,
			EndDate:             end,
			ReplacementActivity: getField(indexes, "replacement_activity", row),
		})
	}

	return absences, nil
}
