package rosterclient

import (
	"fmt"
	"strconv"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// Expected column names in the people CSV
var personFields = []string{
	"id",
	"first_name",
	"last_name",
	"kind",
	"pgy_level",
	"role",
	"active",
}

// ReadPeople parses a residents-and-faculty roster from a CSV file.
// Rows with no first name are skipped. A blank active column defaults
// to true; a blank pgy_level to 0.
func ReadPeople(path string) ([]model.Person, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	indexes, err := fieldIndexes(rows[0], personFields)
	if err != nil {
		return nil, err
	}

	people := make([]model.Person, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		firstName := getField(indexes, "first_name", row)
		// Skip empty rows (rows with no first name)
		if firstName == "" {
			continue
		}

		kind := model.PersonKind(getField(indexes, "kind", row))
		if !kind.IsValid() {
			return nil, fmt.Errorf("invalid kind for person in row %d", i)
		}

		pgyLevel := 0
		if raw := getField(indexes, "pgy_level", row); raw != "" {
			pgyLevel, err = strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid pgy_level in row %d: %w", i, err)
			}
		}

		active := true
		if raw := getField(indexes, "active", row); raw != "" {
			active, err = strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid active flag in row %d: %w", i, err)
			}
		}

		people = append(people, model.Person{
			ID:        getField(indexes, "id", row),
			FirstName: firstName,
			LastName:  getField(indexes, "last_name", row),
			Kind:      kind,
			PGYLevel:  pgyLevel,
			Role:      getField(indexes, "role", row),
			Active:    active,
		})
	}

	return people, nil
}
