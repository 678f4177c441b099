package rosterclient

import (
	"fmt"
	"strconv"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// Expected column names in the rotation templates CSV
var templateFields = []string{
	"id",
	"name",
	"requires_procedure_credential",
}

// ReadTemplates parses rotation templates from a CSV file. Rows with no
// name are skipped. A blank requires_procedure_credential defaults to
// false.
func ReadTemplates(path string) ([]model.RotationTemplate, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	indexes, err := fieldIndexes(rows[0], templateFields)
	if err != nil {
		return nil, err
	}

	templates := make([]model.RotationTemplate, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		name := getField(indexes, "name", row)
		// Skip empty rows (rows with no name)
		if name == "" {
			continue
		}

		requiresCredential := false
		if raw := getField(indexes, "requires_procedure_credential", row); raw != "" {
			var err error
			requiresCredential, err = strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid requires_procedure_credential in row %d: %w", i, err)
			}
		}

		templates = append(templates, model.RotationTemplate{
			ID:                          getField(indexes, "id", row),
			Name:                        name,
			RequiresProcedureCredential: requiresCredential,
		})
	}

	return templates, nil
}
