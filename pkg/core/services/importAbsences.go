package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/clients/rosterclient"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// ImportAbsencesResult summarizes an absence import
type ImportAbsencesResult struct {
	Imported int
	People   int
}

// ImportAbsencesStore defines the database operations needed for importing absences
type ImportAbsencesStore interface {
	GetPeople(ctx context.Context) ([]db.Person, error)
	InsertAbsences(absences []db.Absence) error
}

// ImportAbsences loads an absence CSV into the database. Every row must
// reference a person already in the roster.
func ImportAbsences(ctx context.Context, database ImportAbsencesStore, logger *zap.Logger, path string) (*ImportAbsencesResult, error) {
	logger.Debug("Starting importAbsences", zap.String("path", path))

	absences, err := rosterclient.ReadAbsences(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read absences: %w", err)
	}
	logger.Debug("Parsed absences", zap.Int("count", len(absences)))

	// Check every absence references a known person
	people, err := database.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	known := make(map[string]bool, len(people))
	for _, person := range people {
		known[person.ID] = true
	}

	seen := make(map[string]bool)
	records := make([]db.Absence, len(absences))
	for i, absence := range absences {
		if !known[absence.PersonID] {
			return nil, fmt.Errorf("absence references unknown person %q", absence.PersonID)
		}
		seen[absence.PersonID] = true
		records[i] = db.Absence{
			ID:                  uuid.New().String(),
			PersonID:            absence.PersonID,
			StartDate:           absence.StartDate,
			EndDate:             absence.EndDate,
			ReplacementActivity: absence.ReplacementActivity,
		}
	}

	if err := database.InsertAbsences(records); err != nil {
		return nil, fmt.Errorf("failed to save absences: %w", err)
	}

	result := &ImportAbsencesResult{
		Imported: len(records),
		People:   len(seen),
	}

	logger.Info("Absences imported",
		zap.Int("count", result.Imported),
		zap.Int("people", result.People))

	return result, nil
}
