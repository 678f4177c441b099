package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/clients/rosterclient"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// ImportPeopleResult summarizes a people import
type ImportPeopleResult struct {
	Imported  int
	Residents int
	Faculty   int
}

// ImportPeopleStore defines the database operations needed for importing people
type ImportPeopleStore interface {
	UpsertPeople(people []db.Person) error
}

// ImportPeople loads a people roster CSV into the database. Rows without an
// id are assigned a fresh one; existing ids are updated in place.
func ImportPeople(ctx context.Context, database ImportPeopleStore, logger *zap.Logger, path string) (*ImportPeopleResult, error) {
	logger.Debug("Starting importPeople", zap.String("path", path))

	people, err := rosterclient.ReadPeople(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read people roster: %w", err)
	}
	logger.Debug("Parsed people roster", zap.Int("count", len(people)))

	result := &ImportPeopleResult{Imported: len(people)}
	records := make([]db.Person, len(people))
	for i, person := range people {
		if person.ID == "" {
			person.ID = uuid.New().String()
		}
		switch person.Kind {
		case model.KindResident:
			result.Residents++
		case model.KindFaculty:
			result.Faculty++
		}
		records[i] = db.Person{
			ID:        person.ID,
			FirstName: person.FirstName,
			LastName:  person.LastName,
			Kind:      string(person.Kind),
			PGYLevel:  person.PGYLevel,
			Role:      person.Role,
			Active:    person.Active,
		}
	}

	if err := database.UpsertPeople(records); err != nil {
		return nil, fmt.Errorf("failed to save people: %w", err)
	}

	logger.Info("People imported",
		zap.Int("count", result.Imported),
		zap.Int("residents", result.Residents),
		zap.Int("faculty", result.Faculty))

	return result, nil
}
