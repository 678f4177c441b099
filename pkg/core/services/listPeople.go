package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// ListPeopleResult groups the roster by kind
type ListPeopleResult struct {
	Residents []model.Person
	Faculty   []model.Person
}

// ListPeopleStore defines the database operations needed for listing people
type ListPeopleStore interface {
	GetPeople(ctx context.Context) ([]db.Person, error)
}

// ListPeople returns the stored roster split into residents and faculty
func ListPeople(ctx context.Context, database ListPeopleStore, logger *zap.Logger) (*ListPeopleResult, error) {
	logger.Debug("Fetching people")
	records, err := database.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	logger.Debug("Found people", zap.Int("count", len(records)))

	result := &ListPeopleResult{}
	for _, person := range convertToModelPeople(records) {
		switch person.Kind {
		case model.KindResident:
			result.Residents = append(result.Residents, person)
		case model.KindFaculty:
			result.Faculty = append(result.Faculty, person)
		}
	}

	return result, nil
}
