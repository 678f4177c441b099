package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

type mockImportAbsencesStore struct {
	people   []db.Person
	inserted []db.Absence

	insertErr error
}

func (m *mockImportAbsencesStore) GetPeople(ctx context.Context) ([]db.Person, error) {
	return m.people, nil
}

func (m *mockImportAbsencesStore) InsertAbsences(absences []db.Absence) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, absences...)
	return nil
}

func absenceRoster() []db.Person {
	return []db.Person{
		{ID: "r1", FirstName: "Alice", Kind: "resident", PGYLevel: 1, Active: true},
		{ID: "r2", FirstName: "Ben", Kind: "resident", PGYLevel: 2, Active: true},
	}
}

func TestImportAbsences_ImportsWindows(t *testing.T) {
	path := writeRosterCSV(t, `person_id,start_date,end_date,replacement_activity
r1,2025-06-04,2025-06-06,clinic
r1,2025-06-20,2025-06-20,conference
r2,2025-06-10,2025-06-12,
`)
	store := &mockImportAbsencesStore{people: absenceRoster()}

	result, err := ImportAbsences(context.Background(), store, zap.NewNop(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 2, result.People)

	require.Len(t, store.inserted, 3)
	first := store.inserted[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "r1", first.PersonID)
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), first.StartDate)
	assert.Equal(t, time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), first.EndDate)
	assert.Equal(t, "clinic", first.ReplacementActivity)

	// Every record gets its own generated id
	ids := make(map[string]bool)
	for _, record := range store.inserted {
		ids[record.ID] = true
	}
	assert.Len(t, ids, 3)
}

func TestImportAbsences_UnknownPersonRejected(t *testing.T) {
	path := writeRosterCSV(t, `person_id,start_date,end_date,replacement_activity
r9,2025-06-04,2025-06-06,clinic
`)
	store := &mockImportAbsencesStore{people: absenceRoster()}

	_, err := ImportAbsences(context.Background(), store, zap.NewNop(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `absence references unknown person "r9"`)
	assert.Empty(t, store.inserted)
}

func TestImportAbsences_ReadErrorPropagates(t *testing.T) {
	path := writeRosterCSV(t, `person_id,start_date,end_date,replacement_activity
r1,2025-06-06,2025-06-04,clinic
`)
	store := &mockImportAbsencesStore{people: absenceRoster()}

	_, err := ImportAbsences(context.Background(), store, zap.NewNop(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read absences")
}

func TestImportAbsences_SaveErrorPropagates(t *testing.T) {
	path := writeRosterCSV(t, `person_id,start_date,end_date,replacement_activity
r1,2025-06-04,2025-06-06,clinic
`)
	store := &mockImportAbsencesStore{people: absenceRoster(), insertErr: errors.New("connection refused")}

	_, err := ImportAbsences(context.Background(), store, zap.NewNop(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save absences")
}
