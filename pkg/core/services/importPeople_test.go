package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

type mockImportPeopleStore struct {
	upserted  []db.Person
	upsertErr error
}

func (m *mockImportPeopleStore) UpsertPeople(people []db.Person) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, people...)
	return nil
}

func TestImportPeople_ImportsRoster(t *testing.T) {
	path := writeRosterCSV(t, `id,first_name,last_name,kind,pgy_level,role,active
r1,Alice,Nguyen,resident,1,,true
,Ben,Okafor,resident,2,,true
f1,Dana,Silva,faculty,,attending,true
`)
	store := &mockImportPeopleStore{}

	result, err := ImportPeople(context.Background(), store, zap.NewNop(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 2, result.Residents)
	assert.Equal(t, 1, result.Faculty)

	require.Len(t, store.upserted, 3)
	assert.Equal(t, "r1", store.upserted[0].ID)
	assert.Equal(t, "f1", store.upserted[2].ID)

	// Rows without an id get a generated one
	assert.NotEmpty(t, store.upserted[1].ID)
	assert.Equal(t, "Ben", store.upserted[1].FirstName)
}

func TestImportPeople_ReadErrorPropagates(t *testing.T) {
	path := writeRosterCSV(t, `first_name,last_name
Alice,Nguyen
`)
	store := &mockImportPeopleStore{}

	_, err := ImportPeople(context.Background(), store, zap.NewNop(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read people roster")
	assert.Empty(t, store.upserted)
}

func TestImportPeople_SaveErrorPropagates(t *testing.T) {
	path := writeRosterCSV(t, `id,first_name,last_name,kind,pgy_level,role,active
r1,Alice,Nguyen,resident,1,,true
`)
	store := &mockImportPeopleStore{upsertErr: errors.New("connection refused")}

	_, err := ImportPeople(context.Background(), store, zap.NewNop(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save people")
}
