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

type mockImportTemplatesStore struct {
	upserted  []db.RotationTemplate
	upsertErr error
}

func (m *mockImportTemplatesStore) UpsertRotationTemplates(templates []db.RotationTemplate) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, templates...)
	return nil
}

func TestImportTemplates_ImportsTemplates(t *testing.T) {
	path := writeRosterCSV(t, `id,name,requires_procedure_credential
tmpl-wards,Inpatient Wards,false
,Procedure Service,true
`)
	store := &mockImportTemplatesStore{}

	result, err := ImportTemplates(context.Background(), store, zap.NewNop(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	require.Len(t, store.upserted, 2)

	assert.Equal(t, "tmpl-wards", store.upserted[0].ID)
	assert.False(t, store.upserted[0].RequiresProcedureCredential)

	assert.NotEmpty(t, store.upserted[1].ID)
	assert.Equal(t, "Procedure Service", store.upserted[1].Name)
	assert.True(t, store.upserted[1].RequiresProcedureCredential)
}

func TestImportTemplates_ReadErrorPropagates(t *testing.T) {
	path := writeRosterCSV(t, `name
Inpatient Wards
`)
	store := &mockImportTemplatesStore{}

	_, err := ImportTemplates(context.Background(), store, zap.NewNop(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rotation templates")
	assert.Empty(t, store.upserted)
}

func TestImportTemplates_SaveErrorPropagates(t *testing.T) {
	path := writeRosterCSV(t, `id,name,requires_procedure_credential
tmpl-wards,Inpatient Wards,false
`)
	store := &mockImportTemplatesStore{upsertErr: errors.New("connection refused")}

	_, err := ImportTemplates(context.Background(), store, zap.NewNop(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save rotation templates")
}
