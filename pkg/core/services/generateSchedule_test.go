package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/internal/config"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/scheduler"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// mockScheduleStore is an in-memory test double for GenerateScheduleStore
type mockScheduleStore struct {
	people    []db.Person
	absences  []db.Absence
	templates []db.RotationTemplate

	blocks map[string]db.Block

	insertedRuns        []*db.ScheduleRun
	insertedAssignments []db.Assignment
	lockCalls           int

	getPeopleErr error
	insertRunErr error
}

func (m *mockScheduleStore) GetPeople(ctx context.Context) ([]db.Person, error) {
	if m.getPeopleErr != nil {
		return nil, m.getPeopleErr
	}
	return m.people, nil
}

func (m *mockScheduleStore) GetAbsencesOverlapping(ctx context.Context, start, end time.Time) ([]db.Absence, error) {
	return m.absences, nil
}

func (m *mockScheduleStore) GetRotationTemplates(ctx context.Context) ([]db.RotationTemplate, error) {
	return m.templates, nil
}

func (m *mockScheduleStore) EnsureBlock(ctx context.Context, block db.Block) (db.Block, error) {
	if m.blocks == nil {
		m.blocks = make(map[string]db.Block)
	}
	key := block.Date.Format("2006-01-02") + "/" + block.Session
	if stored, ok := m.blocks[key]; ok {
		return stored, nil
	}
	m.blocks[key] = block
	return block, nil
}

func (m *mockScheduleStore) InsertScheduleRun(run *db.ScheduleRun) error {
	if m.insertRunErr != nil {
		return m.insertRunErr
	}
	m.insertedRuns = append(m.insertedRuns, run)
	return nil
}

func (m *mockScheduleStore) InsertAssignments(assignments []db.Assignment) error {
	m.insertedAssignments = append(m.insertedAssignments, assignments...)
	return nil
}

func (m *mockScheduleStore) WithRunLock(ctx context.Context, start, end time.Time, fn func(context.Context) error) error {
	m.lockCalls++
	return fn(ctx)
}

// fullWeekStore returns a store with three residents, one faculty member and
// one open rotation template
func fullWeekStore() *mockScheduleStore {
	return &mockScheduleStore{
		people: []db.Person{
			{ID: "r1", FirstName: "Alice", Kind: "resident", PGYLevel: 1, Active: true},
			{ID: "r2", FirstName: "Ben", Kind: "resident", PGYLevel: 2, Active: true},
			{ID: "r3", FirstName: "Chloe", Kind: "resident", PGYLevel: 3, Active: true},
			{ID: "f1", FirstName: "Dana", Kind: "faculty", Role: "attending", Active: true},
		},
		templates: []db.RotationTemplate{
			{ID: "tmpl-wards", Name: "Inpatient Wards"},
		},
	}
}

func TestGenerateSchedule_FullWeekPersistsRun(t *testing.T) {
	store := fullWeekStore()

	result, err := GenerateSchedule(context.Background(), store, testConfig(), zap.NewNop(), GenerateScheduleOptions{
		Start: day(2025, 6, 2),
		End:   day(2025, 6, 6),
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, model.RunSuccess, result.Status)
	assert.Equal(t, "greedy", result.Algorithm)
	assert.True(t, result.Saved)
	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.Gaps)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 10, result.TotalBlocks)
	assert.Len(t, result.Assignments, 20)
	assert.Len(t, result.Blocks, 10)
	assert.Len(t, result.People, 4)

	assert.Equal(t, map[string]int{"r1": 4, "r2": 3, "r3": 3}, result.ResidentLoad)
	assert.Equal(t, map[string]int{"f1": 10}, result.FacultyLoad)

	// Run record and assignment rows hit the store
	require.Len(t, store.insertedRuns, 1)
	run := store.insertedRuns[0]
	assert.Equal(t, result.RunID, run.ID)
	assert.Equal(t, "greedy", run.Algorithm)
	assert.Equal(t, "success", run.Status)
	assert.Equal(t, 20, run.TotalAssigned)
	assert.Equal(t, 10, run.TotalBlocks)
	assert.Equal(t, 0, run.ViolationCount)

	require.Len(t, store.insertedAssignments, 20)
	ids := make(map[string]bool)
	for _, record := range store.insertedAssignments {
		assert.Equal(t, run.ID, record.RunID)
		assert.NotEmpty(t, record.ID)
		ids[record.ID] = true
	}
	assert.Len(t, ids, 20)

	// Mon-Fri, AM and PM each
	assert.Len(t, store.blocks, 10)
	assert.Equal(t, 1, store.lockCalls)
}

func TestGenerateSchedule_DryRunDoesNotSave(t *testing.T) {
	store := fullWeekStore()

	result, err := GenerateSchedule(context.Background(), store, testConfig(), zap.NewNop(), GenerateScheduleOptions{
		Start:  day(2025, 6, 2),
		End:    day(2025, 6, 6),
		DryRun: true,
	})
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Empty(t, result.RunID)
	assert.Equal(t, model.RunSuccess, result.Status)
	assert.Len(t, result.Assignments, 20)

	assert.Empty(t, store.insertedRuns)
	assert.Empty(t, store.insertedAssignments)

	// Blocks are still ensured; they are idempotent infrastructure
	assert.Len(t, store.blocks, 10)
}

func TestGenerateSchedule_NoResidentsFails(t *testing.T) {
	store := fullWeekStore()
	store.people = []db.Person{
		{ID: "f1", FirstName: "Dana", Kind: "faculty", Role: "attending", Active: true},
	}

	result, err := GenerateSchedule(context.Background(), store, testConfig(), zap.NewNop(), GenerateScheduleOptions{
		Start: day(2025, 6, 2),
		End:   day(2025, 6, 6),
	})
	require.NoError(t, err)

	assert.Equal(t, model.RunFailed, result.Status)
	assert.False(t, result.Saved)
	assert.Empty(t, result.RunID)
	assert.Empty(t, result.Assignments)

	// Nothing recorded for a failed run
	assert.Empty(t, store.insertedRuns)
	assert.Empty(t, store.insertedAssignments)
}

func TestGenerateSchedule_GapsDowngradeToPartial(t *testing.T) {
	store := fullWeekStore()
	store.people = []db.Person{
		{ID: "r1", FirstName: "Alice", Kind: "resident", PGYLevel: 1, Active: true},
		{ID: "f1", FirstName: "Dana", Kind: "faculty", Role: "attending", Active: true},
	}
	store.absences = []db.Absence{
		{ID: "a1", PersonID: "r1", StartDate: day(2025, 6, 4), EndDate: day(2025, 6, 4), ReplacementActivity: "clinic"},
	}

	result, err := GenerateSchedule(context.Background(), store, testConfig(), zap.NewNop(), GenerateScheduleOptions{
		Start:        day(2025, 6, 2),
		End:          day(2025, 6, 6),
		SkipOptimize: true,
	})
	require.NoError(t, err)

	assert.Equal(t, model.RunPartial, result.Status)
	require.Len(t, result.Gaps, 2)
	for _, gap := range result.Gaps {
		assert.Equal(t, day(2025, 6, 4), gap.Date)
		assert.Equal(t, scheduler.GapNoEligibleResident, gap.Reason)
	}

	// Partial runs are still recorded
	require.Len(t, store.insertedRuns, 1)
	assert.Equal(t, "partial", store.insertedRuns[0].Status)
	assert.Len(t, result.Assignments, 16)
}

func TestGenerateSchedule_OptimizerDropsUncoverableBlocks(t *testing.T) {
	store := fullWeekStore()
	store.people = []db.Person{
		{ID: "r1", FirstName: "Alice", Kind: "resident", PGYLevel: 1, Active: true},
		{ID: "f1", FirstName: "Dana", Kind: "faculty", Role: "attending", Active: true},
	}
	store.absences = []db.Absence{
		{ID: "a1", PersonID: "r1", StartDate: day(2025, 6, 4), EndDate: day(2025, 6, 4), ReplacementActivity: "clinic"},
	}

	result, err := GenerateSchedule(context.Background(), store, testConfig(), zap.NewNop(), GenerateScheduleOptions{
		Start: day(2025, 6, 2),
		End:   day(2025, 6, 6),
	})
	require.NoError(t, err)

	// The uncoverable Wednesday blocks were pruned before solving, so the
	// run covers everything that remained
	assert.Equal(t, model.RunSuccess, result.Status)
	assert.Equal(t, 8, result.TotalBlocks)
	assert.Empty(t, result.Gaps)
	assert.Len(t, result.Assignments, 16)
}

func TestGenerateSchedule_FacultyShortfallReported(t *testing.T) {
	store := fullWeekStore()
	store.people = []db.Person{
		{ID: "r1", FirstName: "Alice", Kind: "resident", PGYLevel: 1, Active: true},
	}

	result, err := GenerateSchedule(context.Background(), store, testConfig(), zap.NewNop(), GenerateScheduleOptions{
		Start: day(2025, 6, 2),
		End:   day(2025, 6, 6),
	})
	require.NoError(t, err)

	assert.Equal(t, model.RunPartial, result.Status)
	require.Len(t, result.Gaps, 10)
	for _, gap := range result.Gaps {
		assert.Equal(t, scheduler.GapFacultyShortfall, gap.Reason)
		assert.Equal(t, 1, gap.Missing)
	}
	assert.Len(t, result.Assignments, 10)
	assert.Empty(t, result.FacultyLoad)
}

func TestGenerateSchedule_ClosureRulesSkipDates(t *testing.T) {
	store := fullWeekStore()
	cfg := testConfig()
	cfg.ClosureRules = []config.ClosureRule{
		{RRule: "FREQ=WEEKLY;BYDAY=WE", Label: "academic day"},
	}

	result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), GenerateScheduleOptions{
		Start: day(2025, 6, 2),
		End:   day(2025, 6, 6),
	})
	require.NoError(t, err)

	assert.Equal(t, model.RunSuccess, result.Status)
	assert.Equal(t, 8, result.TotalBlocks)
	assert.Len(t, store.blocks, 8)
	for _, block := range store.blocks {
		assert.NotEqual(t, day(2025, 6, 4), block.Date)
	}
}

func TestGenerateSchedule_PGYFilter(t *testing.T) {
	t.Run("from config", func(t *testing.T) {
		store := fullWeekStore()
		cfg := testConfig()
		cfg.DefaultPGYLevels = []int{2}

		result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), GenerateScheduleOptions{
			Start: day(2025, 6, 2),
			End:   day(2025, 6, 6),
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"r2": 10}, result.ResidentLoad)
	})

	t.Run("options override config", func(t *testing.T) {
		store := fullWeekStore()
		cfg := testConfig()
		cfg.DefaultPGYLevels = []int{2}

		result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), GenerateScheduleOptions{
			Start:     day(2025, 6, 2),
			End:       day(2025, 6, 6),
			PGYLevels: []int{1, 3},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"r1": 5, "r3": 5}, result.ResidentLoad)
	})
}

func TestGenerateSchedule_UnimplementedStrategyFallsBack(t *testing.T) {
	store := fullWeekStore()
	cfg := testConfig()
	cfg.DefaultAlgorithm = "constraint-programming"

	result, err := GenerateSchedule(context.Background(), store, cfg, zap.NewNop(), GenerateScheduleOptions{
		Start: day(2025, 6, 2),
		End:   day(2025, 6, 6),
	})
	require.NoError(t, err)

	assert.Equal(t, "greedy", result.Algorithm)
	require.Len(t, store.insertedRuns, 1)
	assert.Equal(t, "greedy", store.insertedRuns[0].Algorithm)
}

func TestGenerateSchedule_InvalidHorizon(t *testing.T) {
	store := fullWeekStore()

	_, err := GenerateSchedule(context.Background(), store, testConfig(), zap.NewNop(), GenerateScheduleOptions{
		Start: day(2025, 6, 6),
		End:   day(2025, 6, 2),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, scheduler.ErrInvalidHorizon)

	assert.Zero(t, store.lockCalls)
	assert.Empty(t, store.blocks)
}

func TestGenerateSchedule_StoreErrorPropagates(t *testing.T) {
	store := fullWeekStore()
	store.getPeopleErr = errors.New("connection refused")

	_, err := GenerateSchedule(context.Background(), store, testConfig(), zap.NewNop(), GenerateScheduleOptions{
		Start: day(2025, 6, 2),
		End:   day(2025, 6, 6),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch people")
	assert.Empty(t, store.insertedRuns)
}

func TestGenerateSchedule_RunInsertErrorPropagates(t *testing.T) {
	store := fullWeekStore()
	store.insertRunErr = errors.New("unique violation")

	_, err := GenerateSchedule(context.Background(), store, testConfig(), zap.NewNop(), GenerateScheduleOptions{
		Start: day(2025, 6, 2),
		End:   day(2025, 6, 6),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save schedule run")
	assert.Empty(t, store.insertedAssignments)
}
