package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// 2025-06-02 is a Monday; the fixtures below lean on that.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func resident(id string, pgy int) model.Person {
	return model.Person{
		ID:        id,
		FirstName: "Resident",
		LastName:  id,
		Kind:      model.KindResident,
		PGYLevel:  pgy,
		Active:    true,
	}
}

func facultyMember(id string) model.Person {
	return model.Person{
		ID:        id,
		FirstName: "Faculty",
		LastName:  id,
		Kind:      model.KindFaculty,
		Role:      "attending",
		Active:    true,
	}
}

func absence(personID string, start, end time.Time, activity string) model.Absence {
	return model.Absence{
		PersonID:            personID,
		StartDate:           start,
		EndDate:             end,
		ReplacementActivity: activity,
	}
}

func mustBuildContext(t *testing.T, in ContextInput) *SchedulingContext {
	t.Helper()
	sc, err := BuildContext(in)
	require.NoError(t, err)
	return sc
}

func TestEngineRun_FullWeekBalancesResidents(t *testing.T) {
	sc := mustBuildContext(t, ContextInput{
		People: []model.Person{
			resident("r1", 1), resident("r2", 2), resident("r3", 3),
			facultyMember("f1"), facultyMember("f2"),
		},
		Templates:    []model.RotationTemplate{{ID: "tmpl-clinic", Name: "General Clinic"}},
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 8),
	})

	result, err := NewEngine(sc).Run()
	require.NoError(t, err)

	primaries := result.Primaries()
	assert.Len(t, primaries, 10, "one primary for each weekday block")
	assert.Len(t, result.Supervising(), 10)
	assert.Empty(t, result.Gaps)

	// Weekend blocks carry no assignments at all.
	for _, a := range result.Assignments {
		b := sc.Blocks[sc.BlockIndex[a.BlockID]]
		assert.False(t, b.IsWeekend)
	}

	// Ten primaries over three residents must land 4/3/3.
	loads := []int{result.ResidentLoad["r1"], result.ResidentLoad["r2"], result.ResidentLoad["r3"]}
	assert.ElementsMatch(t, []int{4, 3, 3}, loads)

	// Every primary carries the only credential-free template.
	for _, a := range primaries {
		assert.Equal(t, "tmpl-clinic", a.RotationTemplateID)
	}
}

func TestEngineRun_ScarcestBlocksAssignedFirst(t *testing.T) {
	sc := mustBuildContext(t, ContextInput{
		People: []model.Person{resident("r1", 2), resident("r2", 2)},
		Absences: []model.Absence{
			absence("r2", day(2025, time.June, 2), day(2025, time.June, 2), "conference"),
		},
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 3),
	})

	result, err := NewEngine(sc).Run()
	require.NoError(t, err)

	primaries := result.Primaries()
	require.Len(t, primaries, 4)

	// Monday's blocks have a single candidate and must be assigned before
	// Tuesday's, leaving Tuesday to the idle resident.
	monday := day(2025, time.June, 2)
	for _, a := range primaries[:2] {
		b := sc.Blocks[sc.BlockIndex[a.BlockID]]
		assert.True(t, b.Date.Equal(monday))
		assert.Equal(t, "r1", a.PersonID)
	}
	for _, a := range primaries[2:] {
		assert.Equal(t, "r2", a.PersonID)
	}
	assert.Equal(t, 2, result.ResidentLoad["r1"])
	assert.Equal(t, 2, result.ResidentLoad["r2"])
}

func TestEngineRun_UncoverableBlockBecomesGap(t *testing.T) {
	// Both residents are away on Tuesday; the run still covers the rest.
	sc := mustBuildContext(t, ContextInput{
		People: []model.Person{resident("r1", 1), resident("r2", 1), facultyMember("f1")},
		Absences: []model.Absence{
			absence("r1", day(2025, time.June, 3), day(2025, time.June, 3), "sick"),
			absence("r2", day(2025, time.June, 3), day(2025, time.June, 3), "vacation"),
		},
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 4),
	})

	result, err := NewEngine(sc).Run()
	require.NoError(t, err)

	assert.Len(t, result.Primaries(), 4)
	require.Len(t, result.Gaps, 2)
	for _, gap := range result.Gaps {
		assert.Equal(t, GapNoEligibleResident, gap.Reason)
		assert.True(t, gap.Date.Equal(day(2025, time.June, 3)))
	}

	// No supervising assignments on the empty blocks either.
	for _, a := range result.Supervising() {
		b := sc.Blocks[sc.BlockIndex[a.BlockID]]
		assert.False(t, b.Date.Equal(day(2025, time.June, 3)))
	}
}

func TestEngineRun_FacultyShortfallReported(t *testing.T) {
	sc := mustBuildContext(t, ContextInput{
		People: []model.Person{resident("r1", 1), facultyMember("f1")},
		Absences: []model.Absence{
			absence("f1", day(2025, time.June, 2), day(2025, time.June, 2), "leave"),
		},
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 2),
	})

	result, err := NewEngine(sc).Run()
	require.NoError(t, err)

	assert.Len(t, result.Primaries(), 2)
	assert.Empty(t, result.Supervising())
	require.Len(t, result.Gaps, 2)
	for _, gap := range result.Gaps {
		assert.Equal(t, GapFacultyShortfall, gap.Reason)
		assert.Equal(t, 1, gap.Missing)
	}
}

func TestEngineRun_NoResidentsFailsFast(t *testing.T) {
	sc := mustBuildContext(t, ContextInput{
		People:       []model.Person{facultyMember("f1")},
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 6),
	})

	result, err := NewEngine(sc).Run()
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoEligibleResidents)
}

func TestEngineRun_DeterministicAcrossRuns(t *testing.T) {
	sc := mustBuildContext(t, ContextInput{
		People: []model.Person{
			resident("r1", 1), resident("r2", 2), resident("r3", 3),
			facultyMember("f1"), facultyMember("f2"),
		},
		Absences: []model.Absence{
			absence("r2", day(2025, time.June, 4), day(2025, time.June, 5), "clinic"),
		},
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 13),
	})

	first, err := NewEngine(sc).Run()
	require.NoError(t, err)
	second, err := NewEngine(sc).Run()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngineRun_RosterOrderDoesNotChangeOutcome(t *testing.T) {
	calendar := NewCalendar(day(2025, time.June, 2))
	people := []model.Person{
		resident("r1", 1), resident("r2", 2), resident("r3", 3), facultyMember("f1"),
	}
	reversed := []model.Person{
		facultyMember("f1"), resident("r3", 3), resident("r2", 2), resident("r1", 1),
	}

	base := ContextInput{
		Blocks:       calendar,
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 6),
	}

	in := base
	in.People = people
	forward, err := NewEngine(mustBuildContext(t, in)).Run()
	require.NoError(t, err)

	in = base
	in.People = reversed
	backward, err := NewEngine(mustBuildContext(t, in)).Run()
	require.NoError(t, err)

	assert.Equal(t, forward.Assignments, backward.Assignments)
}

func TestRequiredFaculty(t *testing.T) {
	people := []model.Person{
		resident("a1", 1), resident("a2", 1), resident("a3", 1),
		resident("a4", 1), resident("a5", 1),
		resident("b1", 3), resident("b2", 3), resident("b3", 3),
		resident("b4", 2), resident("b5", 2),
	}
	sc := mustBuildContext(t, ContextInput{
		People:       people,
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 2),
	})
	engine := NewEngine(sc)

	primariesFor := func(ids ...string) []model.Assignment {
		out := make([]model.Assignment, len(ids))
		for i, id := range ids {
			out[i] = model.Assignment{PersonID: id, BlockID: "b", Role: model.RolePrimary}
		}
		return out
	}

	tests := []struct {
		name     string
		ids      []string
		expected int
	}{
		{name: "single intern", ids: []string{"a1"}, expected: 1},
		{name: "two interns share one attending", ids: []string{"a1", "a2"}, expected: 1},
		{name: "third intern needs a second attending", ids: []string{"a1", "a2", "a3"}, expected: 2},
		{name: "four seniors share one attending", ids: []string{"b1", "b2", "b3", "b4"}, expected: 1},
		{name: "fifth senior needs a second attending", ids: []string{"b1", "b2", "b3", "b4", "b5"}, expected: 2},
		{name: "mixed seniority sums both ratios", ids: []string{"a1", "a2", "a3", "a4", "a5", "b1", "b2", "b3"}, expected: 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, engine.requiredFaculty(primariesFor(tc.ids...)))
		})
	}
}

func TestLeastLoaded(t *testing.T) {
	candidates := []model.Person{resident("r2", 1), resident("r1", 1), resident("r3", 1)}

	pick := leastLoaded(candidates, map[string]int{"r1": 2, "r2": 1, "r3": 1})
	assert.Equal(t, "r2", pick.ID, "lowest load wins")

	pick = leastLoaded(candidates, map[string]int{"r1": 1, "r2": 1, "r3": 1})
	assert.Equal(t, "r1", pick.ID, "ties break to the smallest ID")
}

func TestDefaultTemplateID(t *testing.T) {
	sc := mustBuildContext(t, ContextInput{
		People: []model.Person{resident("r1", 1)},
		Templates: []model.RotationTemplate{
			{ID: "tmpl-procedures", Name: "Procedures", RequiresProcedureCredential: true},
			{ID: "tmpl-wards", Name: "Wards"},
			{ID: "tmpl-clinic", Name: "Clinic"},
		},
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 2),
	})
	assert.Equal(t, "tmpl-wards", NewEngine(sc).defaultTemplateID())
}

func TestEngineRun_AllTemplatesRestrictedLeavesTemplateUnset(t *testing.T) {
	sc := mustBuildContext(t, ContextInput{
		People: []model.Person{resident("r1", 1)},
		Templates: []model.RotationTemplate{
			{ID: "tmpl-procedures", Name: "Procedures", RequiresProcedureCredential: true},
		},
		HorizonStart: day(2025, time.June, 2),
		HorizonEnd:   day(2025, time.June, 2),
	})

	result, err := NewEngine(sc).Run()
	require.NoError(t, err)
	require.Len(t, result.Primaries(), 2)
	for _, a := range result.Primaries() {
		assert.Empty(t, a.RotationTemplateID)
	}
}
