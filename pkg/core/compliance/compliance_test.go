package compliance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

func sessionBlock(id string, date time.Time, session model.Session) model.Block {
	return model.Block{ID: id, Date: date, Session: session, BlockNumber: 1, IsWeekend: model.IsWeekendDate(date)}
}

func primary(personID, blockID string) model.Assignment {
	return model.Assignment{PersonID: personID, BlockID: blockID, Role: model.RolePrimary}
}

func TestValidate_FlagsRestDayBreach(t *testing.T) {
	var blocks []model.Block
	var assignments []model.Assignment
	for i := 0; i < 7; i++ {
		date := day(2025, time.June, 2).AddDate(0, 0, i)
		am := sessionBlock(fmt.Sprintf("b%d-am", i), date, model.SessionAM)
		pm := sessionBlock(fmt.Sprintf("b%d-pm", i), date, model.SessionPM)
		blocks = append(blocks, am, pm)

		// r1 works every session all week; r2 only the first two days.
		assignments = append(assignments, primary("r1", am.ID), primary("r1", pm.ID))
		if i < 2 {
			assignments = append(assignments, primary("r2", am.ID))
		}
	}

	report, err := Validate(assignments, blocks)
	require.NoError(t, err)

	assert.False(t, report.Clean())
	require.Len(t, report.Violations, 1)
	assert.Equal(t, RuleRestDay, report.Violations[0].Rule)
	assert.Equal(t, "r1", report.Violations[0].PersonID)
	assert.Equal(t, map[string]int{RuleRestDay: 1}, report.CountByRule())
}

func TestValidate_FlagsDutyHourBreach(t *testing.T) {
	// 21 separate clinics per week for four weeks is 336 credited hours.
	var blocks []model.Block
	var assignments []model.Assignment
	id := 0
	for week := 0; week < 4; week++ {
		monday := day(2025, time.June, 2).AddDate(0, 0, week*7)
		for i := 0; i < 21; i++ {
			b := sessionBlock(fmt.Sprintf("b%d", id), monday.AddDate(0, 0, i%3), model.SessionAM)
			blocks = append(blocks, b)
			assignments = append(assignments, primary("r1", b.ID))
			id++
		}
	}

	report, err := Validate(assignments, blocks)
	require.NoError(t, err)

	counts := report.CountByRule()
	assert.Equal(t, 1, counts[RuleDutyHour])
	assert.Zero(t, counts[RuleRestDay], "three duty days a week leave rest days")
}

func TestValidate_ViolationsOrderedByPerson(t *testing.T) {
	var blocks []model.Block
	var zAssignments, aAssignments []model.Assignment
	for i := 0; i < 7; i++ {
		b := sessionBlock(fmt.Sprintf("b%d", i), day(2025, time.June, 2).AddDate(0, 0, i), model.SessionAM)
		blocks = append(blocks, b)
		zAssignments = append(zAssignments, primary("zed", b.ID))
		aAssignments = append(aAssignments, primary("amy", b.ID))
	}

	// zed appears first in the input but not in the report.
	report, err := Validate(append(zAssignments, aAssignments...), blocks)
	require.NoError(t, err)

	require.Len(t, report.Violations, 2)
	assert.Equal(t, "amy", report.Violations[0].PersonID)
	assert.Equal(t, "zed", report.Violations[1].PersonID)
}

func TestValidate_UnknownBlockReference(t *testing.T) {
	assignments := []model.Assignment{primary("r1", "missing")}

	report, err := Validate(assignments, nil)
	assert.Nil(t, report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown block")
}

func TestValidate_EmptyScheduleIsClean(t *testing.T) {
	report, err := Validate(nil, nil)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Empty(t, report.CountByRule())
}
