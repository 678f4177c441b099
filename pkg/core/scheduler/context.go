package scheduler

import (
	"fmt"
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/availability"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// BuildContext assembles the inputs of one scheduling run. It validates the
// horizon, ensures blocks for every open horizon date, filters the roster,
// and attaches the availability matrix along with id index maps. The input
// slices are not mutated.
func BuildContext(in ContextInput) (*SchedulingContext, error) {
	start := model.Date(in.HorizonStart)
	end := model.Date(in.HorizonEnd)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start %s, end %s", ErrInvalidHorizon,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	source := in.Blocks
	if source == nil {
		source = NewCalendar(start)
	}

	// Step 1: ensure an AM and PM block for each open horizon date.
	closed := make(map[time.Time]bool, len(in.ClosureDates))
	for _, d := range in.ClosureDates {
		closed[model.Date(d)] = true
	}

	var blocks []model.Block
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if closed[day] {
			continue
		}
		for _, session := range []model.Session{model.SessionAM, model.SessionPM} {
			b, err := source.EnsureBlock(day, session)
			if err != nil {
				return nil, fmt.Errorf("failed to ensure block for %s %s: %w",
					day.Format(time.DateOnly), session, err)
			}
			blocks = append(blocks, b)
		}
	}

	// Step 2: split the roster into eligible residents and active faculty.
	wantPGY := make(map[int]bool, len(in.PGYLevels))
	for _, lvl := range in.PGYLevels {
		wantPGY[lvl] = true
	}

	var residents, faculty []model.Person
	for _, p := range in.People {
		if !p.Active {
			continue
		}
		switch {
		case p.IsResident():
			if len(wantPGY) > 0 && !wantPGY[p.PGYLevel] {
				continue
			}
			residents = append(residents, p)
		case p.Kind == model.KindFaculty:
			faculty = append(faculty, p)
		}
	}

	// Step 3: build the availability matrix over the filtered roster.
	people := make([]model.Person, 0, len(residents)+len(faculty))
	people = append(people, residents...)
	people = append(people, faculty...)
	matrix := availability.BuildMatrix(people, blocks, in.Absences)

	return &SchedulingContext{
		Residents:     residents,
		Faculty:       faculty,
		Blocks:        blocks,
		Templates:     in.Templates,
		Matrix:        matrix,
		HorizonStart:  start,
		HorizonEnd:    end,
		ResidentIndex: personIndex(residents),
		FacultyIndex:  personIndex(faculty),
		BlockIndex:    blockIndex(blocks),
		TemplateIndex: templateIndex(in.Templates),
	}, nil
}

// HorizonDays returns the inclusive length of the horizon in days.
func (sc *SchedulingContext) HorizonDays() int {
	return int(sc.HorizonEnd.Sub(sc.HorizonStart).Hours()/24) + 1
}

// eligibleResidents returns the residents available for the block, in
// context order.
func (sc *SchedulingContext) eligibleResidents(blockID string) []model.Person {
	var out []model.Person
	for _, r := range sc.Residents {
		if sc.Matrix.IsAvailable(r.ID, blockID) {
			out = append(out, r)
		}
	}
	return out
}

// eligibleFaculty returns the faculty available for the block, in context
// order.
func (sc *SchedulingContext) eligibleFaculty(blockID string) []model.Person {
	var out []model.Person
	for _, f := range sc.Faculty {
		if sc.Matrix.IsAvailable(f.ID, blockID) {
			out = append(out, f)
		}
	}
	return out
}

// personIndex maps person IDs to their positions in people.
func personIndex(people []model.Person) map[string]int {
	idx := make(map[string]int, len(people))
	for i, p := range people {
		idx[p.ID] = i
	}
	return idx
}

// blockIndex maps block IDs to their positions in blocks.
func blockIndex(blocks []model.Block) map[string]int {
	idx := make(map[string]int, len(blocks))
	for i, b := range blocks {
		idx[b.ID] = i
	}
	return idx
}

// templateIndex maps template IDs to their positions in templates.
func templateIndex(templates []model.RotationTemplate) map[string]int {
	idx := make(map[string]int, len(templates))
	for i, t := range templates {
		idx[t.ID] = i
	}
	return idx
}
