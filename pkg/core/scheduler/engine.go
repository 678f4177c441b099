package scheduler

import (
	"sort"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// Engine runs the greedy two-pass assignment over a scheduling context.
type Engine struct {
	sc *SchedulingContext
}

func NewEngine(sc *SchedulingContext) *Engine {
	return &Engine{sc: sc}
}

// Run executes the resident pass followed by the faculty pass. It returns
// every assignment made, the explicit running load counters threaded through
// the passes, and the coverage gaps left behind. The only failure mode is an
// empty resident pool; individual unfillable blocks are gaps, not errors.
func (e *Engine) Run() (*Result, error) {
	if len(e.sc.Residents) == 0 {
		return nil, ErrNoEligibleResidents
	}

	residentLoad := make(map[string]int, len(e.sc.Residents))
	facultyLoad := make(map[string]int, len(e.sc.Faculty))

	primaries, gaps := e.assignResidents(residentLoad)
	supervising, facultyGaps := e.assignFaculty(primaries, facultyLoad)

	return &Result{
		Assignments:  append(primaries, supervising...),
		ResidentLoad: residentLoad,
		FacultyLoad:  facultyLoad,
		Gaps:         append(gaps, facultyGaps...),
	}, nil
}

// assignResidents gives every weekday block one primary resident, most
// constrained blocks first. load tracks assignments per resident ID and is
// mutated as the pass proceeds.
func (e *Engine) assignResidents(load map[string]int) ([]model.Assignment, []CoverageGap) {
	// Step 1: order weekday blocks by scarcity so the hardest to fill are
	// assigned while the most candidates remain.
	type rankedBlock struct {
		block    model.Block
		eligible []model.Person
	}
	var ranked []rankedBlock
	for _, b := range e.sc.Blocks {
		if b.IsWeekend {
			continue
		}
		ranked = append(ranked, rankedBlock{block: b, eligible: e.sc.eligibleResidents(b.ID)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if len(ranked[i].eligible) != len(ranked[j].eligible) {
			return len(ranked[i].eligible) < len(ranked[j].eligible)
		}
		if !ranked[i].block.Date.Equal(ranked[j].block.Date) {
			return ranked[i].block.Date.Before(ranked[j].block.Date)
		}
		return ranked[i].block.Session < ranked[j].block.Session
	})

	templateID := e.defaultTemplateID()

	// Step 2: assign the least-loaded eligible resident to each block.
	var assignments []model.Assignment
	var gaps []CoverageGap
	for _, rb := range ranked {
		if len(rb.eligible) == 0 {
			gaps = append(gaps, CoverageGap{
				BlockID: rb.block.ID,
				Date:    rb.block.Date,
				Session: rb.block.Session,
				Reason:  GapNoEligibleResident,
			})
			continue
		}

		pick := leastLoaded(rb.eligible, load)
		assignments = append(assignments, model.Assignment{
			PersonID:           pick.ID,
			BlockID:            rb.block.ID,
			RotationTemplateID: templateID,
			Role:               model.RolePrimary,
		})
		load[pick.ID]++
	}
	return assignments, gaps
}

// assignFaculty staffs supervising faculty onto every block that received
// primaries, sized to the seniority mix of its residents. load tracks
// supervising assignments per faculty ID and is mutated as the pass proceeds.
func (e *Engine) assignFaculty(primaries []model.Assignment, load map[string]int) ([]model.Assignment, []CoverageGap) {
	// Step 1: group the primaries by block.
	byBlock := make(map[string][]model.Assignment, len(primaries))
	for _, a := range primaries {
		byBlock[a.BlockID] = append(byBlock[a.BlockID], a)
	}

	// Step 2: walk blocks in calendar order and fill each block's required
	// slots from the least-loaded available faculty.
	var assignments []model.Assignment
	var gaps []CoverageGap
	for _, b := range e.sc.Blocks {
		staffed := byBlock[b.ID]
		if len(staffed) == 0 {
			continue
		}

		required := e.requiredFaculty(staffed)
		eligible := e.sc.eligibleFaculty(b.ID)
		sort.Slice(eligible, func(i, j int) bool {
			if load[eligible[i].ID] != load[eligible[j].ID] {
				return load[eligible[i].ID] < load[eligible[j].ID]
			}
			return eligible[i].ID < eligible[j].ID
		})
		if len(eligible) > required {
			eligible = eligible[:required]
		}

		for _, f := range eligible {
			assignments = append(assignments, model.Assignment{
				PersonID: f.ID,
				BlockID:  b.ID,
				Role:     model.RoleSupervising,
			})
			load[f.ID]++
		}

		if len(eligible) < required {
			gaps = append(gaps, CoverageGap{
				BlockID: b.ID,
				Date:    b.Date,
				Session: b.Session,
				Reason:  GapFacultyShortfall,
				Missing: required - len(eligible),
			})
		}
	}
	return assignments, gaps
}

// requiredFaculty returns the supervising headcount for a block's primaries:
// one faculty per two PGY-1 residents plus one per four senior residents,
// each rounded up, never below one.
func (e *Engine) requiredFaculty(primaries []model.Assignment) int {
	var pgy1, senior int
	for _, a := range primaries {
		if i, ok := e.sc.ResidentIndex[a.PersonID]; ok && e.sc.Residents[i].PGYLevel == 1 {
			pgy1++
		} else {
			senior++
		}
	}
	required := ceilDiv(pgy1, 2) + ceilDiv(senior, 4)
	if required < 1 {
		required = 1
	}
	return required
}

// defaultTemplateID returns the first rotation template open to every
// resident, or empty when all templates require a procedure credential.
func (e *Engine) defaultTemplateID() string {
	for _, t := range e.sc.Templates {
		if !t.RequiresProcedureCredential {
			return t.ID
		}
	}
	return ""
}

// leastLoaded returns the candidate with the fewest assignments so far,
// breaking ties by smallest person ID.
func leastLoaded(candidates []model.Person, load map[string]int) model.Person {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if load[c.ID] < load[best.ID] || (load[c.ID] == load[best.ID] && c.ID < best.ID) {
			best = c
		}
	}
	return best
}

// ceilDiv returns n divided by d, rounded up.
func ceilDiv(n, d int) int {
	if n == 0 {
		return 0
	}
	return (n + d - 1) / d
}
