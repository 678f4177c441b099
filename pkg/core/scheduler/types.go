package scheduler

import (
	"errors"
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/availability"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// Sentinel errors for contract violations. "No eligible candidate for a
// block" is never an error; it surfaces as a CoverageGap instead.
var (
	// ErrInvalidHorizon is returned when the horizon end precedes its start.
	ErrInvalidHorizon = errors.New("schedule horizon end precedes start")

	// ErrNoEligibleResidents is returned before any assignment is attempted
	// when context filtering leaves zero residents.
	ErrNoEligibleResidents = errors.New("no eligible residents in scheduling context")

	// ErrUnknownClusterMode is returned for an unrecognized block clustering mode.
	ErrUnknownClusterMode = errors.New("unknown block cluster mode")
)

// BlockSource is the idempotent block-ensure-exists contract. Implementations
// must return the same block for repeated (date, session) calls, with a
// BlockNumber that advances every 28 days from the horizon start.
type BlockSource interface {
	EnsureBlock(date time.Time, session model.Session) (model.Block, error)
}

// ContextInput carries everything needed to build a SchedulingContext.
type ContextInput struct {
	// People is the full roster; inactive people and non-matching PGY levels
	// are filtered during the build.
	People []model.Person

	// Absences overlapping the horizon, in store order.
	Absences []model.Absence

	// Templates are the rotation templates available for primary assignments.
	Templates []model.RotationTemplate

	// Blocks ensures blocks exist for the horizon dates.
	Blocks BlockSource

	HorizonStart time.Time
	HorizonEnd   time.Time

	// PGYLevels optionally restricts residents to the given seniority years.
	// Empty means all levels.
	PGYLevels []int

	// ClosureDates are days with no clinical sessions; no blocks are
	// generated for them.
	ClosureDates []time.Time
}

// SchedulingContext aggregates the inputs of one scheduling run. It is
// exclusively owned by the run that built it and is discarded afterwards;
// nothing here is safe for concurrent use.
type SchedulingContext struct {
	Residents []model.Person
	Faculty   []model.Person
	Blocks    []model.Block
	Templates []model.RotationTemplate
	Matrix    availability.Matrix

	HorizonStart time.Time
	HorizonEnd   time.Time

	// Index maps for O(1) id lookup into the slices above.
	ResidentIndex map[string]int
	FacultyIndex  map[string]int
	BlockIndex    map[string]int
	TemplateIndex map[string]int
}

// Coverage gap reasons.
const (
	GapNoEligibleResident = "no eligible resident"
	GapFacultyShortfall   = "faculty shortfall"
)

// CoverageGap records a block the best-effort pass could not fully staff.
// Gaps are data, not errors; the run continues past them.
type CoverageGap struct {
	BlockID string
	Date    time.Time
	Session model.Session
	Reason  string
	// Missing is the number of supervising slots left unfilled; zero for
	// resident gaps, where the whole block is empty.
	Missing int
}

// Result is the outcome of one engine run. ResidentLoad and FacultyLoad are
// the explicit running counters the passes threaded through the run, keyed by
// person ID.
type Result struct {
	Assignments  []model.Assignment
	ResidentLoad map[string]int
	FacultyLoad  map[string]int
	Gaps         []CoverageGap
}

// Primaries returns only the primary (resident) assignments.
func (r *Result) Primaries() []model.Assignment {
	out := make([]model.Assignment, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		if a.Role == model.RolePrimary {
			out = append(out, a)
		}
	}
	return out
}

// Supervising returns only the supervising (faculty) assignments.
func (r *Result) Supervising() []model.Assignment {
	out := make([]model.Assignment, 0, len(r.Assignments))
	for _, a := range r.Assignments {
		if a.Role == model.RoleSupervising {
			out = append(out, a)
		}
	}
	return out
}
