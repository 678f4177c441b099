package model

import "time"

type PersonKind string

const (
	KindResident PersonKind = "resident"
	KindFaculty  PersonKind = "faculty"
)

func (k PersonKind) IsValid() bool {
	return k == KindResident || k == KindFaculty
}

// Person represents a resident or faculty member
type Person struct {
	ID        string
	FirstName string
	LastName  string
	Kind      PersonKind
	PGYLevel  int    // Residents only; 0 for faculty
	Role      string // Faculty only, e.g. "attending"; empty for residents
	Active    bool
}

// IsResident reports whether the person is a trainee
func (p Person) IsResident() bool {
	return p.Kind == KindResident
}

type Session string

const (
	SessionAM Session = "AM"
	SessionPM Session = "PM"
)

func (s Session) IsValid() bool {
	return s == SessionAM || s == SessionPM
}

// Block is an atomic half-day scheduling unit tied to a calendar date.
// At most one block exists per (date, session) pair.
type Block struct {
	ID          string
	Date        time.Time // UTC midnight
	Session     Session
	BlockNumber int // 28-day period index from the horizon start, 1-based
	IsWeekend   bool
}

// Absence marks a person as unavailable between StartDate and EndDate
// inclusive. ReplacementActivity labels what they are doing instead.
type Absence struct {
	PersonID            string
	StartDate           time.Time
	EndDate             time.Time
	ReplacementActivity string
}

// Covers reports whether the absence spans the given date
func (a Absence) Covers(date time.Time) bool {
	return !date.Before(a.StartDate) && !date.After(a.EndDate)
}

// RotationTemplate is a reusable definition of a duty activity
type RotationTemplate struct {
	ID                          string
	Name                        string
	RequiresProcedureCredential bool
}

type AssignmentRole string

const (
	RolePrimary     AssignmentRole = "primary"
	RoleSupervising AssignmentRole = "supervising"
)

func (r AssignmentRole) IsValid() bool {
	return r == RolePrimary || r == RoleSupervising
}

// Assignment places one person on one block. RotationTemplateID is empty
// for supervising assignments and for primaries when no template qualified.
// Persistence identifiers are attached when a run is recorded, not here.
type Assignment struct {
	PersonID           string
	BlockID            string
	RotationTemplateID string
	Role               AssignmentRole
}

type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunPartial RunStatus = "partial"
	RunFailed  RunStatus = "failed"
)

// RunSummary is the append-only audit record of one scheduling run
type RunSummary struct {
	RunID          string
	Algorithm      string
	Status         RunStatus
	TotalAssigned  int
	TotalBlocks    int
	ViolationCount int
	Runtime        time.Duration
}

// Date normalizes t to UTC midnight so block and absence dates compare
// by calendar day regardless of how the input was parsed.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekendDate reports whether the date falls on Saturday or Sunday
func IsWeekendDate(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
