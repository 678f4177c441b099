package db

import "time"

// Person represents a database person record
type Person struct {
	ID        string
	FirstName string
	LastName  string
	Kind      string
	PGYLevel  int
	Role      string
	Active    bool
}

// Absence represents a database absence record
type Absence struct {
	ID                  string
	PersonID            string
	StartDate           time.Time
	EndDate             time.Time
	ReplacementActivity string
}

// Block represents a database block record. (Date, Session) is unique; the
// block number is fixed at first insert.
type Block struct {
	ID          string
	Date        time.Time
	Session     string
	BlockNumber int
	IsWeekend   bool
}

// RotationTemplate represents a database rotation template record
type RotationTemplate struct {
	ID                          string
	Name                        string
	RequiresProcedureCredential bool
}

// ScheduleRun represents a database schedule run record
type ScheduleRun struct {
	ID             string
	Algorithm      string
	Status         string
	HorizonStart   time.Time
	HorizonEnd     time.Time
	TotalAssigned  int
	TotalBlocks    int
	ViolationCount int
	RuntimeMS      int64
	CreatedAt      time.Time
}

// Assignment represents a database assignment record
type Assignment struct {
	ID                 string
	RunID              string
	PersonID           string
	BlockID            string
	RotationTemplateID string
	Role               string
}
