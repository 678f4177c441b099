package db

import (
	"context"
	"time"
)

// PersonStore defines the interface for person database operations
type PersonStore interface {
	GetPeople(ctx context.Context) ([]Person, error)
	UpsertPeople(people []Person) error
}

// Database defines the interface for all database operations.
// postgres.DB is the only implementation.
type Database interface {
	GetPeople(ctx context.Context) ([]Person, error)
	UpsertPeople(people []Person) error
	GetAbsencesOverlapping(ctx context.Context, start, end time.Time) ([]Absence, error)
	InsertAbsences(absences []Absence) error
	GetRotationTemplates(ctx context.Context) ([]RotationTemplate, error)
	UpsertRotationTemplates(templates []RotationTemplate) error
	EnsureBlock(ctx context.Context, block Block) (Block, error)
	GetBlocksBetween(ctx context.Context, start, end time.Time) ([]Block, error)
	InsertScheduleRun(run *ScheduleRun) error
	GetScheduleRuns(ctx context.Context) ([]ScheduleRun, error)
	GetScheduleRun(ctx context.Context, runID string) (*ScheduleRun, error)
	InsertAssignments(assignments []Assignment) error
	GetAssignmentsByRun(ctx context.Context, runID string) ([]Assignment, error)
	GetAssignmentsBetween(ctx context.Context, start, end time.Time) ([]Assignment, error)
	WithRunLock(ctx context.Context, start, end time.Time, fn func(context.Context) error) error
}
