package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/compliance"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/scheduler"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// ValidateScheduleResult contains the compliance findings for a stored horizon
type ValidateScheduleResult struct {
	HorizonStart time.Time
	HorizonEnd   time.Time
	Assignments  int
	People       int
	Violations   []compliance.Violation
	CountByRule  map[string]int
	Score        float64
}

// Clean reports whether the horizon passed every compliance rule
func (r *ValidateScheduleResult) Clean() bool {
	return len(r.Violations) == 0
}

// ValidateScheduleStore defines the database operations needed for validation
type ValidateScheduleStore interface {
	GetAssignmentsBetween(ctx context.Context, start, end time.Time) ([]db.Assignment, error)
	GetBlocksBetween(ctx context.Context, start, end time.Time) ([]db.Block, error)
}

// ValidateSchedule re-checks the stored assignments in a horizon against the
// duty-hour and rest-day rules. Read-only; nothing is mutated.
func ValidateSchedule(
	ctx context.Context,
	database ValidateScheduleStore,
	logger *zap.Logger,
	start, end time.Time,
) (*ValidateScheduleResult, error) {
	logger.Debug("Starting validateSchedule",
		zap.Time("start", start),
		zap.Time("end", end))

	if end.Before(start) {
		return nil, fmt.Errorf("invalid horizon: %w", scheduler.ErrInvalidHorizon)
	}

	// Step 1: DB queries - fetch stored assignments and their blocks
	logger.Debug("Fetching assignments in horizon")
	assignments, err := database.GetAssignmentsBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	logger.Debug("Found assignments", zap.Int("count", len(assignments)))

	logger.Debug("Fetching blocks in horizon")
	blocks, err := database.GetBlocksBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}
	logger.Debug("Found blocks", zap.Int("count", len(blocks)))

	// Step 2: Run the compliance rules
	report, err := compliance.Validate(convertToModelAssignments(assignments), convertToModelBlocks(blocks))
	if err != nil {
		return nil, fmt.Errorf("failed to check compliance: %w", err)
	}

	for _, violation := range report.Violations {
		logger.Warn("Compliance violation",
			zap.String("rule", violation.Rule),
			zap.String("person_id", violation.PersonID),
			zap.String("detail", violation.Detail))
	}

	people := distinctPersonCount(assignments)
	score := ComplianceScore(len(report.Violations), people, horizonWeeks(start, end))

	logger.Info("Validation completed",
		zap.Int("assignments", len(assignments)),
		zap.Int("people", people),
		zap.Int("violations", len(report.Violations)),
		zap.Float64("score", score))

	return &ValidateScheduleResult{
		HorizonStart: start,
		HorizonEnd:   end,
		Assignments:  len(assignments),
		People:       people,
		Violations:   report.Violations,
		CountByRule:  report.CountByRule(),
		Score:        score,
	}, nil
}
