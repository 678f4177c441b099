package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// ViewRunsStore defines the database operations needed for run history
type ViewRunsStore interface {
	GetScheduleRuns(ctx context.Context) ([]db.ScheduleRun, error)
	GetScheduleRun(ctx context.Context, runID string) (*db.ScheduleRun, error)
	GetAssignmentsByRun(ctx context.Context, runID string) ([]db.Assignment, error)
}

// RunDetail pairs a run record with the assignments it recorded
type RunDetail struct {
	Run         *db.ScheduleRun
	Assignments []db.Assignment
}

// ViewRuns returns the stored run history, newest first
func ViewRuns(ctx context.Context, database ViewRunsStore, logger *zap.Logger) ([]db.ScheduleRun, error) {
	logger.Debug("Fetching schedule runs")
	runs, err := database.GetScheduleRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule runs: %w", err)
	}
	logger.Debug("Found schedule runs", zap.Int("count", len(runs)))

	return runs, nil
}

// ViewRun returns one run record and its stored assignments
func ViewRun(ctx context.Context, database ViewRunsStore, logger *zap.Logger, runID string) (*RunDetail, error) {
	logger.Debug("Fetching schedule run", zap.String("run_id", runID))
	run, err := database.GetScheduleRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule run: %w", err)
	}

	assignments, err := database.GetAssignmentsByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for run: %w", err)
	}
	logger.Debug("Found assignments for run",
		zap.String("run_id", runID),
		zap.Int("count", len(assignments)))

	return &RunDetail{
		Run:         run,
		Assignments: assignments,
	}, nil
}
