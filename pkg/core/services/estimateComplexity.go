package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/internal/config"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/scheduler"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// EstimateComplexityResult pairs the complexity report with the problem
// shape it was computed from
type EstimateComplexityResult struct {
	HorizonStart time.Time
	HorizonEnd   time.Time
	Summary      scheduler.ComplexitySummary
	Report       scheduler.ComplexityReport
}

// EstimateComplexityStore defines the database operations needed for estimation
type EstimateComplexityStore interface {
	GetPeople(ctx context.Context) ([]db.Person, error)
	GetAbsencesOverlapping(ctx context.Context, start, end time.Time) ([]db.Absence, error)
	GetRotationTemplates(ctx context.Context) ([]db.RotationTemplate, error)
}

// EstimateComplexity sizes the scheduling problem for a horizon without
// solving it. Blocks are generated in memory, so the store is never written.
func EstimateComplexity(
	ctx context.Context,
	database EstimateComplexityStore,
	cfg *config.Config,
	logger *zap.Logger,
	start, end time.Time,
	pgyLevels []int,
) (*EstimateComplexityResult, error) {
	logger.Debug("Starting estimateComplexity",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Ints("pgy_levels", pgyLevels))

	if end.Before(start) {
		return nil, fmt.Errorf("invalid horizon: %w", scheduler.ErrInvalidHorizon)
	}

	if len(pgyLevels) == 0 {
		pgyLevels = cfg.DefaultPGYLevels
	}

	// Step 1: Expand configured closure rules into concrete horizon dates
	closureDates, err := expandClosureDates(cfg.ClosureRules, start, end, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to expand closure rules: %w", err)
	}

	// Step 2: DB queries - fetch roster, absences and templates
	logger.Debug("Fetching people")
	people, err := database.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}

	logger.Debug("Fetching absences overlapping horizon")
	absences, err := database.GetAbsencesOverlapping(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}

	logger.Debug("Fetching rotation templates")
	templates, err := database.GetRotationTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rotation templates: %w", err)
	}

	// Step 3: Build an in-memory scheduling context and size it
	sc, err := scheduler.BuildContext(scheduler.ContextInput{
		People:       convertToModelPeople(people),
		Absences:     convertToModelAbsences(absences),
		Templates:    convertToModelTemplates(templates),
		HorizonStart: start,
		HorizonEnd:   end,
		PGYLevels:    pgyLevels,
		ClosureDates: closureDates,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build scheduling context: %w", err)
	}

	summary := scheduler.SummarizeContext(sc)
	report := scheduler.EstimateComplexity(summary)

	logger.Info("Estimated scheduling complexity",
		zap.Float64("score", report.Score),
		zap.Int("variables", report.Variables),
		zap.Int("constraints", report.Constraints),
		zap.Float64("sparsity", report.Sparsity),
		zap.String("recommended_strategy", report.RecommendedStrategy),
		zap.Bool("alternate_recommended", report.AlternateRecommended))

	return &EstimateComplexityResult{
		HorizonStart: start,
		HorizonEnd:   end,
		Summary:      summary,
		Report:       report,
	}, nil
}
