package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/internal/config"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/compliance"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/scheduler"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// GenerateScheduleResult contains the outcome of one scheduling run
type GenerateScheduleResult struct {
	RunID        string
	Status       model.RunStatus
	Algorithm    string
	HorizonStart time.Time
	HorizonEnd   time.Time

	Assignments []model.Assignment
	Gaps        []scheduler.CoverageGap
	Violations  []compliance.Violation
	Complexity  scheduler.ComplexityReport

	// Blocks and People carry the display data for the assignments: block
	// dates and sessions, and person names.
	Blocks []model.Block
	People []model.Person

	ResidentLoad map[string]int
	FacultyLoad  map[string]int

	TotalBlocks int
	Runtime     time.Duration
	Saved       bool
}

// GenerateScheduleStore defines the database operations needed for a scheduling run
type GenerateScheduleStore interface {
	GetPeople(ctx context.Context) ([]db.Person, error)
	GetAbsencesOverlapping(ctx context.Context, start, end time.Time) ([]db.Absence, error)
	GetRotationTemplates(ctx context.Context) ([]db.RotationTemplate, error)
	EnsureBlock(ctx context.Context, block db.Block) (db.Block, error)
	InsertScheduleRun(run *db.ScheduleRun) error
	InsertAssignments(assignments []db.Assignment) error
	WithRunLock(ctx context.Context, start, end time.Time, fn func(context.Context) error) error
}

// GenerateScheduleOptions are the per-run knobs the CLI exposes. PGYLevels
// empty falls back to the configured default levels.
type GenerateScheduleOptions struct {
	Start        time.Time
	End          time.Time
	PGYLevels    []int
	DryRun       bool
	SkipOptimize bool
}

// GenerateSchedule runs the scheduling engine over the given horizon and
// records the outcome. Blocks are ensured for every open horizon date, the
// greedy engine fills them, compliance rules annotate the result, and the run
// record plus its assignments are saved unless dryRun is set. Concurrent runs
// over the same horizon serialize on the store's run lock.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateScheduleOptions,
) (*GenerateScheduleResult, error) {
	logger.Debug("Starting generateSchedule",
		zap.Time("start", opts.Start),
		zap.Time("end", opts.End),
		zap.Ints("pgy_levels", opts.PGYLevels),
		zap.Bool("dry_run", opts.DryRun),
		zap.Bool("skip_optimize", opts.SkipOptimize))

	if opts.End.Before(opts.Start) {
		return nil, fmt.Errorf("invalid horizon: %w", scheduler.ErrInvalidHorizon)
	}

	pgyLevels := opts.PGYLevels
	if len(pgyLevels) == 0 {
		pgyLevels = cfg.DefaultPGYLevels
	}

	// Step 1: Expand configured closure rules into concrete horizon dates
	closureDates, err := expandClosureDates(cfg.ClosureRules, opts.Start, opts.End, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to expand closure rules: %w", err)
	}
	logger.Debug("Expanded closure dates", zap.Int("count", len(closureDates)))

	// Step 2: DB queries - fetch roster, absences and templates
	logger.Debug("Fetching people")
	people, err := database.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	logger.Debug("Found people", zap.Int("count", len(people)))

	logger.Debug("Fetching absences overlapping horizon")
	absences, err := database.GetAbsencesOverlapping(ctx, opts.Start, opts.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch absences: %w", err)
	}
	logger.Debug("Found absences", zap.Int("count", len(absences)))

	logger.Debug("Fetching rotation templates")
	templates, err := database.GetRotationTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rotation templates: %w", err)
	}
	logger.Debug("Found rotation templates", zap.Int("count", len(templates)))

	started := time.Now()
	modelPeople := convertToModelPeople(people)
	var result *GenerateScheduleResult

	// Steps 3-9 ensure blocks and write the run record; the per-horizon run
	// lock keeps two runs over the same dates from interleaving.
	err = database.WithRunLock(ctx, opts.Start, opts.End, func(ctx context.Context) error {
		// Step 3: Build the scheduling context (blocks are ensured as a side effect)
		sc, err := scheduler.BuildContext(scheduler.ContextInput{
			People:       modelPeople,
			Absences:     convertToModelAbsences(absences),
			Templates:    convertToModelTemplates(templates),
			Blocks:       storeBlockSource{ctx: ctx, store: database, horizonStart: opts.Start},
			HorizonStart: opts.Start,
			HorizonEnd:   opts.End,
			PGYLevels:    pgyLevels,
			ClosureDates: closureDates,
		})
		if err != nil {
			return fmt.Errorf("failed to build scheduling context: %w", err)
		}
		logger.Debug("Scheduling context built",
			zap.Int("residents", len(sc.Residents)),
			zap.Int("faculty", len(sc.Faculty)),
			zap.Int("blocks", len(sc.Blocks)),
			zap.Int("templates", len(sc.Templates)))

		// Step 4: Optionally drop residents and blocks the run can never use
		if !opts.SkipOptimize {
			sc = scheduler.OptimizeContext(sc)
			logger.Debug("Optimized scheduling context",
				zap.Int("residents", len(sc.Residents)),
				zap.Int("blocks", len(sc.Blocks)))
		}

		// Step 5: Estimate problem complexity (advisory, never blocks the run)
		report := scheduler.EstimateComplexity(scheduler.SummarizeContext(sc))
		logger.Info("Estimated scheduling complexity",
			zap.Float64("score", report.Score),
			zap.Int("variables", report.Variables),
			zap.Int("constraints", report.Constraints),
			zap.String("recommended_strategy", report.RecommendedStrategy),
			zap.Bool("alternate_recommended", report.AlternateRecommended))

		// Step 6: Select the solver strategy
		registry := scheduler.NewStrategyRegistry()
		strategy, ok := registry.Select(cfg.DefaultAlgorithm)
		if !ok {
			logger.Info("Strategy not implemented, falling back to greedy",
				zap.String("requested", cfg.DefaultAlgorithm))
		}
		if report.RecommendedStrategy != strategy.Name() {
			logger.Info("Estimator recommends a different strategy",
				zap.String("recommended", report.RecommendedStrategy),
				zap.String("selected", strategy.Name()))
		}

		// Step 7: Solve
		logger.Info("Running scheduling engine", zap.String("strategy", strategy.Name()))
		outcome, err := strategy.Solve(ctx, sc)
		if err != nil {
			if errors.Is(err, scheduler.ErrNoEligibleResidents) {
				logger.Warn("No eligible residents for horizon, nothing recorded",
					zap.Time("start", opts.Start),
					zap.Time("end", opts.End))
				result = &GenerateScheduleResult{
					Status:       model.RunFailed,
					Algorithm:    strategy.Name(),
					HorizonStart: opts.Start,
					HorizonEnd:   opts.End,
					Complexity:   report,
					Blocks:       sc.Blocks,
					People:       modelPeople,
					TotalBlocks:  len(sc.Blocks),
					Runtime:      time.Since(started),
				}
				return nil
			}
			return fmt.Errorf("scheduling failed: %w", err)
		}

		logger.Info("Scheduling completed",
			zap.Int("assignments", len(outcome.Assignments)),
			zap.Int("gaps", len(outcome.Gaps)))

		for _, gap := range outcome.Gaps {
			logger.Warn("Coverage gap",
				zap.String("block_id", gap.BlockID),
				zap.String("date", gap.Date.Format("2006-01-02")),
				zap.String("session", string(gap.Session)),
				zap.String("reason", gap.Reason),
				zap.Int("missing", gap.Missing))
		}

		// Step 8: Check duty-hour and rest-day compliance
		complianceReport, err := compliance.Validate(outcome.Assignments, sc.Blocks)
		if err != nil {
			return fmt.Errorf("failed to check compliance: %w", err)
		}
		for _, violation := range complianceReport.Violations {
			logger.Warn("Compliance violation",
				zap.String("rule", violation.Rule),
				zap.String("person_id", violation.PersonID),
				zap.String("detail", violation.Detail))
		}

		status := deriveRunStatus(outcome, complianceReport)
		runtime := time.Since(started)

		// Step 9: Persist the run record and its assignments
		shouldSave := !opts.DryRun
		runID := ""
		if shouldSave {
			run := &db.ScheduleRun{
				ID:             uuid.New().String(),
				Algorithm:      strategy.Name(),
				Status:         string(status),
				HorizonStart:   model.Date(opts.Start),
				HorizonEnd:     model.Date(opts.End),
				TotalAssigned:  len(outcome.Assignments),
				TotalBlocks:    len(sc.Blocks),
				ViolationCount: len(complianceReport.Violations),
				RuntimeMS:      runtime.Milliseconds(),
			}
			if err := database.InsertScheduleRun(run); err != nil {
				return fmt.Errorf("failed to save schedule run: %w", err)
			}
			if err := database.InsertAssignments(convertToDBAssignments(run.ID, outcome.Assignments)); err != nil {
				return fmt.Errorf("failed to save assignments: %w", err)
			}
			runID = run.ID
			logger.Info("Schedule run saved",
				zap.String("run_id", run.ID),
				zap.String("status", string(status)),
				zap.Int("assignments", len(outcome.Assignments)))
		} else {
			logger.Info("Dry run mode - schedule not saved")
		}

		result = &GenerateScheduleResult{
			RunID:        runID,
			Status:       status,
			Algorithm:    strategy.Name(),
			HorizonStart: opts.Start,
			HorizonEnd:   opts.End,
			Assignments:  outcome.Assignments,
			Gaps:         outcome.Gaps,
			Violations:   complianceReport.Violations,
			Complexity:   report,
			Blocks:       sc.Blocks,
			People:       modelPeople,
			ResidentLoad: outcome.ResidentLoad,
			FacultyLoad:  outcome.FacultyLoad,
			TotalBlocks:  len(sc.Blocks),
			Runtime:      runtime,
			Saved:        shouldSave,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// storeBlockSource adapts the store's idempotent block upsert to the
// scheduler's BlockSource contract, binding the run context and the horizon
// start the block numbering is anchored to.
type storeBlockSource struct {
	ctx          context.Context
	store        BlockEnsurer
	horizonStart time.Time
}

// BlockEnsurer is the single store operation the block source needs
type BlockEnsurer interface {
	EnsureBlock(ctx context.Context, block db.Block) (db.Block, error)
}

func (s storeBlockSource) EnsureBlock(date time.Time, session model.Session) (model.Block, error) {
	stored, err := s.store.EnsureBlock(s.ctx, db.Block{
		ID:          uuid.New().String(),
		Date:        model.Date(date),
		Session:     string(session),
		BlockNumber: scheduler.BlockNumberFor(s.horizonStart, date),
		IsWeekend:   model.IsWeekendDate(date),
	})
	if err != nil {
		return model.Block{}, err
	}
	return convertToModelBlock(stored), nil
}

// convertToDBAssignments converts engine assignments to database records,
// minting fresh ids under the recording run
func convertToDBAssignments(runID string, assignments []model.Assignment) []db.Assignment {
	records := make([]db.Assignment, len(assignments))
	for i, assignment := range assignments {
		records[i] = db.Assignment{
			ID:                 uuid.New().String(),
			RunID:              runID,
			PersonID:           assignment.PersonID,
			BlockID:            assignment.BlockID,
			RotationTemplateID: assignment.RotationTemplateID,
			Role:               string(assignment.Role),
		}
	}
	return records
}
