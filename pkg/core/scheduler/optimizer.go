package scheduler

import (
	"fmt"
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/core/model"
)

// OptimizeContext returns a reduced copy of the context with unusable inputs
// removed: residents left with no available weekday block, then blocks no
// remaining resident is available for. Applying it to its own output changes
// nothing. The original context is not modified.
func OptimizeContext(sc *SchedulingContext) *SchedulingContext {
	// Step 1: drop residents with no available weekday block. The resident
	// pass never touches weekends, so weekend availability keeps nobody in.
	residents := make([]model.Person, 0, len(sc.Residents))
	for _, r := range sc.Residents {
		for _, b := range sc.Blocks {
			if !b.IsWeekend && sc.Matrix.IsAvailable(r.ID, b.ID) {
				residents = append(residents, r)
				break
			}
		}
	}

	// Step 2: drop blocks no remaining resident is available for.
	blocks := make([]model.Block, 0, len(sc.Blocks))
	for _, b := range sc.Blocks {
		for _, r := range residents {
			if sc.Matrix.IsAvailable(r.ID, b.ID) {
				blocks = append(blocks, b)
				break
			}
		}
	}

	return &SchedulingContext{
		Residents:     residents,
		Faculty:       sc.Faculty,
		Blocks:        blocks,
		Templates:     sc.Templates,
		Matrix:        sc.Matrix,
		HorizonStart:  sc.HorizonStart,
		HorizonEnd:    sc.HorizonEnd,
		ResidentIndex: personIndex(residents),
		FacultyIndex:  sc.FacultyIndex,
		BlockIndex:    blockIndex(blocks),
		TemplateIndex: sc.TemplateIndex,
	}
}

// FeasiblePair is a resident/block pairing the engine is allowed to make.
type FeasiblePair struct {
	ResidentID string
	BlockID    string
}

// PruneInfeasibleAssignments enumerates the feasible resident/block pairs for
// the resident pass: weekday blocks only, availability respected. Pairs with
// no matrix entry count as available.
func PruneInfeasibleAssignments(sc *SchedulingContext) []FeasiblePair {
	var pairs []FeasiblePair
	for _, r := range sc.Residents {
		for _, b := range sc.Blocks {
			if b.IsWeekend || !sc.Matrix.IsAvailable(r.ID, b.ID) {
				continue
			}
			pairs = append(pairs, FeasiblePair{ResidentID: r.ID, BlockID: b.ID})
		}
	}
	return pairs
}

// ClusterMode selects the grouping key for ClusterSimilarBlocks.
type ClusterMode string

const (
	ClusterByWeek        ClusterMode = "week"
	ClusterByMonth       ClusterMode = "month"
	ClusterByBlockNumber ClusterMode = "block_number"
	ClusterByDay         ClusterMode = "day"
)

// ClusterSimilarBlocks groups the context's blocks by the given mode. Keys
// are ISO weeks ("2025-W14"), months ("2025-04"), 28-day periods
// ("period-2"), or single dates ("2025-04-03").
func ClusterSimilarBlocks(sc *SchedulingContext, mode ClusterMode) (map[string][]model.Block, error) {
	switch mode {
	case ClusterByWeek, ClusterByMonth, ClusterByBlockNumber, ClusterByDay:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownClusterMode, mode)
	}

	clusters := make(map[string][]model.Block)
	for _, b := range sc.Blocks {
		var key string
		switch mode {
		case ClusterByWeek:
			year, week := b.Date.ISOWeek()
			key = fmt.Sprintf("%d-W%02d", year, week)
		case ClusterByMonth:
			key = b.Date.Format("2006-01")
		case ClusterByBlockNumber:
			key = fmt.Sprintf("period-%d", b.BlockNumber)
		case ClusterByDay:
			key = b.Date.Format(time.DateOnly)
		}
		clusters[key] = append(clusters[key], b)
	}
	return clusters, nil
}
