package scheduler

import "math"

// Solver strategy names recommended by EstimateComplexity.
const (
	StrategyGreedy                = "greedy"
	StrategyLinear                = "linear"
	StrategyConstraintProgramming = "constraint-programming"
	StrategyHybrid                = "hybrid"
)

// ComplexitySummary is the immutable shape of a scheduling problem. Equal
// summaries always produce equal reports.
type ComplexitySummary struct {
	Residents   int
	Blocks      int
	Templates   int
	Sparsity    float64
	HorizonDays int
}

// SummarizeContext reduces a context to the numbers complexity estimation
// works from.
func SummarizeContext(sc *SchedulingContext) ComplexitySummary {
	ids := make([]string, 0, len(sc.Residents)+len(sc.Faculty))
	for _, r := range sc.Residents {
		ids = append(ids, r.ID)
	}
	for _, f := range sc.Faculty {
		ids = append(ids, f.ID)
	}

	return ComplexitySummary{
		Residents:   len(sc.Residents),
		Blocks:      len(sc.Blocks),
		Templates:   len(sc.Templates),
		Sparsity:    sc.Matrix.Sparsity(ids, sc.Blocks),
		HorizonDays: sc.HorizonDays(),
	}
}

// ComplexityReport scores a scheduling problem and recommends the cheapest
// solver strategy likely to handle it.
type ComplexityReport struct {
	Score                float64
	Variables            int
	Constraints          int
	Sparsity             float64
	RecommendedStrategy  string
	AlternateRecommended bool
}

// EstimateComplexity scores the problem described by sum. The score is a
// pure function of the summary, clamped to [0, 100]; a degenerate problem
// with no decision variables scores zero.
func EstimateComplexity(sum ComplexitySummary) ComplexityReport {
	variables := sum.Residents * sum.Blocks * sum.Templates
	constraints := sum.Residents*sum.Blocks + sum.Blocks +
		sum.Residents*ceilDiv(sum.HorizonDays, 7)*2

	var score float64
	if variables > 0 {
		size := math.Min(100, float64(variables)/10000*50)
		density := math.Min(50, float64(constraints)/float64(variables)*100)
		score = size + density - sum.Sparsity*20
		score = math.Max(0, math.Min(100, score))
	}

	return ComplexityReport{
		Score:                score,
		Variables:            variables,
		Constraints:          constraints,
		Sparsity:             sum.Sparsity,
		RecommendedStrategy:  recommendStrategy(score),
		AlternateRecommended: score >= 60 || variables > 50000,
	}
}

// recommendStrategy maps a complexity score onto a solver strategy name.
func recommendStrategy(score float64) string {
	switch {
	case score < 20:
		return StrategyGreedy
	case score < 50:
		return StrategyLinear
	case score < 75:
		return StrategyConstraintProgramming
	default:
		return StrategyHybrid
	}
}
