package scheduler

import "context"

// SolverStrategy is a pluggable solver over a scheduling context. Richer
// strategies may be recommended by complexity estimation before they exist
// here, so the registry resolves unknown names to a fallback rather than
// failing the run.
type SolverStrategy interface {
	Name() string
	Solve(ctx context.Context, sc *SchedulingContext) (*Result, error)
}

// GreedyStrategy wraps the two-pass greedy engine.
type GreedyStrategy struct{}

var _ SolverStrategy = (*GreedyStrategy)(nil)

func (GreedyStrategy) Name() string { return StrategyGreedy }

// Solve runs the greedy engine. The run is bounded by the context size, so
// ctx is not consulted mid-pass.
func (GreedyStrategy) Solve(_ context.Context, sc *SchedulingContext) (*Result, error) {
	return NewEngine(sc).Run()
}

// StrategyRegistry resolves strategy names to implementations.
type StrategyRegistry struct {
	strategies map[string]SolverStrategy
	fallback   SolverStrategy
}

// NewStrategyRegistry returns a registry with the greedy strategy registered
// and set as the fallback.
func NewStrategyRegistry() *StrategyRegistry {
	greedy := GreedyStrategy{}
	r := &StrategyRegistry{
		strategies: make(map[string]SolverStrategy),
		fallback:   greedy,
	}
	r.Register(greedy)
	return r
}

// Register adds or replaces a strategy under its own name.
func (r *StrategyRegistry) Register(s SolverStrategy) {
	r.strategies[s.Name()] = s
}

// Select returns the strategy registered under name. Unknown names resolve
// to the fallback with ok reporting false so callers can log the downgrade.
func (r *StrategyRegistry) Select(name string) (SolverStrategy, bool) {
	if s, ok := r.strategies[name]; ok {
		return s, true
	}
	return r.fallback, false
}
