package agent

import (
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
)

type Agent interface {
	// FindPlan returns the actions to play for the current player and the
	// search metrics (if collected).
	FindPlan(ms *game.MatchState) (searcher.Plan, metrics.SearchMetric)
}
