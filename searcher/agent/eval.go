package agent

import (
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
)

type evaluationAgent struct {
	greedy *searcher.Greedy
}

// NewEvaluationAgent returns an agent that always plays the best scored plan.
func NewEvaluationAgent(greedy *searcher.Greedy) Agent {
	return evaluationAgent{greedy: greedy}
}

func (a evaluationAgent) FindPlan(ms *game.MatchState) (searcher.Plan, metrics.SearchMetric) {
	return a.greedy.FindPlan(ms)
}
