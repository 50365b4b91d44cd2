package agent

import (
	"time"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that picks uniformly among the
// legal actions. The same seed replays the same choices.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindPlan(ms *game.MatchState) (searcher.Plan, metrics.SearchMetric) {
	start := time.Now()
	actions := ms.LegalActions()
	metric := metrics.SearchMetric{Candidates: len(actions)}
	if len(actions) == 0 {
		metric.Duration = time.Since(start)
		return searcher.Plan{game.Pass()}, metric
	}
	chosen := actions[a.rng.Intn(len(actions))]
	metric.Duration = time.Since(start)
	return searcher.Plan{chosen}, metric
}
