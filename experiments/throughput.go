package experiments

import (
	"fmt"
	"io"
	"time"

	"gambit/config"
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
	"gambit/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Throughput summarizes how fast the greedy bot decides.
type Throughput struct {
	Samples    int
	Candidates int
	Total      time.Duration
	Dir        string
}

// PerDecision is the mean decision time.
func (t Throughput) PerDecision() time.Duration {
	if t.Samples == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Samples)
}

// RunThroughputExperiment walks random playouts from the configured setup
// and times a greedy decision at every position until samples decisions
// were measured.
func RunThroughputExperiment(cfg *config.Config, samples int, progress io.Writer) (Throughput, error) {
	result := Throughput{}
	moveRecords := []metrics.MoveRecord{}
	greedy := searcher.NewGreedy(searcher.WithMetrics())
	walker := agent.NewRandomAgent(cfg.Duel.Seed)

	log.Info().Msgf("starting throughput experiment with %d samples...", samples)
	bar := newBar(progress, samples, "throughput")

	playout := 0
	var ms *game.MatchState
	for result.Samples < samples {
		if ms == nil || ms.Over() || ms.Turn >= cfg.Duel.MaxSteps {
			var err error
			if ms, err = cfg.NewMatch(); err != nil {
				return result, err
			}
			playout++
		}

		plan, search := greedy.FindPlan(ms)
		result.Samples++
		result.Candidates += search.Candidates
		result.Total += search.Duration
		moveRecords = append(moveRecords, metrics.MoveRecord{
			Game: playout,
			MoveMetric: metrics.MoveMetric{
				Step:         ms.Turn,
				Player:       ms.CurrentPlayer,
				Plan:         plan.String(),
				Hash:         ms.Hash(),
				SearchMetric: search,
			},
		})
		bar.Add(1)

		step, _ := walker.FindPlan(ms)
		next, _, err := ms.Play(step[0])
		if err != nil {
			return result, fmt.Errorf("random walk: %w", err)
		}
		ms = next
	}
	bar.Finish()

	log.Info().Msgf("completed throughput experiment: %d decisions, %v per decision", result.Samples, result.PerDecision())

	writer, err := metrics.NewWriter(cfg.Duel.OutputDir, "throughput")
	if err != nil {
		return result, err
	}
	result.Dir = writer.Dir()
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return result, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", result.Dir).Msg("stored move records")
	return result, nil
}
