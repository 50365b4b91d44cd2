package experiments

import (
	"fmt"
	"io"

	"gambit/config"
	"gambit/engine"
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/searcher"
	"gambit/searcher/agent"

	"github.com/logrusorgru/aurora"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Summary is the outcome of a duel.
type Summary struct {
	Games     int
	GoldWins  int
	BlackWins int
	Undecided int
	Dir       string
}

func (s Summary) String() string {
	return fmt.Sprintf("%d games: Gold %d, Black %d, undecided %d",
		s.Games, aurora.Yellow(s.GoldWins), aurora.Cyan(s.BlackWins), s.Undecided)
}

// RunDuel plays cfg.Duel.Games matches between the configured Gold and Black
// agents and stores the records under cfg.Duel.OutputDir. Progress is drawn
// on progress; pass io.Discard to keep quiet.
func RunDuel(cfg *config.Config, progress io.Writer) (Summary, error) {
	duel := cfg.Duel
	summary := Summary{Games: duel.Games}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	matchRecords := []metrics.MatchRecord{}
	rng := rand.New(rand.NewSource(duel.Seed))

	log.Info().Msgf("starting duel between agent1=%+v and agent2=%+v...", duel.Gold, duel.Black)
	bar := newBar(progress, duel.Games, "duel")

	for i := 0; i < duel.Games; i++ {
		ms, err := newDuelMatch(cfg, rng)
		if err != nil {
			return summary, err
		}
		gold := newAgent(duel.Gold, i)
		black := newAgent(duel.Black, i)
		e := engine.NewLocalEngine(ms, gold, black, engine.WithMaxSteps(duel.MaxSteps))

		winner, gameMetric, moveMetrics := e.Run()
		switch winner {
		case game.Gold:
			summary.GoldWins++
		case game.Black:
			summary.BlackWins++
		default:
			summary.Undecided++
		}

		record := metrics.GameRecord{
			ID:         i + 1,
			Agent1:     duel.Gold.ID,
			Agent2:     duel.Black.ID,
			GameMetric: gameMetric,
		}
		gameRecords = append(gameRecords, record)
		matchRecords = append(matchRecords, metrics.MatchRecord{GameRecord: record, Final: e.State})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       record.ID,
				MoveMetric: mm,
			})
		}
		log.Debug().Msgf("completed game %d of %d with winner: %q", i+1, duel.Games, winner)
		bar.Add(1)
	}
	bar.Finish()

	log.Info().Msgf("completed duel: %s", summary)

	writer, err := metrics.NewWriter(duel.OutputDir, "duel")
	if err != nil {
		return summary, err
	}
	summary.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs([]metrics.AgentConfig{duel.Gold, duel.Black}); err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteMatches(matchRecords); err != nil {
		return summary, fmt.Errorf("failed to write matches: %w", err)
	}
	log.Info().Str("dir", summary.Dir).Msg("stored duel records")
	return summary, nil
}

// newDuelMatch builds the configured match, shuffling deck slots when asked.
func newDuelMatch(cfg *config.Config, rng *rand.Rand) (*game.MatchState, error) {
	if !cfg.Duel.Shuffle {
		return cfg.NewMatch()
	}
	shuffled := *cfg
	shuffled.Players.Gold.Deck = shuffle(rng, cfg.Players.Gold.Deck)
	shuffled.Players.Black.Deck = shuffle(rng, cfg.Players.Black.Deck)
	return shuffled.NewMatch()
}

func shuffle(rng *rand.Rand, deck []string) []string {
	out := append([]string(nil), deck...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// newAgent builds a fresh agent per game. Random agents get a per-game seed
// so the duel is reproducible but games differ.
func newAgent(ac metrics.AgentConfig, index int) agent.Agent {
	if ac.Kind == "random" {
		return agent.NewRandomAgent(ac.Seed + uint64(index))
	}
	options := []searcher.Option{searcher.WithMetrics()}
	if !ac.Bonuses {
		options = append(options, searcher.WithBonuses(searcher.Bonuses{}))
	}
	return agent.NewEvaluationAgent(searcher.NewGreedy(options...))
}
