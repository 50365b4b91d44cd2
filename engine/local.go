package engine

import (
	"time"

	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/meta"
	"gambit/searcher"
	"gambit/searcher/agent"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// WithMaxSteps bounds the number of plans played before the match is
// abandoned without a winner.
func WithMaxSteps(steps int) Option {
	return func(e *LocalEngine) {
		if steps > 0 {
			e.maxSteps = steps
		}
	}
}

// LocalEngine plays a bot-vs-bot match in process.
type LocalEngine struct {
	State    *game.MatchState
	Agents   map[game.Player]agent.Agent
	maxSteps int
}

func NewLocalEngine(ms *game.MatchState, gold, black agent.Agent, options ...Option) *LocalEngine {
	if gold == nil || black == nil {
		panic("both seats need an agent")
	}
	e := &LocalEngine{
		State:    ms,
		Agents:   map[game.Player]agent.Agent{game.Gold: gold, game.Black: black},
		maxSteps: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until a winner is found.
func (e *LocalEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		MatchID:        e.State.ID,
		StartingPlayer: e.State.CurrentPlayer,
		StartTime:      time.Now(),
	}
	log.Info().Str("match", e.State.ID).Msgf("%s is starting", e.State.CurrentPlayer)

	var moveMetrics []metrics.MoveMetric
	step := 1
	for ; !e.State.Over() && step <= e.maxSteps; step++ {
		player := e.State.CurrentPlayer
		plan, search := e.Agents[player].FindPlan(e.State)
		played := e.playPlan(plan)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Plan:         played.String(),
			Hash:         e.State.Hash(),
			SearchMetric: search,
		})
		log.Debug().Str("match", e.State.ID).Stringer("player", player).Stringer("plan", played).Int("step", step).Msg("played")
	}

	if e.State.Over() {
		log.Info().Str("match", e.State.ID).Msgf("game ended with winner %s by %s", e.State.Winner(), e.State.WinReason)
	} else {
		log.Info().Str("match", e.State.ID).Msgf("stopped after %d steps (no winner yet)", e.maxSteps)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Winner = e.State.Winner()
	gameMetric.WinReason = e.State.WinReason
	gameMetric.TotalMoves = len(moveMetrics)
	return e.State.Winner(), gameMetric, moveMetrics
}

// playPlan applies the plan action by action. An agent that proposes an
// illegal action forfeits the rest of its plan and plays the first legal
// action instead.
func (e *LocalEngine) playPlan(plan searcher.Plan) searcher.Plan {
	var played searcher.Plan
	for _, a := range plan {
		next, _, err := e.State.Play(a)
		if err != nil {
			log.Warn().Err(err).Str("match", e.State.ID).Msg("agent returned an illegal action => forcing first legal action")
			fallback := e.State.LegalActions()
			if len(fallback) == 0 {
				panic("no legal actions at all")
			}
			next, _, err = e.State.Play(fallback[0])
			if err != nil {
				panic(err)
			}
			e.State = next
			return append(played, fallback[0])
		}
		e.State = next
		played = append(played, a)
		if e.State.Over() {
			break
		}
	}
	return played
}
