package searcher

import (
	"gambit/experiments/metrics"
	"gambit/game"
	"gambit/meta"
)

type Option func(g *Greedy)

// Greedy scores every one-turn proposal of the current player and picks the
// strictly best one. Ties keep the first enumerated candidate.
type Greedy struct {
	evaluate game.Evaluate
	bonuses  Bonuses
	metrics  metrics.Collector
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(g *Greedy) {
		if evaluate != nil {
			g.evaluate = evaluate
		}
	}
}

func WithBonuses(bonuses Bonuses) Option {
	return func(g *Greedy) {
		g.bonuses = bonuses
	}
}

func WithMetrics() Option {
	return func(g *Greedy) {
		g.metrics = metrics.NewCollector()
	}
}

func DefaultBonuses() Bonuses {
	return Bonuses{Guard: meta.GUARD_BONUS, Thief: meta.THIEF_BONUS, Healer: meta.HEALER_BONUS}
}

func NewGreedy(options ...Option) *Greedy {
	g := &Greedy{ // Default values
		evaluate: game.EvaluateMaterial,
		bonuses:  DefaultBonuses(),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// FindPlan returns the best plan for the player to move, or a single pass
// when there is nothing to propose.
func (g *Greedy) FindPlan(ms *game.MatchState) (Plan, metrics.SearchMetric) {
	g.metrics.Start()
	candidates := g.Candidates(ms)
	best := Best(candidates)
	if best == nil {
		return Plan{game.Pass()}, g.metrics.Complete()
	}
	g.metrics.SetBestScore(best.Score)
	return best.Plan, g.metrics.Complete()
}

// Best returns the first candidate with the highest score.
func Best(candidates []Candidate) *Candidate {
	var best *Candidate
	for i := range candidates {
		if best == nil || candidates[i].Score > best.Score {
			best = &candidates[i]
		}
	}
	return best
}

// Candidates enumerates and scores every proposal in board order. Per piece:
// standard moves, ability moves, then the Guard, Steal Time and revive
// proposals.
func (g *Greedy) Candidates(ms *game.MatchState) []Candidate {
	if ms.Over() {
		return nil
	}
	bot := ms.CurrentPlayer
	guard := ms.GuardActiveFor
	current := g.evaluate(&ms.Board, bot, guard)

	var candidates []Candidate
	add := func(score float64, plan ...game.Action) {
		g.metrics.AddCandidate()
		candidates = append(candidates, Candidate{Plan: plan, Score: score})
	}
	score := func(a game.Action) (float64, bool) {
		g.metrics.AddSimulation()
		board, err := ms.Simulate(a)
		if err != nil {
			return 0, false
		}
		return g.evaluate(&board, bot, guard), true
	}

	for _, placed := range ms.Board.Pieces(bot) {
		from, piece := placed.Pos, placed.Piece
		moves := game.StandardMoves(from, &ms.Board, guard)

		for _, to := range moves {
			a := game.Move(from, to)
			if s, ok := score(a); ok {
				add(s, a)
			}
		}

		if piece.AbilityUsed {
			continue
		}
		switch piece.Class {
		case game.Guard:
			if game.Threatened(&ms.Board, bot, guard) >= meta.GUARD_THREAT_THRESHOLD {
				add(current+g.bonuses.Guard, game.SelfAbility(from))
			}
		case game.Thief:
			if ms.CanUseAbility(from) != nil {
				continue
			}
			for _, to := range moves {
				a := game.Move(from, to)
				if s, ok := score(a); ok {
					add(s+g.bonuses.Thief, game.SelfAbility(from), a)
				}
			}
		case game.Healer:
			if ms.CanRevive(from) != nil {
				continue
			}
			to := ms.Board.EmptyNeighbors(from)[0]
			add(current+g.bonuses.Healer, game.Revive(from, 0, to))
		default:
			for _, to := range game.AbilityMoves(from, &ms.Board, guard) {
				a := game.Ability(from, to)
				if s, ok := score(a); ok {
					add(s, a)
				}
			}
		}
	}
	return candidates
}
