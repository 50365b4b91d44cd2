package agent

import (
	"testing"

	"gambit/game"
	"gambit/searcher"

	"github.com/stretchr/testify/require"
)

func at(row, col int) game.Position {
	return game.Position{Row: row, Col: col}
}

func place(t *testing.T, b *game.Board, pos game.Position, owner game.Player, class game.Class) {
	t.Helper()
	p := game.Piece{CardDefinition: game.CardDefinition{ID: owner.String() + class.String(), Class: class}, Owner: owner}
	require.NoError(t, b.Place(pos, p))
}

func thiefMatch(t *testing.T) *game.MatchState {
	var b game.Board
	place(t, &b, at(7, 7), game.Gold, game.Thief)
	place(t, &b, at(0, 0), game.Black, game.Knight)
	return game.NewMatchFromBoard(b)
}

func TestEvaluationAgent(t *testing.T) {
	ms := thiefMatch(t)
	plan, _ := NewEvaluationAgent(searcher.NewGreedy()).FindPlan(ms)
	require.Equal(t, searcher.Plan{game.SelfAbility(at(7, 7)), game.Move(at(7, 7), at(6, 6))}, plan)
}

func TestRandomAgent(t *testing.T) {
	t.Run("picks a legal action", func(t *testing.T) {
		ms := thiefMatch(t)
		a := NewRandomAgent(7)
		for i := 0; i < 20; i++ {
			plan, metric := a.FindPlan(ms)
			require.Len(t, plan, 1)
			require.Contains(t, ms.LegalActions(), plan[0])
			require.Equal(t, len(ms.LegalActions()), metric.Candidates)
		}
	})

	t.Run("same seed replays the same choices", func(t *testing.T) {
		ms := thiefMatch(t)
		a, b := NewRandomAgent(42), NewRandomAgent(42)
		for i := 0; i < 20; i++ {
			planA, _ := a.FindPlan(ms)
			planB, _ := b.FindPlan(ms)
			require.Equal(t, planA, planB)
		}
	})

	t.Run("passes when nothing is legal", func(t *testing.T) {
		var b game.Board
		place(t, &b, at(0, 0), game.Black, game.Knight)
		plan, _ := NewRandomAgent(1).FindPlan(game.NewMatchFromBoard(b))
		require.Equal(t, searcher.Plan{game.Pass()}, plan)
	})
}
