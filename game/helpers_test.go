package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func at(row, col int) Position {
	return Position{Row: row, Col: col}
}

func piece(owner Player, class Class) Piece {
	return Piece{
		CardDefinition: CardDefinition{
			ID:    fmt.Sprintf("%s-%s", owner, class),
			Class: class,
			Name:  class.String(),
		},
		Owner: owner,
	}
}

// boardWith places the given pieces on an otherwise empty board.
func boardWith(t *testing.T, pieces map[Position]Piece) Board {
	t.Helper()
	var b Board
	for pos, p := range pieces {
		require.NoError(t, b.Place(pos, p), "fixture piece at %s", pos)
	}
	return b
}

func matchWith(t *testing.T, pieces map[Position]Piece) *MatchState {
	t.Helper()
	return NewMatchFromBoard(boardWith(t, pieces))
}

// mustPlay applies an action that the test expects to be legal.
func mustPlay(t *testing.T, ms *MatchState, a Action) (*MatchState, Result) {
	t.Helper()
	next, res, err := ms.Play(a)
	require.NoError(t, err, "action %s should be legal", a)
	return next, res
}

func testCatalog(t *testing.T) Catalog {
	t.Helper()
	var defs []CardDefinition
	for _, c := range Classes() {
		defs = append(defs, CardDefinition{ID: "card-" + c.String(), Class: c, Name: c.String()})
	}
	catalog, err := NewCatalog(defs)
	require.NoError(t, err)
	return catalog
}

func fullDeck() []string {
	return []string{
		"card-Knight", "card-Assassin", "card-Archer", "card-Mage",
		"card-Guard", "card-Thief", "card-Healer", "card-Knight",
	}
}
