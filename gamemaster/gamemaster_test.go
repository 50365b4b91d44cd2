package gamemaster

import (
	"testing"

	"gambit/game"

	"github.com/stretchr/testify/require"
)

func sessionMatch(t *testing.T) *game.MatchState {
	t.Helper()
	var b game.Board
	for pos, p := range map[game.Position]game.Piece{
		at(7, 0): card(game.Gold, game.Healer),
		at(7, 3): card(game.Gold, game.Mage),
		at(7, 7): card(game.Gold, game.Thief),
		at(5, 5): card(game.Black, game.Knight),
		at(0, 0): card(game.Black, game.Guard),
	} {
		require.NoError(t, b.Place(pos, p))
	}
	return game.NewMatchFromBoard(b)
}

func TestSessionMove(t *testing.T) {
	ms := sessionMatch(t)
	s := NewSession()
	require.Equal(t, AwaitingSelection, s.Step())

	require.ErrorIs(t, s.Select(ms, at(5, 5)), game.ErrIllegalAction, "Opponent pieces cannot be selected")
	require.ErrorIs(t, s.ArmMove(ms), game.ErrIllegalAction, "Nothing selected yet")

	require.NoError(t, s.Select(ms, at(7, 3)))
	pos, ok := s.Selected()
	require.True(t, ok)
	require.Equal(t, at(7, 3), pos)

	require.NoError(t, s.ArmMove(ms))
	require.Equal(t, MoveArmed, s.Step())
	require.Equal(t, ms.ValidTargets(at(7, 3), false), s.Targets())

	_, err := s.Target(at(5, 3))
	require.ErrorIs(t, err, game.ErrIllegalAction, "Only highlighted cells are accepted")

	a, err := s.Target(at(6, 3))
	require.NoError(t, err)
	require.Equal(t, game.Move(at(7, 3), at(6, 3)), a)
	require.Equal(t, AwaitingSelection, s.Step(), "Session resets after a complete action")
}

func TestSessionTargetedAbility(t *testing.T) {
	ms := sessionMatch(t)
	s := NewSession()
	require.NoError(t, s.Select(ms, at(7, 3)))

	a, err := s.ArmAbility(ms)
	require.NoError(t, err)
	require.Nil(t, a)
	require.Equal(t, AbilityArmed, s.Step())
	require.Equal(t, []game.Position{at(5, 5)}, s.Targets())

	require.NoError(t, s.ArmMove(ms), "Switching back to a move is allowed")
	_, err = s.ArmAbility(ms)
	require.NoError(t, err)

	action, err := s.Target(at(5, 5))
	require.NoError(t, err)
	require.Equal(t, game.Ability(at(7, 3), at(5, 5)), action)
}

func TestSessionSelfAbility(t *testing.T) {
	ms := sessionMatch(t)
	s := NewSession()
	require.NoError(t, s.Select(ms, at(7, 7)))

	a, err := s.ArmAbility(ms)
	require.NoError(t, err)
	require.NotNil(t, a)
	require.Equal(t, game.SelfAbility(at(7, 7)), *a)
	require.Equal(t, AwaitingSelection, s.Step())
}

func TestSessionRevive(t *testing.T) {
	ms := sessionMatch(t)
	s := NewSession()

	require.NoError(t, s.Select(ms, at(7, 0)))
	_, err := s.ArmAbility(ms)
	require.ErrorIs(t, err, game.ErrPreconditionFailed, "No captured allies yet")
	require.Equal(t, PieceSelected, s.Step())

	ms.Captured[game.Gold] = []game.Piece{card(game.Gold, game.Archer)}
	_, err = s.ArmAbility(ms)
	require.NoError(t, err)
	require.Equal(t, ReviveChoosing, s.Step())

	require.ErrorIs(t, s.Select(ms, at(7, 3)), game.ErrIllegalAction, "Input is rejected while a revive is pending")
	require.ErrorIs(t, s.ChooseRevive(ms, 3), game.ErrIllegalAction)

	require.NoError(t, s.ChooseRevive(ms, 0))
	require.Equal(t, RevivePlacing, s.Step())
	require.Equal(t, []game.Position{at(6, 0), at(6, 1), at(7, 1)}, s.Targets())

	a, err := s.Target(at(6, 1))
	require.NoError(t, err)
	require.Equal(t, game.Revive(at(7, 0), 0, at(6, 1)), a)

	next, res, err := ms.Play(a)
	require.NoError(t, err)
	require.Equal(t, game.Archer, res.Revived.Class)
	require.Equal(t, game.Black, next.CurrentPlayer)
}

func TestSessionCancel(t *testing.T) {
	ms := sessionMatch(t)
	ms.Captured[game.Gold] = []game.Piece{card(game.Gold, game.Archer)}
	s := NewSession()

	require.NoError(t, s.Select(ms, at(7, 0)))
	_, err := s.ArmAbility(ms)
	require.NoError(t, err)
	require.NoError(t, s.ChooseRevive(ms, 0))

	s.Cancel()
	require.Equal(t, AwaitingSelection, s.Step())
	require.Empty(t, s.Targets())
	_, ok := s.Selected()
	require.False(t, ok)
	require.Len(t, ms.Captured[game.Gold], 1, "Cancel never touches the match")
	require.True(t, ms.Board.IsEmpty(at(6, 0)))
}
