package gamemaster

import (
	"fmt"

	"gambit/game"
	"gambit/utils"
)

// Step is where a Session is in building the next action.
type Step int

const (
	AwaitingSelection Step = iota
	PieceSelected
	MoveArmed
	AbilityArmed
	ReviveChoosing // Healer: pick the ally from the capture pool
	RevivePlacing  // Healer: pick the empty neighbor
)

func (s Step) String() string {
	switch s {
	case AwaitingSelection:
		return "awaiting selection"
	case PieceSelected:
		return "piece selected"
	case MoveArmed:
		return "move armed"
	case AbilityArmed:
		return "ability armed"
	case ReviveChoosing:
		return "choosing ally"
	case RevivePlacing:
		return "placing ally"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Session is the selection scratch state of one seat. It turns clicks into
// game actions and never touches the match itself: the caller plays the
// action Target returns.
type Session struct {
	step     Step
	selected game.Position
	targets  []game.Position
	revive   int
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Step() Step {
	return s.step
}

// Selected returns the selected piece, if any.
func (s *Session) Selected() (game.Position, bool) {
	return s.selected, s.step != AwaitingSelection
}

// Targets returns the cells to highlight for the armed step.
func (s *Session) Targets() []game.Position {
	return s.targets
}

// Cancel abandons whatever is pending.
func (s *Session) Cancel() {
	*s = Session{}
}

func (s *Session) pending() error {
	if s.step == ReviveChoosing || s.step == RevivePlacing {
		return fmt.Errorf("%w: finish or cancel the revive first", game.ErrIllegalAction)
	}
	return nil
}

// Select picks one of the current player's pieces. Picking another piece
// replaces the selection unless a revive is pending.
func (s *Session) Select(ms *game.MatchState, pos game.Position) error {
	if ms.Over() {
		return game.ErrGameOver
	}
	if err := s.pending(); err != nil {
		return err
	}
	piece, ok := ms.Board.At(pos)
	if !ok || piece.Owner != ms.CurrentPlayer {
		return fmt.Errorf("%w: no %s piece at %s", game.ErrIllegalAction, ms.CurrentPlayer, pos)
	}
	*s = Session{step: PieceSelected, selected: pos}
	return nil
}

// ArmMove offers the standard moves of the selected piece.
func (s *Session) ArmMove(ms *game.MatchState) error {
	if s.step != PieceSelected && s.step != AbilityArmed {
		return fmt.Errorf("%w: select a piece first", game.ErrIllegalAction)
	}
	s.step = MoveArmed
	s.targets = ms.ValidTargets(s.selected, false)
	return nil
}

// ArmAbility starts the ability of the selected piece. Guard and Thief need
// no target: their action is returned right away and the session resets.
// A Healer moves on to choosing an ally.
func (s *Session) ArmAbility(ms *game.MatchState) (*game.Action, error) {
	if s.step != PieceSelected && s.step != MoveArmed {
		return nil, fmt.Errorf("%w: select a piece first", game.ErrIllegalAction)
	}
	if err := ms.CanUseAbility(s.selected); err != nil {
		return nil, err
	}
	piece, _ := ms.Board.At(s.selected)
	switch piece.Class {
	case game.Guard, game.Thief:
		a := game.SelfAbility(s.selected)
		s.Cancel()
		return &a, nil
	case game.Healer:
		s.step = ReviveChoosing
		s.targets = nil
		return nil, nil
	}
	s.step = AbilityArmed
	s.targets = ms.ValidTargets(s.selected, true)
	return nil, nil
}

// ChooseRevive picks the captured ally to bring back by capture-pool index.
func (s *Session) ChooseRevive(ms *game.MatchState, index int) error {
	if s.step != ReviveChoosing {
		return fmt.Errorf("%w: no revive pending", game.ErrIllegalAction)
	}
	if index < 0 || index >= len(ms.Captured[ms.CurrentPlayer]) {
		return fmt.Errorf("%w: no captured ally at index %d", game.ErrIllegalAction, index)
	}
	s.revive = index
	s.step = RevivePlacing
	s.targets = ms.ValidTargets(s.selected, true)
	return nil
}

// Target completes the armed step with a highlighted cell and returns the
// action to play. The session resets on success.
func (s *Session) Target(pos game.Position) (game.Action, error) {
	if s.step != MoveArmed && s.step != AbilityArmed && s.step != RevivePlacing {
		return game.Action{}, fmt.Errorf("%w: nothing armed", game.ErrIllegalAction)
	}
	if !utils.Contains(s.targets, pos) {
		return game.Action{}, fmt.Errorf("%w: %s is not a valid target", game.ErrIllegalAction, pos)
	}
	var a game.Action
	switch s.step {
	case MoveArmed:
		a = game.Move(s.selected, pos)
	case AbilityArmed:
		a = game.Ability(s.selected, pos)
	case RevivePlacing:
		a = game.Revive(s.selected, s.revive, pos)
	}
	s.Cancel()
	return a, nil
}
