package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction: the destination is not in the current legal set, the
	// piece is not the mover's, or the ability was already spent.
	ErrIllegalAction = errors.New("illegal action")

	// ErrPreconditionFailed: a Healer revive without captured allies or space.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrInvalidConfig: match setup referenced an unknown card or a bad deck.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameOver: the match already has a winner.
	ErrGameOver = errors.New("game is over - no moves allowed")
)

// ActionError describes a refused action. It unwraps to one of the sentinels above.
type ActionError struct {
	Err    error
	Player Player
	Action Action
	Reason string
}

func (e *ActionError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Player, e.Action, e.Err)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func illegal(p Player, a Action, reason string) error {
	return &ActionError{Err: ErrIllegalAction, Player: p, Action: a, Reason: reason}
}

func refused(p Player, a Action, reason string) error {
	return &ActionError{Err: ErrPreconditionFailed, Player: p, Action: a, Reason: reason}
}
