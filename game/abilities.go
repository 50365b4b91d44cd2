package game

import (
	"fmt"

	"gambit/utils"
)

// ability is one entry of the per-class dispatch table. Targeted abilities
// (Knight, Assassin, Archer, Mage) provide targets; self-targeted ones
// (Guard, Thief, Healer) resolve against the acting piece alone.
type ability struct {
	targets func(from Position, b *Board, owner, guard Player) []Position
	resolve func(ms *MatchState, a Action, res *Result) error
}

// abilities must not reference anything that reads the table back, or the
// package initialization would cycle.
var abilities = [numClasses]ability{
	Knight:   {targets: knightTargets, resolve: resolveCharge},
	Assassin: {targets: assassinTargets, resolve: resolveStrike(true)},
	Archer:   {targets: archerTargets, resolve: resolveStrike(false)},
	Mage:     {targets: mageTargets, resolve: resolveStrike(false)},
	Guard:    {resolve: resolveGuard},
	Thief:    {resolve: resolveThief},
	Healer:   {resolve: resolveRevive},
}

func abilityFor(c Class) ability {
	if !c.Valid() || abilities[c].resolve == nil {
		panic(fmt.Sprintf("no ability registered for class %s", c))
	}
	return abilities[c]
}

// resolveCharge walks from the Knight to the destination capturing every
// unguarded opponent on the way, then lands on the destination.
func resolveCharge(ms *MatchState, a Action, res *Result) error {
	dr, dc := sign(a.To.Row-a.From.Row), sign(a.To.Col-a.From.Col)
	for pos := a.From; pos != a.To; {
		pos = pos.Add(dr, dc)
		ms.capture(pos, res)
	}
	ms.spend(a.From)
	if err := ms.Board.Relocate(a.From, a.To); err != nil {
		return err
	}
	ms.finishAction(res, true)
	return nil
}

// resolveStrike captures whatever stands on the target. Assassins teleport
// onto it, Archers and Mages stay put.
func resolveStrike(relocate bool) func(*MatchState, Action, *Result) error {
	return func(ms *MatchState, a Action, res *Result) error {
		ms.capture(a.To, res)
		ms.spend(a.From)
		if relocate {
			if err := ms.Board.Relocate(a.From, a.To); err != nil {
				return err
			}
		}
		ms.finishAction(res, true)
		return nil
	}
}

// resolveGuard protects the actor's pieces until play returns to them. It
// consumes the turn.
func resolveGuard(ms *MatchState, a Action, res *Result) error {
	ms.spend(a.From)
	ms.GuardActiveFor = res.Actor
	ms.finishAction(res, true)
	return nil
}

// resolveThief banks an extra turn. The current turn goes on: the player
// still owes a move or ability.
func resolveThief(ms *MatchState, a Action, res *Result) error {
	if !ms.canStealTime() {
		return illegal(res.Actor, a, "Steal Time cannot be used during an extra turn")
	}
	ms.spend(a.From)
	ms.ExtraTurns++
	return nil
}

// resolveRevive returns a captured ally to an empty cell next to the Healer
// with a fresh ability, ending the turn.
func resolveRevive(ms *MatchState, a Action, res *Result) error {
	if err := ms.revivePrecondition(a.From); err != nil {
		return refused(res.Actor, a, err.Error())
	}
	pool := ms.Captured[res.Actor]
	if a.Revive < 0 || a.Revive >= len(pool) {
		return illegal(res.Actor, a, fmt.Sprintf("no captured ally at index %d", a.Revive))
	}
	if !utils.Contains(ms.Board.EmptyNeighbors(a.From), a.To) {
		return illegal(res.Actor, a, "revived ally must be placed on an empty adjacent cell")
	}

	revived := pool[a.Revive]
	revived.Owner = res.Actor
	revived.AbilityUsed = false

	remaining := make([]Piece, 0, len(pool)-1)
	remaining = append(remaining, pool[:a.Revive]...)
	remaining = append(remaining, pool[a.Revive+1:]...)
	ms.Captured[res.Actor] = remaining

	ms.spend(a.From)
	if err := ms.Board.Place(a.To, revived); err != nil {
		return err
	}
	res.Revived = &revived
	ms.finishAction(res, true)
	return nil
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
