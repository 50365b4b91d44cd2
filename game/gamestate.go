package game

import (
	"encoding/binary"
	"errors"
	"fmt"

	"gambit/meta"
	"gambit/utils"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

type StateHash uint64

func (h StateHash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// MatchState is the complete rules state of one match. Play never mutates the
// receiver: it returns a new state, like the rest of the engine expects.
type MatchState struct {
	ID              string             `json:"id"`
	Board           Board              `json:"board"`
	Names           map[Player]string  `json:"names"`
	CurrentPlayer   Player             `json:"currentPlayer"`
	Captured        map[Player][]Piece `json:"capturedCards"`
	ExtraTurns      int                `json:"extraTurnsRemaining"`
	ExtraTurnActive bool               `json:"extraTurnActive"`
	GuardActiveFor  Player             `json:"guardActiveFor"`
	Won             Player             `json:"winner"`
	WinReason       WinReason          `json:"winReason"`
	Turn            int                `json:"turn"`
	LastAction      *Action            `json:"lastAction,omitempty"`
}

// NewMatch resolves both decks against the catalog and lays them out on the
// back rows: Black on row 0, Gold on the last row, centered. Nothing is built
// if any slot references an unknown card.
func NewMatch(catalog Catalog, goldDeck, blackDeck []string, names map[Player]string) (*MatchState, error) {
	gold, err := resolveDeck(catalog, Gold, goldDeck)
	if err != nil {
		return nil, err
	}
	black, err := resolveDeck(catalog, Black, blackDeck)
	if err != nil {
		return nil, err
	}

	ms := newMatchState()
	for player, name := range names {
		ms.Names[player] = name
	}
	startCol := (meta.BOARD_SIZE - meta.DECK_SIZE) / 2
	for i := 0; i < meta.DECK_SIZE; i++ {
		col := startCol + i
		if black[i] != nil {
			ms.Board.Cells[0][col] = Piece{CardDefinition: *black[i], Owner: Black}
		}
		if gold[i] != nil {
			ms.Board.Cells[meta.BOARD_SIZE-1][col] = Piece{CardDefinition: *gold[i], Owner: Gold}
		}
	}
	return ms, nil
}

// NewMatchFromBoard starts a match from an arbitrary position. Gold moves first.
func NewMatchFromBoard(b Board) *MatchState {
	ms := newMatchState()
	ms.Board = b
	return ms
}

func newMatchState() *MatchState {
	return &MatchState{
		ID:            uuid.New().String(),
		Names:         map[Player]string{Gold: "Player 1", Black: "Player 2"},
		CurrentPlayer: Gold,
		Captured:      map[Player][]Piece{Gold: {}, Black: {}},
	}
}

func resolveDeck(catalog Catalog, owner Player, deck []string) ([]*CardDefinition, error) {
	if len(deck) != meta.DECK_SIZE {
		return nil, fmt.Errorf("%w: %s deck has %d slots, want %d", ErrInvalidConfig, owner, len(deck), meta.DECK_SIZE)
	}
	cards := make([]*CardDefinition, len(deck))
	for i, id := range deck {
		if id == "" {
			continue
		}
		def, err := catalog.Lookup(id)
		if err != nil {
			return nil, fmt.Errorf("%s deck slot %d: %w", owner, i, err)
		}
		cards[i] = &def
	}
	return cards, nil
}

func (ms *MatchState) Copy() *MatchState {
	names := make(map[Player]string, len(ms.Names))
	for player, name := range ms.Names {
		names[player] = name
	}
	captured := make(map[Player][]Piece, 2)
	for _, player := range []Player{Gold, Black} {
		pool := make([]Piece, len(ms.Captured[player]))
		copy(pool, ms.Captured[player])
		captured[player] = pool
	}
	next := *ms
	next.Names = names
	next.Captured = captured
	if ms.LastAction != nil {
		last := *ms.LastAction
		next.LastAction = &last
	}
	return &next
}

// Player returns whose turn it is.
func (ms *MatchState) Player() Player {
	return ms.CurrentPlayer
}

// Winner returns the winner, NoPlayer while the match is running.
func (ms *MatchState) Winner() Player {
	return ms.Won
}

func (ms *MatchState) Over() bool {
	return ms.Won != NoPlayer
}

// Play applies an action for the current player and returns the new state.
// A refused action returns the receiver unchanged with an *ActionError.
func (ms *MatchState) Play(a Action) (*MatchState, Result, error) {
	if ms.Over() {
		return ms, Result{}, &ActionError{Err: ErrGameOver, Player: ms.CurrentPlayer, Action: a}
	}
	next := ms.Copy()
	res, err := next.apply(a)
	if err != nil {
		return ms, Result{}, err
	}
	next.LastAction = &a
	return next, res, nil
}

// Simulate returns the board an action would produce, without any turn
// bookkeeping being visible to the caller.
func (ms *MatchState) Simulate(a Action) (Board, error) {
	next, _, err := ms.Play(a)
	if err != nil {
		return Board{}, err
	}
	return next.Board, nil
}

func (ms *MatchState) apply(a Action) (Result, error) {
	res := Result{Actor: ms.CurrentPlayer}

	if a.Type == PassAction {
		if len(ms.legalActions()) > 0 {
			return res, illegal(res.Actor, a, "cannot pass while a legal action exists")
		}
		ms.endTurn(&res)
		return res, nil
	}

	piece, ok := ms.Board.At(a.From)
	if !ok {
		return res, illegal(res.Actor, a, fmt.Sprintf("no piece at %s", a.From))
	}
	if piece.Owner != res.Actor {
		return res, illegal(res.Actor, a, fmt.Sprintf("piece at %s belongs to %s", a.From, piece.Owner))
	}

	switch a.Type {
	case MoveAction:
		if !utils.Contains(StandardMoves(a.From, &ms.Board, ms.GuardActiveFor), a.To) {
			return res, illegal(res.Actor, a, fmt.Sprintf("%s is not a legal destination", a.To))
		}
		ms.capture(a.To, &res)
		if err := ms.Board.Relocate(a.From, a.To); err != nil {
			return res, err
		}
		ms.finishAction(&res, true)
		return res, nil

	case AbilityAction:
		if piece.AbilityUsed {
			return res, illegal(res.Actor, a, fmt.Sprintf("%s ability already used this match", piece.Class))
		}
		ab := abilityFor(piece.Class)
		if ab.targets != nil && !utils.Contains(ab.targets(a.From, &ms.Board, res.Actor, ms.GuardActiveFor), a.To) {
			return res, illegal(res.Actor, a, fmt.Sprintf("%s is not a legal %s target", a.To, piece.Class))
		}
		res.Ability = piece.Class
		return res, ab.resolve(ms, a, &res)
	}
	return res, illegal(res.Actor, a, "unknown action type")
}

// capture removes an opposing piece unless its owner is guarded. Own pieces
// and empty cells are left alone.
func (ms *MatchState) capture(pos Position, res *Result) {
	target, ok := ms.Board.At(pos)
	if !ok || target.Owner == res.Actor || target.Owner == ms.GuardActiveFor {
		return
	}
	ms.Board.Remove(pos)
	ms.Captured[target.Owner] = append(ms.Captured[target.Owner], target)
	res.Captured = append(res.Captured, target)
}

func (ms *MatchState) spend(pos Position) {
	ms.Board.Update(pos, func(p *Piece) { p.AbilityUsed = true })
}

// finishAction checks for a capture win before any turn advance.
func (ms *MatchState) finishAction(res *Result, endsTurn bool) {
	if len(res.Captured) > 0 && ms.Board.Count(res.Actor.Opponent()) == 0 {
		ms.finish(res.Actor, WinByCapture)
		res.GameOver = true
		return
	}
	if endsTurn {
		ms.endTurn(res)
	}
}

// endTurn consumes a banked extra turn if there is one; otherwise control
// passes to the opponent and a guard they hold expires.
func (ms *MatchState) endTurn(res *Result) {
	res.TurnEnded = true
	ms.Turn++
	if ms.ExtraTurns > 0 {
		ms.ExtraTurns--
		ms.ExtraTurnActive = true
		res.ExtraTurn = true
		return
	}
	next := ms.CurrentPlayer.Opponent()
	if ms.GuardActiveFor == next {
		ms.GuardActiveFor = NoPlayer
	}
	ms.CurrentPlayer = next
	ms.ExtraTurnActive = false
}

// finish records the result once; later calls are no-ops. A pending guard
// dies with the match.
func (ms *MatchState) finish(winner Player, reason WinReason) {
	if ms.Won != NoPlayer {
		return
	}
	ms.Won = winner
	ms.WinReason = reason
	ms.GuardActiveFor = NoPlayer
}

// Surrender ends the match in favor of the surrendering player's opponent.
// On a decided match it returns the receiver unchanged.
func (ms *MatchState) Surrender(p Player) (*MatchState, error) {
	if !p.Valid() {
		return ms, fmt.Errorf("cannot surrender: unknown player %d", int(p))
	}
	if ms.Over() {
		return ms, nil
	}
	next := ms.Copy()
	next.finish(p.Opponent(), WinBySurrender)
	return next, nil
}

// canStealTime: Thief is refused during an extra turn and once one is banked.
func (ms *MatchState) canStealTime() bool {
	return !ms.ExtraTurnActive && ms.ExtraTurns == 0
}

var (
	errNoAllies = errors.New("no captured allies to revive")
	errNoSpace  = errors.New("no empty adjacent space to revive an ally")
)

func (ms *MatchState) revivePrecondition(healer Position) error {
	if len(ms.Captured[ms.CurrentPlayer]) == 0 {
		return errNoAllies
	}
	if len(ms.Board.EmptyNeighbors(healer)) == 0 {
		return errNoSpace
	}
	return nil
}

// CanRevive reports why the Healer at pos cannot revive, or nil.
func (ms *MatchState) CanRevive(healer Position) error {
	if err := ms.revivePrecondition(healer); err != nil {
		return fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
	}
	return nil
}

// CanUseAbility reports whether the current player may activate the ability
// of the piece at pos right now.
func (ms *MatchState) CanUseAbility(pos Position) error {
	piece, ok := ms.Board.At(pos)
	if !ok || piece.Owner != ms.CurrentPlayer {
		return fmt.Errorf("%w: no %s piece at %s", ErrIllegalAction, ms.CurrentPlayer, pos)
	}
	if piece.AbilityUsed {
		return fmt.Errorf("%w: ability already used this match", ErrIllegalAction)
	}
	switch piece.Class {
	case Thief:
		if !ms.canStealTime() {
			return fmt.Errorf("%w: cannot use Steal Time during an extra turn", ErrIllegalAction)
		}
	case Healer:
		return ms.CanRevive(pos)
	}
	return nil
}

// ValidTargets returns the highlight set for a selected piece: its standard
// moves, or its ability destinations (empty adjacent cells for a Healer).
func (ms *MatchState) ValidTargets(pos Position, useAbility bool) []Position {
	if !useAbility {
		return StandardMoves(pos, &ms.Board, ms.GuardActiveFor)
	}
	piece, ok := ms.Board.At(pos)
	if !ok || piece.AbilityUsed {
		return nil
	}
	if piece.Class == Healer {
		if ms.revivePrecondition(pos) != nil {
			return nil
		}
		return ms.Board.EmptyNeighbors(pos)
	}
	return AbilityMoves(pos, &ms.Board, ms.GuardActiveFor)
}

// LegalActions enumerates every action the current player may take: per
// piece in row-major order, standard moves, then targeted ability moves, then
// self-targeted abilities. A lone PassAction is returned when nothing else is
// legal.
func (ms *MatchState) LegalActions() []Action {
	if ms.Over() {
		return nil
	}
	actions := ms.legalActions()
	if len(actions) == 0 {
		return []Action{Pass()}
	}
	return actions
}

func (ms *MatchState) legalActions() []Action {
	var actions []Action
	guard := ms.GuardActiveFor
	for _, placed := range ms.Board.Pieces(ms.CurrentPlayer) {
		from := placed.Pos
		for _, to := range StandardMoves(from, &ms.Board, guard) {
			actions = append(actions, Move(from, to))
		}
		if placed.Piece.AbilityUsed {
			continue
		}
		switch placed.Piece.Class {
		case Guard:
			actions = append(actions, SelfAbility(from))
		case Thief:
			if ms.canStealTime() {
				actions = append(actions, SelfAbility(from))
			}
		case Healer:
			if ms.revivePrecondition(from) != nil {
				continue
			}
			for i := range ms.Captured[ms.CurrentPlayer] {
				for _, to := range ms.Board.EmptyNeighbors(from) {
					actions = append(actions, Revive(from, i, to))
				}
			}
		default:
			for _, to := range AbilityMoves(from, &ms.Board, guard) {
				actions = append(actions, Ability(from, to))
			}
		}
	}
	return actions
}

// Hash fingerprints the rules-relevant part of the state.
func (ms *MatchState) Hash() StateHash {
	h := xxhash.New()
	write := func(v int64) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	write(int64(ms.CurrentPlayer))
	write(int64(ms.GuardActiveFor))
	write(int64(ms.ExtraTurns))
	if ms.ExtraTurnActive {
		write(1)
	} else {
		write(0)
	}
	write(int64(ms.Won))
	for _, placed := range ms.Board.Occupied() {
		p := placed.Piece
		write(int64(placed.Pos.Row*meta.BOARD_SIZE + placed.Pos.Col))
		write(int64(p.Owner))
		write(int64(p.Class))
		if p.AbilityUsed {
			write(1)
		} else {
			write(0)
		}
		h.WriteString(p.ID)
	}
	for _, player := range []Player{Gold, Black} {
		write(int64(len(ms.Captured[player])))
	}
	return StateHash(h.Sum64())
}
