package game

import "fmt"

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	MoveAction ActionType = iota
	AbilityAction
	PassAction
)

func (t ActionType) String() string {
	switch t {
	case MoveAction:
		return "move"
	case AbilityAction:
		return "ability"
	case PassAction:
		return "pass"
	}
	return fmt.Sprintf("ActionType(%d)", int(t))
}

func (t ActionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ActionType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "move":
		*t = MoveAction
	case "ability":
		*t = AbilityAction
	case "pass":
		*t = PassAction
	default:
		return fmt.Errorf("unknown action type %q", text)
	}
	return nil
}

// Action is one request against the match.
//
// MoveAction moves From to To. AbilityAction uses the ability of the piece at
// From: To is the destination or target for Knight, Assassin, Archer and Mage,
// the placement cell for Healer (with Revive indexing the capture pool), and
// ignored for Guard and Thief. PassAction ends the turn without acting.
type Action struct {
	Type   ActionType `json:"type"`
	From   Position   `json:"from"`
	To     Position   `json:"to"`
	Revive int        `json:"revive,omitempty"`
}

func Move(from, to Position) Action {
	return Action{Type: MoveAction, From: from, To: to}
}

func Ability(from, to Position) Action {
	return Action{Type: AbilityAction, From: from, To: to}
}

// SelfAbility is the Guard/Thief form with no destination.
func SelfAbility(from Position) Action {
	return Action{Type: AbilityAction, From: from, To: from}
}

func Revive(healer Position, index int, to Position) Action {
	return Action{Type: AbilityAction, From: healer, To: to, Revive: index}
}

func Pass() Action {
	return Action{Type: PassAction}
}

func (a Action) String() string {
	switch a.Type {
	case MoveAction:
		return fmt.Sprintf("move %s->%s", a.From, a.To)
	case AbilityAction:
		return fmt.Sprintf("ability %s->%s", a.From, a.To)
	default:
		return a.Type.String()
	}
}

// Result describes what an applied action did.
type Result struct {
	Actor     Player  `json:"actor"`
	Ability   Class   `json:"ability,omitempty"`
	Captured  []Piece `json:"captured,omitempty"`
	Revived   *Piece  `json:"revived,omitempty"`
	TurnEnded bool    `json:"turnEnded"`
	ExtraTurn bool    `json:"extraTurn"`
	GameOver  bool    `json:"gameOver"`
}
