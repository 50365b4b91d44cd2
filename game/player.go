package game

import "fmt"

// Player identifies one of the two seats. The zero value means "nobody" and
// doubles as the empty owner of a board cell and an unset guard or winner.
type Player int

const (
	NoPlayer Player = iota
	Gold
	Black
)

// Opponent returns the other seat.
func (p Player) Opponent() Player {
	switch p {
	case Gold:
		return Black
	case Black:
		return Gold
	default:
		return NoPlayer
	}
}

func (p Player) Valid() bool {
	return p == Gold || p == Black
}

func (p Player) String() string {
	switch p {
	case Gold:
		return "Gold"
	case Black:
		return "Black"
	default:
		return ""
	}
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	parsed, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePlayer accepts "Gold", "Black" or "" (no player).
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "Gold", "gold":
		return Gold, nil
	case "Black", "black":
		return Black, nil
	case "":
		return NoPlayer, nil
	}
	return NoPlayer, fmt.Errorf("unknown player %q", s)
}

// WinReason records how a match was decided.
type WinReason int

const (
	Undecided WinReason = iota
	WinByCapture
	WinBySurrender
)

func (r WinReason) String() string {
	switch r {
	case WinByCapture:
		return "capture"
	case WinBySurrender:
		return "surrender"
	default:
		return ""
	}
}

func (r WinReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *WinReason) UnmarshalText(text []byte) error {
	switch string(text) {
	case "capture":
		*r = WinByCapture
	case "surrender":
		*r = WinBySurrender
	case "":
		*r = Undecided
	default:
		return fmt.Errorf("unknown win reason %q", text)
	}
	return nil
}
