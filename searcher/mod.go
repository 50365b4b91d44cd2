package searcher

import (
	"strings"

	"gambit/game"
)

// Plan is the ordered list of actions a bot executes for one decision. Most
// plans hold a single action; Steal Time is followed by the move it pays for.
type Plan []game.Action

func (p Plan) String() string {
	parts := make([]string, len(p))
	for i, a := range p {
		parts[i] = a.String()
	}
	return strings.Join(parts, " then ")
}

// Candidate is one scored proposal.
type Candidate struct {
	Plan  Plan    `json:"plan"`
	Score float64 `json:"score"`
}

// Bonuses are the fixed rewards added to the current board score for the
// special abilities the evaluator cannot see.
type Bonuses struct {
	Guard  float64 `yaml:"guard" json:"guard"`
	Thief  float64 `yaml:"thief" json:"thief"`
	Healer float64 `yaml:"healer" json:"healer"`
}
