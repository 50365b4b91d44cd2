package game

import (
	"math"

	"gambit/meta"
)

// Evaluate scores a board from perspective's point of view while guard
// protects the named player. Higher is better for perspective.
type Evaluate func(b *Board, perspective, guard Player) float64

// EvaluateMaterial tallies material, centralization and standard-move threats:
//
//	100·own − 100·opp + 2·Σcenter(own) − 2·Σcenter(opp)
//	+ 15·(own pieces threatening an opponent) − 20·(opponent pieces threatening us)
func EvaluateMaterial(b *Board, perspective, guard Player) float64 {
	score := 0.0
	for _, placed := range b.Occupied() {
		sign := 1.0
		if placed.Piece.Owner != perspective {
			sign = -1.0
		}
		score += sign * meta.PIECE_VALUE
		score += sign * meta.POSITIONAL_BONUS * CenterBonus(placed.Pos)
		if Threatens(placed.Pos, b, guard) {
			if sign > 0 {
				score += meta.THREAT_BONUS
			} else {
				score -= meta.DANGER_PENALTY
			}
		}
	}
	return score
}

// CenterBonus is 6 on the four central cells and 0 in the corners.
func CenterBonus(pos Position) float64 {
	mid := float64(meta.BOARD_SIZE-1) / 2
	return (mid - math.Abs(float64(pos.Row)-mid)) + (mid - math.Abs(float64(pos.Col)-mid))
}
