package game

// capturable reports whether the piece at pos may be captured by mover while
// guard protects the named player.
func capturable(b *Board, pos Position, mover, guard Player) bool {
	target, ok := b.At(pos)
	return ok && target.Owner != mover && target.Owner != guard
}

// StandardMoves returns the king-step destinations of the piece at from: empty
// neighbors plus neighbors holding a capturable opponent. Guarded pieces are
// not targetable at all.
func StandardMoves(from Position, b *Board, guard Player) []Position {
	piece, ok := b.At(from)
	if !ok {
		return nil
	}
	var moves []Position
	for _, d := range kingSteps {
		to := from.Add(d[0], d[1])
		if !to.InBounds() {
			continue
		}
		if b.IsEmpty(to) || capturable(b, to, piece.Owner, guard) {
			moves = append(moves, to)
		}
	}
	return moves
}

// AbilityMoves returns the destinations of the piece's class ability. It is
// empty once the ability is spent and for the self-targeted classes.
func AbilityMoves(from Position, b *Board, guard Player) []Position {
	piece, ok := b.At(from)
	if !ok || piece.AbilityUsed {
		return nil
	}
	targets := abilityFor(piece.Class).targets
	if targets == nil {
		return nil
	}
	return targets(from, b, piece.Owner, guard)
}

// knightTargets scans up to 3 cells forward and back. An own piece or a
// guarded opponent ends the scan in that direction; an unguarded opponent is
// a valid landing cell and the scan continues past it.
func knightTargets(from Position, b *Board, owner, guard Player) []Position {
	var moves []Position
	for _, d := range vertical {
		for i := 1; i <= 3; i++ {
			to := from.Add(d[0]*i, d[1]*i)
			if !to.InBounds() {
				break
			}
			if target, ok := b.At(to); ok && (target.Owner == owner || target.Owner == guard) {
				break
			}
			moves = append(moves, to)
		}
	}
	return moves
}

func assassinTargets(_ Position, b *Board, _, _ Player) []Position {
	var moves []Position
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c].Empty() {
				moves = append(moves, Position{Row: r, Col: c})
			}
		}
	}
	return moves
}

func archerTargets(from Position, b *Board, owner, guard Player) []Position {
	var moves []Position
	for _, d := range ringOfTwo {
		to := from.Add(d[0], d[1])
		if capturable(b, to, owner, guard) {
			moves = append(moves, to)
		}
	}
	return moves
}

// mageTargets offers, per diagonal, the first occupied cell within 3 steps
// when it holds a capturable opponent.
func mageTargets(from Position, b *Board, owner, guard Player) []Position {
	var moves []Position
	for _, d := range diagonals {
		for i := 1; i <= 3; i++ {
			to := from.Add(d[0]*i, d[1]*i)
			if !to.InBounds() {
				break
			}
			if _, ok := b.At(to); ok {
				if capturable(b, to, owner, guard) {
					moves = append(moves, to)
				}
				break
			}
		}
	}
	return moves
}

// Threatens reports whether the piece at from can capture something with a
// standard move.
func Threatens(from Position, b *Board, guard Player) bool {
	piece, ok := b.At(from)
	if !ok {
		return false
	}
	for _, to := range StandardMoves(from, b, guard) {
		if target, ok := b.At(to); ok && target.Owner != piece.Owner {
			return true
		}
	}
	return false
}

// Threatened counts the pieces of player that an opponent piece could capture
// with a standard move.
func Threatened(b *Board, player, guard Player) int {
	attacked := make(map[Position]bool)
	for _, opp := range b.Pieces(player.Opponent()) {
		for _, to := range StandardMoves(opp.Pos, b, guard) {
			if target, ok := b.At(to); ok && target.Owner == player {
				attacked[to] = true
			}
		}
	}
	return len(attacked)
}
