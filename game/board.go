package game

import (
	"fmt"
	"strings"

	"gambit/meta"
)

// Position is a cell coordinate; row 0 is Black's back row.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < meta.BOARD_SIZE && p.Col >= 0 && p.Col < meta.BOARD_SIZE
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Unit step directions.
var (
	// kingSteps is the 8-neighborhood, scanned in this order everywhere.
	kingSteps = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	vertical  = [][2]int{{-1, 0}, {1, 0}}
	diagonals = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	// ringOfTwo is every offset at Chebyshev distance exactly 2.
	ringOfTwo = [][2]int{
		{-2, -2}, {-2, 0}, {-2, 2}, {0, -2}, {0, 2}, {2, -2}, {2, 0}, {2, 2},
		{-2, -1}, {-2, 1}, {2, -1}, {2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2},
	}
)

// Board is the grid of cells. It is a value type: assigning a Board copies it.
type Board struct {
	Cells [meta.BOARD_SIZE][meta.BOARD_SIZE]Piece `json:"cells"`
}

// Placed pairs a piece with its cell.
type Placed struct {
	Piece Piece
	Pos   Position
}

// At returns the piece at pos and whether the cell is occupied.
func (b *Board) At(pos Position) (Piece, bool) {
	if !pos.InBounds() {
		return Piece{}, false
	}
	p := b.Cells[pos.Row][pos.Col]
	return p, !p.Empty()
}

func (b *Board) IsEmpty(pos Position) bool {
	_, occupied := b.At(pos)
	return pos.InBounds() && !occupied
}

// Place puts a piece in an empty cell.
func (b *Board) Place(pos Position, p Piece) error {
	if !pos.InBounds() {
		return fmt.Errorf("cannot place piece: %s is off the board", pos)
	}
	if !p.Owner.Valid() {
		return fmt.Errorf("cannot place piece: %q has no owner", p.ID)
	}
	if !b.Cells[pos.Row][pos.Col].Empty() {
		return fmt.Errorf("cannot place piece: %s is occupied", pos)
	}
	b.Cells[pos.Row][pos.Col] = p
	return nil
}

// Remove empties a cell and returns what was there.
func (b *Board) Remove(pos Position) Piece {
	p := b.Cells[pos.Row][pos.Col]
	b.Cells[pos.Row][pos.Col] = Piece{}
	return p
}

// Update rewrites the piece in an occupied cell in place.
func (b *Board) Update(pos Position, fn func(*Piece)) {
	if b.Cells[pos.Row][pos.Col].Empty() {
		return
	}
	fn(&b.Cells[pos.Row][pos.Col])
}

// Relocate moves the piece at from into the empty cell to.
func (b *Board) Relocate(from, to Position) error {
	if from == to {
		return nil
	}
	p, ok := b.At(from)
	if !ok {
		return fmt.Errorf("cannot relocate: %s is empty", from)
	}
	if err := b.Place(to, p); err != nil {
		return err
	}
	b.Remove(from)
	return nil
}

// Occupied flattens the board to every piece in row-major order.
func (b *Board) Occupied() []Placed {
	var placed []Placed
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if p := b.Cells[r][c]; !p.Empty() {
				placed = append(placed, Placed{Piece: p, Pos: Position{Row: r, Col: c}})
			}
		}
	}
	return placed
}

// Pieces returns the pieces owned by player in row-major order.
func (b *Board) Pieces(player Player) []Placed {
	var placed []Placed
	for _, p := range b.Occupied() {
		if p.Piece.Owner == player {
			placed = append(placed, p)
		}
	}
	return placed
}

// Count returns how many pieces player has on the board.
func (b *Board) Count(player Player) int {
	count := 0
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c].Owner == player && player != NoPlayer {
				count++
			}
		}
	}
	return count
}

// EmptyNeighbors returns the empty cells of the 8-neighborhood of pos.
func (b *Board) EmptyNeighbors(pos Position) []Position {
	var cells []Position
	for _, d := range kingSteps {
		if next := pos.Add(d[0], d[1]); b.IsEmpty(next) {
			cells = append(cells, next)
		}
	}
	return cells
}

// String renders a compact text grid of piece glyphs.
func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.Cells[r][c].Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var classGlyphs = [numClasses]string{
	Knight:   "K",
	Assassin: "S",
	Archer:   "A",
	Mage:     "M",
	Guard:    "G",
	Thief:    "T",
	Healer:   "H",
}

// Glyph is G/B for the owner followed by a class letter, lower case once the
// ability is spent. Empty cells are "..".
func (p Piece) Glyph() string {
	if p.Empty() {
		return ".."
	}
	initial := "?"
	if p.Class.Valid() {
		initial = classGlyphs[p.Class]
	}
	if p.AbilityUsed {
		initial = strings.ToLower(initial)
	}
	return p.Owner.String()[:1] + initial
}
