package player

import (
	"fmt"
	"strings"

	"gambit/game"
	"gambit/utils"

	"github.com/logrusorgru/aurora"
)

// Render draws the board with row/column labels. Gold pieces are yellow,
// Black pieces cyan and highlighted cells green.
func Render(au aurora.Aurora, b *game.Board, highlights []game.Position) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for c := range b.Cells[0] {
		fmt.Fprintf(&sb, " %d ", c)
	}
	sb.WriteByte('\n')
	for r := range b.Cells {
		fmt.Fprintf(&sb, "%d  ", r)
		for c := range b.Cells[r] {
			pos := game.Position{Row: r, Col: c}
			p := b.Cells[r][c]
			var cell aurora.Value
			switch p.Owner {
			case game.Gold:
				cell = au.Yellow(p.Glyph())
			case game.Black:
				cell = au.Cyan(p.Glyph())
			default:
				cell = au.Faint(p.Glyph())
			}
			if utils.Contains(highlights, pos) {
				cell = au.BgGreen(cell)
			}
			fmt.Fprintf(&sb, "%s ", cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Status is the one-line match summary under the board.
func Status(au aurora.Aurora, ms *game.MatchState) string {
	if ms.Over() {
		return au.Bold(fmt.Sprintf("%s wins by %s", ms.Winner(), ms.WinReason)).String()
	}
	status := fmt.Sprintf("turn %d, %s to move", ms.Turn+1, ms.CurrentPlayer)
	if ms.GuardActiveFor.Valid() {
		status += fmt.Sprintf(", %s guarded", ms.GuardActiveFor)
	}
	if ms.ExtraTurns > 0 {
		status += ", extra turn banked"
	}
	return fmt.Sprintf("%s | captured: Gold %d, Black %d", status, len(ms.Captured[game.Gold]), len(ms.Captured[game.Black]))
}
