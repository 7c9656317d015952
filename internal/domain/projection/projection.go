// Package projection derives board state from the move log. The log is
// ground truth; tile revealed flags are a cache this package rebuilds.
package projection

import (
	"fmt"
	"strings"

	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/internal/domain/scoring"
)

// Per-cell glyphs keyed by tile type, plus the hidden-cell glyph.
var glyphs = map[model.TileType]string{
	model.TileKillCount:  " 1️⃣",
	model.TileCollection: " 2️⃣",
	model.TileUnique:     " 3️⃣",
	model.TileBomb:       " \U0001f4a3",
}

const (
	hiddenGlyph  = " ⬜"
	columnHeader = "    1️⃣ 2️⃣ 3️⃣ 4️⃣ 5️⃣ 6️⃣ 7️⃣"
)

// Apply rebuilds a board's revealed flags from the move log: every tile is
// reset, then every coordinate in the team's subset of the log is marked
// revealed. Idempotent and order-independent; entries for other teams are
// ignored.
func Apply(board *model.Board, teamID int, moves []model.Move) {
	board.ForEach(func(tile *model.Tile) {
		tile.Revealed = false
	})

	for _, mv := range moves {
		if mv.TeamID != teamID {
			continue
		}
		tile, err := board.Lookup(mv.Coord)
		if err != nil {
			continue // unreachable on a full board; skip rather than corrupt
		}
		tile.Revealed = true
	}
}

// Render produces the fixed-width textual grid with row/column headers and
// a total-points trailer. Strictly read-only: callers must Apply first.
func Render(board *model.Board) string {
	var sb strings.Builder
	sb.WriteString(columnHeader)

	for r := 0; r < model.BoardSize; r++ {
		sb.WriteString(fmt.Sprintf("\n%c  ", 'A'+r))
		for c := 0; c < model.BoardSize; c++ {
			tile := board.TileAt(r, c)
			if !tile.Revealed {
				sb.WriteString(hiddenGlyph)
				continue
			}
			sb.WriteString(glyphs[tile.Type])
		}
	}

	score, _ := scoring.BoardScore(board)
	sb.WriteString(fmt.Sprintf("\n\n\U0001f3c6 ** Total Team Points: %d **", score))
	return sb.String()
}
