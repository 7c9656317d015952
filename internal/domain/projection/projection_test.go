package projection_test

import (
	"strings"
	"testing"
	"time"

	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/internal/domain/projection"
	. "github.com/smartystreets/goconvey/convey"
)

func coord(t *testing.T, s string) model.Coordinate {
	t.Helper()
	c, err := model.ParseCoordinate(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func move(t *testing.T, teamID int, coordStr string) model.Move {
	t.Helper()
	return model.Move{
		TeamID:    teamID,
		DiscordID: 1,
		Coord:     coord(t, coordStr),
		Timestamp: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
	}
}

func TestApply(t *testing.T) {
	Convey("Given a board and a mixed-team move log", t, func() {
		board := model.NewBoard(nil)
		moves := []model.Move{
			move(t, 1, "A,1"),
			move(t, 2, "B,2"),
			move(t, 1, "C,3"),
		}

		Convey("When applying the log for team 1", func() {
			projection.Apply(board, 1, moves)

			Convey("Then exactly team 1's coordinates should be revealed", func() {
				revealed := map[string]bool{}
				board.ForEach(func(tile *model.Tile) {
					if tile.Revealed {
						revealed[tile.Coordinates.String()] = true
					}
				})
				So(revealed, ShouldResemble, map[string]bool{"A1": true, "C3": true})
			})
		})

		Convey("When a tile was revealed out-of-band", func() {
			stray, err := board.Lookup(coord(t, "G,7"))
			So(err, ShouldBeNil)
			stray.Revealed = true

			projection.Apply(board, 1, moves)

			Convey("Then applying should reset it to match the log", func() {
				So(stray.Revealed, ShouldBeFalse)
			})
		})

		Convey("When applying twice", func() {
			projection.Apply(board, 1, moves)
			projection.Apply(board, 1, moves)

			Convey("Then the result should be identical (idempotent)", func() {
				tile, err := board.Lookup(coord(t, "A,1"))
				So(err, ShouldBeNil)
				So(tile.Revealed, ShouldBeTrue)

				other, err := board.Lookup(coord(t, "B,2"))
				So(err, ShouldBeNil)
				So(other.Revealed, ShouldBeFalse)
			})
		})
	})
}

func TestRender(t *testing.T) {
	Convey("Given a projected board", t, func() {
		defs := []model.Tile{
			{Coordinates: coord(t, "A,1"), Type: model.TileBomb},
		}
		board := model.NewBoard(defs)
		projection.Apply(board, 1, []model.Move{move(t, 1, "A,1")})

		Convey("When rendering", func() {
			out := projection.Render(board)

			Convey("Then the grid should show headers, glyphs and the score", func() {
				So(out, ShouldContainSubstring, "1️⃣ 2️⃣ 3️⃣ 4️⃣ 5️⃣ 6️⃣ 7️⃣")
				So(out, ShouldContainSubstring, "\nA  ")
				So(out, ShouldContainSubstring, "\nG  ")
				So(out, ShouldContainSubstring, "\U0001f4a3")
				So(out, ShouldContainSubstring, "Total Team Points: 4")
			})

			Convey("And unrevealed cells should use the hidden glyph", func() {
				So(strings.Count(out, "⬜"), ShouldEqual, model.BoardSize*model.BoardSize-1)
			})

			Convey("And rendering should not mutate board state", func() {
				before := 0
				board.ForEach(func(tile *model.Tile) {
					if tile.Revealed {
						before++
					}
				})

				_ = projection.Render(board)

				after := 0
				board.ForEach(func(tile *model.Tile) {
					if tile.Revealed {
						after++
					}
				})
				So(after, ShouldEqual, before)
			})
		})
	})
}
