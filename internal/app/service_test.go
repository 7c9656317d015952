package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/tilebingo/internal/adapters/repository"
	"github.com/okian/tilebingo/internal/app"
	"github.com/okian/tilebingo/internal/domain/cooldown"
	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/internal/domain/roster"
	"github.com/okian/tilebingo/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

const (
	alice = int64(100)
	bob   = int64(200)
	carol = int64(300) // team 2
	dave  = int64(999) // not on any roster
)

func newTeams() *roster.Registry {
	return roster.New([]*roster.Team{
		{
			ID: 1,
			Members: []roster.Member{
				{RSN: "Alice", DiscordID: alice},
				{RSN: "Bob", DiscordID: bob},
			},
			Board: model.NewBoard(nil),
		},
		{
			ID: 2,
			Members: []roster.Member{
				{RSN: "Carol", DiscordID: carol},
			},
			Board: model.NewBoard(nil),
		},
	})
}

func newEngine(t *testing.T, clock *fakeClock) *app.Service {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	store := repository.NewFileStore(repository.WithPath(filepath.Join(t.TempDir(), "move_log.json")))
	gate := cooldown.New(cooldown.WithClock(clock.now))
	svc := app.New(newTeams(), store, gate, app.WithClock(clock.now))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestReveal(t *testing.T) {
	Convey("Given a started engine with empty tile definitions", t, func() {
		ctx := context.Background()
		clock := &fakeClock{t: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
		svc := newEngine(t, clock)

		Convey("When a team member reveals A,1", func() {
			tile, err := svc.Reveal(ctx, alice, "A,1")

			Convey("Then the default tile is returned and logged", func() {
				So(err, ShouldBeNil)
				So(tile.Coordinates.String(), ShouldEqual, "A1")
				So(tile.Type, ShouldEqual, model.TileKillCount)
				So(tile.DropSource, ShouldEqual, "General Graardor")
				So(tile.Revealed, ShouldBeTrue)
				So(len(svc.Moves(ctx)), ShouldEqual, 1)
				So(svc.Moves(ctx)[0].Timestamp, ShouldEqual, clock.t)
			})

			Convey("And the rendered board scores exactly one point", func() {
				view, verr := svc.BoardViewFor(ctx, alice)
				So(verr, ShouldBeNil)
				So(view, ShouldContainSubstring, "Total Team Points: 1")
			})
		})

		Convey("When a stranger tries to reveal", func() {
			_, err := svc.Reveal(ctx, dave, "A,1")

			Convey("Then the attempt is rejected without logging anything", func() {
				So(errors.Is(err, app.ErrNotOnTeam), ShouldBeTrue)
				So(len(svc.Moves(ctx)), ShouldEqual, 0)
			})
		})

		Convey("When the coordinate is malformed", func() {
			_, err := svc.Reveal(ctx, alice, "A1")

			Convey("Then a format error comes back and nothing changes", func() {
				So(errors.Is(err, model.ErrInvalidCoordinateFormat), ShouldBeTrue)
				So(len(svc.Moves(ctx)), ShouldEqual, 0)
			})
		})

		Convey("When the coordinate is off the board", func() {
			_, err := svc.Reveal(ctx, alice, "H,1")

			Convey("Then a range error comes back", func() {
				So(errors.Is(err, model.ErrCoordinateOutOfRange), ShouldBeTrue)
			})
		})

		Convey("When input is sloppily cased and spaced", func() {
			tile, err := svc.Reveal(ctx, alice, "a, 2")

			Convey("Then it parses to the canonical coordinate", func() {
				So(err, ShouldBeNil)
				So(tile.Coordinates.String(), ShouldEqual, "A2")
			})
		})
	})
}

func TestRevealGuards(t *testing.T) {
	Convey("Given one successful reveal on team 1", t, func() {
		ctx := context.Background()
		clock := &fakeClock{t: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
		svc := newEngine(t, clock)

		_, err := svc.Reveal(ctx, alice, "C,3")
		So(err, ShouldBeNil)

		Convey("When a teammate tries again inside the window", func() {
			_, err := svc.Reveal(ctx, bob, "C,4")

			Convey("Then the whole team is on cooldown with the remaining wait", func() {
				So(errors.Is(err, app.ErrOnCooldown), ShouldBeTrue)
				var ce *app.CooldownError
				So(errors.As(err, &ce), ShouldBeTrue)
				So(ce.Remaining, ShouldEqual, cooldown.DefaultWindow)
				So(len(svc.Moves(ctx)), ShouldEqual, 1)
			})
		})

		Convey("When the other team reveals in the same window", func() {
			_, err := svc.Reveal(ctx, carol, "C,3")

			Convey("Then it is unaffected by team 1's cooldown", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When the window has fully elapsed", func() {
			clock.advance(cooldown.DefaultWindow)
			_, err := svc.Reveal(ctx, bob, "C,4")

			Convey("Then the team may reveal again", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When the same tile is picked after the window", func() {
			clock.advance(cooldown.DefaultWindow)
			_, err := svc.Reveal(ctx, bob, "C,3")

			Convey("Then the already-revealed guard fires and the log is unchanged", func() {
				So(errors.Is(err, app.ErrAlreadyRevealed), ShouldBeTrue)
				So(len(svc.Moves(ctx)), ShouldEqual, 1)
			})

			Convey("And the failed attempt does not restart the cooldown", func() {
				_, err := svc.Reveal(ctx, bob, "C,4")
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestUndo(t *testing.T) {
	Convey("Given a team with two logged reveals", t, func() {
		ctx := context.Background()
		clock := &fakeClock{t: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
		svc := newEngine(t, clock)

		_, err := svc.Reveal(ctx, alice, "A,1")
		So(err, ShouldBeNil)
		clock.advance(cooldown.DefaultWindow)
		_, err = svc.Reveal(ctx, bob, "B,2")
		So(err, ShouldBeNil)

		Convey("When an authorized caller undoes", func() {
			mv, err := svc.Undo(ctx, 1, true)

			Convey("Then exactly the most recent move is removed and unrevealed", func() {
				So(err, ShouldBeNil)
				So(mv.Coord.String(), ShouldEqual, "B2")
				So(len(svc.Moves(ctx)), ShouldEqual, 1)

				view, verr := svc.BoardView(ctx, 1)
				So(verr, ShouldBeNil)
				So(view, ShouldContainSubstring, "Total Team Points: 1")
			})

			Convey("And the tile can be revealed again afterwards", func() {
				clock.advance(cooldown.DefaultWindow)
				tile, rerr := svc.Reveal(ctx, alice, "B,2")
				So(rerr, ShouldBeNil)
				So(tile.Coordinates.String(), ShouldEqual, "B2")
			})
		})

		Convey("When the caller is not authorized", func() {
			_, err := svc.Undo(ctx, 1, false)

			Convey("Then the request is refused", func() {
				So(errors.Is(err, app.ErrUnauthorized), ShouldBeTrue)
				So(len(svc.Moves(ctx)), ShouldEqual, 2)
			})
		})

		Convey("When the team id is unknown", func() {
			_, err := svc.Undo(ctx, 42, true)

			Convey("Then a team-not-found error comes back", func() {
				So(errors.Is(err, app.ErrTeamNotFound), ShouldBeTrue)
			})
		})

		Convey("When a team has no moves", func() {
			_, err := svc.Undo(ctx, 2, true)

			Convey("Then the no-moves sentinel comes back", func() {
				So(errors.Is(err, repository.ErrNoMovesForTeam), ShouldBeTrue)
			})
		})
	})
}

func TestReadModels(t *testing.T) {
	Convey("Given an engine with reveals on both teams", t, func() {
		ctx := context.Background()
		clock := &fakeClock{t: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
		svc := newEngine(t, clock)

		_, err := svc.Reveal(ctx, alice, "A,1")
		So(err, ShouldBeNil)
		_, err = svc.Reveal(ctx, carol, "B,1")
		So(err, ShouldBeNil)
		clock.advance(cooldown.DefaultWindow)
		_, err = svc.Reveal(ctx, carol, "B,2")
		So(err, ShouldBeNil)

		Convey("When listing a team's moves", func() {
			moves, err := svc.MovesForTeam(ctx, 2)

			Convey("Then only that team's entries come back, in order", func() {
				So(err, ShouldBeNil)
				So(len(moves), ShouldEqual, 2)
				So(moves[0].Coord.String(), ShouldEqual, "B1")
				So(moves[1].Coord.String(), ShouldEqual, "B2")
			})
		})

		Convey("When listing moves for an unknown team", func() {
			_, err := svc.MovesForTeam(ctx, 42)

			Convey("Then a team-not-found error comes back", func() {
				So(errors.Is(err, app.ErrTeamNotFound), ShouldBeTrue)
			})
		})

		Convey("When asking for the last revealed tile", func() {
			tile, err := svc.LastRevealed(ctx, carol)

			Convey("Then the most recent tile for the caller's team comes back", func() {
				So(err, ShouldBeNil)
				So(tile.Coordinates.String(), ShouldEqual, "B2")
			})
		})

		Convey("When a stranger asks for the last revealed tile", func() {
			_, err := svc.LastRevealed(ctx, dave)

			So(errors.Is(err, app.ErrNotOnTeam), ShouldBeTrue)
		})

		Convey("When an admin asks for the leaderboard", func() {
			entries, err := svc.Leaderboard(ctx, true)

			Convey("Then teams rank by score, ties broken by id", func() {
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 2)
				So(entries[0].TeamID, ShouldEqual, 2)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[0].Score, ShouldEqual, 2)
				So(entries[1].TeamID, ShouldEqual, 1)
				So(entries[1].Score, ShouldEqual, 1)
			})
		})

		Convey("When a non-admin asks for the leaderboard", func() {
			_, err := svc.Leaderboard(ctx, false)

			So(errors.Is(err, app.ErrUnauthorized), ShouldBeTrue)
		})

		Convey("When an admin dumps cooldowns", func() {
			statuses, err := svc.Cooldowns(ctx, true)

			Convey("Then the live entries appear sorted by team", func() {
				So(err, ShouldBeNil)
				So(len(statuses), ShouldEqual, 1) // team 1 expired at +window; team 2 restamped
				So(statuses[0].TeamID, ShouldEqual, 2)
			})
		})

		Convey("When an admin resets a team's cooldown", func() {
			cleared, err := svc.ResetCooldown(ctx, 2, true)
			So(err, ShouldBeNil)
			So(cleared, ShouldEqual, 1)

			Convey("Then the team may reveal immediately", func() {
				_, rerr := svc.Reveal(ctx, carol, "B,3")
				So(rerr, ShouldBeNil)
			})
		})
	})
}

func TestRestartReplay(t *testing.T) {
	Convey("Given moves persisted by a previous engine", t, func() {
		ctx := context.Background()
		clock := &fakeClock{t: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
		path := filepath.Join(t.TempDir(), "move_log.json")
		if err := logger.Init(); err != nil {
			t.Fatal(err)
		}

		store := repository.NewFileStore(repository.WithPath(path))
		gate := cooldown.New(cooldown.WithClock(clock.now))
		svc := app.New(newTeams(), store, gate, app.WithClock(clock.now))
		So(svc.Start(ctx), ShouldBeNil)

		_, err := svc.Reveal(ctx, alice, "A,1")
		So(err, ShouldBeNil)
		clock.advance(cooldown.DefaultWindow)
		_, err = svc.Reveal(ctx, bob, "G,7")
		So(err, ShouldBeNil)

		Convey("When a fresh engine starts over the same log file", func() {
			store2 := repository.NewFileStore(repository.WithPath(path))
			gate2 := cooldown.New(cooldown.WithClock(clock.now))
			svc2 := app.New(newTeams(), store2, gate2, app.WithClock(clock.now))
			So(svc2.Start(ctx), ShouldBeNil)

			Convey("Then the projected board matches the pre-restart state", func() {
				before, berr := svc.BoardView(ctx, 1)
				after, aerr := svc2.BoardView(ctx, 1)
				So(berr, ShouldBeNil)
				So(aerr, ShouldBeNil)
				So(after, ShouldEqual, before)
				So(strings.Count(after, "⬜"), ShouldEqual, 47)
			})

			Convey("But cooldowns start empty (not persisted)", func() {
				statuses, serr := svc2.Cooldowns(ctx, true)
				So(serr, ShouldBeNil)
				So(len(statuses), ShouldEqual, 0)
			})
		})
	})
}
