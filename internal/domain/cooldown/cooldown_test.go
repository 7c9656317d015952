package cooldown_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/tilebingo/internal/domain/cooldown"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeClock is a hand-cranked time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
}

func TestParsePolicy(t *testing.T) {
	Convey("Given policy configuration strings", t, func() {
		Convey("When parsing valid values", func() {
			p, err := cooldown.ParsePolicy("team")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, cooldown.PolicyTeam)

			p, err = cooldown.ParsePolicy(" Member ")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, cooldown.PolicyMember)

			p, err = cooldown.ParsePolicy("")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, cooldown.PolicyTeam)
		})

		Convey("When parsing an unknown value", func() {
			_, err := cooldown.ParsePolicy("galaxy")
			So(errors.Is(err, cooldown.ErrUnknownPolicy), ShouldBeTrue)
		})
	})
}

func TestGateTeamPolicy(t *testing.T) {
	Convey("Given a per-team gate with a simulated clock", t, func() {
		clock := newClock()
		gate := cooldown.New(
			cooldown.WithWindow(20*time.Minute),
			cooldown.WithPolicy(cooldown.PolicyTeam),
			cooldown.WithClock(clock.now),
		)

		Convey("When no success has been recorded", func() {
			_, blocked := gate.Check(1001, 1)

			Convey("Then the gate should be open", func() {
				So(blocked, ShouldBeFalse)
			})
		})

		Convey("When one member succeeds", func() {
			gate.Record(1001, 1)

			Convey("Then the same member is blocked inside the window", func() {
				remaining, blocked := gate.Check(1001, 1)
				So(blocked, ShouldBeTrue)
				So(remaining, ShouldEqual, 20*time.Minute)
			})

			Convey("And every teammate is blocked too", func() {
				_, blocked := gate.Check(2002, 1)
				So(blocked, ShouldBeTrue)
			})

			Convey("And other teams are unaffected", func() {
				_, blocked := gate.Check(3003, 2)
				So(blocked, ShouldBeFalse)
			})

			Convey("And the gate reopens once the window elapses", func() {
				clock.advance(20 * time.Minute)
				_, blocked := gate.Check(1001, 1)
				So(blocked, ShouldBeFalse)
			})

			Convey("And a failed check never refreshes the window", func() {
				clock.advance(19 * time.Minute)
				remaining, blocked := gate.Check(2002, 1)
				So(blocked, ShouldBeTrue)
				So(remaining, ShouldEqual, time.Minute)

				clock.advance(time.Minute)
				_, blocked = gate.Check(2002, 1)
				So(blocked, ShouldBeFalse)
			})
		})
	})
}

func TestGateMemberPolicy(t *testing.T) {
	Convey("Given a per-member gate", t, func() {
		clock := newClock()
		gate := cooldown.New(
			cooldown.WithPolicy(cooldown.PolicyMember),
			cooldown.WithClock(clock.now),
		)

		Convey("When one member succeeds", func() {
			gate.Record(1001, 1)

			Convey("Then only that member is blocked", func() {
				_, blocked := gate.Check(1001, 1)
				So(blocked, ShouldBeTrue)

				_, blocked = gate.Check(2002, 1)
				So(blocked, ShouldBeFalse)
			})
		})
	})
}

func TestGateReset(t *testing.T) {
	Convey("Given a per-member gate with several live entries", t, func() {
		clock := newClock()
		gate := cooldown.New(
			cooldown.WithPolicy(cooldown.PolicyMember),
			cooldown.WithClock(clock.now),
		)
		gate.Record(1001, 1)
		gate.Record(2002, 1)
		gate.Record(3003, 2)

		Convey("When resetting team 1", func() {
			cleared := gate.Reset(1)

			Convey("Then both of team 1's entries should be cleared", func() {
				So(cleared, ShouldEqual, 2)

				_, blocked := gate.Check(1001, 1)
				So(blocked, ShouldBeFalse)
				_, blocked = gate.Check(2002, 1)
				So(blocked, ShouldBeFalse)
			})

			Convey("And team 2's entry should survive", func() {
				_, blocked := gate.Check(3003, 2)
				So(blocked, ShouldBeTrue)
			})
		})

		Convey("When resetting a team with no entries", func() {
			So(gate.Reset(42), ShouldEqual, 0)
		})
	})
}

func TestGateSnapshot(t *testing.T) {
	Convey("Given a gate with live and expired entries", t, func() {
		clock := newClock()
		gate := cooldown.New(
			cooldown.WithWindow(20*time.Minute),
			cooldown.WithPolicy(cooldown.PolicyMember),
			cooldown.WithClock(clock.now),
		)
		gate.Record(2002, 2)
		clock.advance(25 * time.Minute) // expires the first entry
		gate.Record(1001, 1)
		clock.advance(5 * time.Minute)

		Convey("When taking a snapshot", func() {
			snap := gate.Snapshot()

			Convey("Then only unexpired entries should appear", func() {
				So(len(snap), ShouldEqual, 1)
				So(snap[0].TeamID, ShouldEqual, 1)
				So(snap[0].DiscordID, ShouldEqual, 1001)
				So(snap[0].Remaining, ShouldEqual, 15*time.Minute)
			})
		})
	})
}
