package sim

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/jdmarch/breakaway/internal/core/roster"
	. "github.com/smartystreets/goconvey/convey"
)

// testTeam builds a full 20-player roster with mild skill variation.
func testTeam(name string, seed int64) *roster.Team {
	rng := rand.New(rand.NewSource(seed))
	skill := func(mean float64) float64 { return mean + 0.1*rng.NormFloat64() }

	var players []*roster.Player
	for i := 0; i < 12; i++ {
		players = append(players, &roster.Player{
			Name:        fmt.Sprintf("%s F%02d", name, i+1),
			Position:    roster.Forward,
			Creation:    skill(0.6),
			Conversion:  skill(0.55),
			Suppression: skill(0.4),
			Prevention:  skill(0.4),
			Stamina:     skill(0.6),
			Discipline:  skill(0.5),
		})
	}
	for i := 0; i < 6; i++ {
		players = append(players, &roster.Player{
			Name:        fmt.Sprintf("%s D%02d", name, i+1),
			Position:    roster.Defenseman,
			Creation:    skill(0.4),
			Conversion:  skill(0.35),
			Suppression: skill(0.6),
			Prevention:  skill(0.6),
			Stamina:     skill(0.6),
			Discipline:  skill(0.5),
		})
	}
	for i := 0; i < 2; i++ {
		players = append(players, &roster.Player{
			Name:        fmt.Sprintf("%s G%02d", name, i+1),
			Position:    roster.Goalie,
			Goalkeeping: skill(0.6),
			Discipline:  skill(0.7),
		})
	}
	coach := &roster.Coach{Name: name + " Coach", Playstyle: roster.Balanced}
	team, err := roster.NewTeam(name, players, coach, 1.02, 0.0025, 0.98, -0.0025)
	if err != nil {
		panic(err)
	}
	return team
}

func simulateSeeded(seed int64) Result {
	home := testTeam("Canada", 11)
	away := testTeam("Sweden", 22)
	rng := rand.New(rand.NewSource(seed))
	return NewGame(home, away, rng, DefaultParams()).Simulate()
}

func TestSimulateDeterminism(t *testing.T) {
	Convey("Two games with the same seed are identical", t, func() {
		a := simulateSeeded(7)
		b := simulateSeeded(7)

		So(a.HomeScore, ShouldEqual, b.HomeScore)
		So(a.AwayScore, ShouldEqual, b.AwayScore)
		So(a.EndTime, ShouldEqual, b.EndTime)
		So(len(a.Events), ShouldEqual, len(b.Events))
		So(reflect.DeepEqual(a.Events, b.Events), ShouldBeTrue)
	})

	Convey("Different seeds diverge", t, func() {
		a := simulateSeeded(7)
		b := simulateSeeded(8)
		So(reflect.DeepEqual(a.Events, b.Events), ShouldBeFalse)
	})
}

func TestSimulateInvariants(t *testing.T) {
	Convey("Across a batch of seeded games", t, func() {
		for seed := int64(1); seed <= 20; seed++ {
			res := simulateSeeded(seed)

			Convey(fmt.Sprintf("Seed %d produces a well-formed game", seed), func() {
				So(res.HomeScore, ShouldNotEqual, res.AwayScore)
				So(res.EndTime, ShouldBeGreaterThanOrEqualTo, 3600.0)
				So(res.Events, ShouldNotBeEmpty)
				So(res.Events[0].Kind, ShouldEqual, KindPeriodStart)

				periodStarts := 0
				lastTime := 0.0
				lastHome, lastAway := 0, 0
				for _, ev := range res.Events {
					So(ev.Time, ShouldBeGreaterThanOrEqualTo, lastTime)
					So(ev.HomeScore, ShouldBeGreaterThanOrEqualTo, lastHome)
					So(ev.AwayScore, ShouldBeGreaterThanOrEqualTo, lastAway)
					lastTime = ev.Time
					lastHome, lastAway = ev.HomeScore, ev.AwayScore

					if ev.Kind == KindPeriodStart {
						periodStarts++
					}
					if len(ev.HomeOnIce) > 0 {
						So(len(ev.HomeOnIce), ShouldBeBetweenOrEqual, 4, 6)
						So(len(ev.AwayOnIce), ShouldBeBetweenOrEqual, 4, 6)
					}
				}
				So(periodStarts, ShouldEqual, 3)

				last := res.Events[len(res.Events)-1]
				if res.WentOT {
					So(last.Kind, ShouldEqual, KindOvertimeGoal)
					So(res.EndTime, ShouldBeGreaterThan, 3600.0)
				} else {
					So(last.Kind, ShouldEqual, KindPeriodEnd)
					So(res.EndTime, ShouldEqual, 3600.0)
				}

				goals := 0
				for _, ev := range res.Events {
					if ev.Kind == KindGoal {
						goals++
					}
				}
				So(goals, ShouldEqual, res.HomeScore+res.AwayScore)
			})
		}
	})
}

func TestOvertimeBlocks(t *testing.T) {
	Convey("Overtime games carry the sudden-death markers", t, func() {
		found := false
		for seed := int64(1); seed <= 60 && !found; seed++ {
			res := simulateSeeded(seed)
			if !res.WentOT {
				continue
			}
			found = true

			otStarts := 0
			var otStartTime float64
			for _, ev := range res.Events {
				if ev.Kind == KindOvertimeStart {
					otStarts++
					if otStartTime == 0 {
						otStartTime = ev.Time
					}
				}
			}
			So(otStarts, ShouldBeGreaterThanOrEqualTo, 1)
			So(otStartTime, ShouldBeGreaterThanOrEqualTo, 3600.0)

			// The last goal decides it.
			So(res.Events[len(res.Events)-1].Kind, ShouldEqual, KindOvertimeGoal)
		}
		So(found, ShouldBeTrue)
	})
}
