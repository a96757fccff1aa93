package boxscore_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/jdmarch/breakaway/internal/core/boxscore"
	"github.com/jdmarch/breakaway/internal/core/roster"
	"github.com/jdmarch/breakaway/internal/core/sim"
	. "github.com/smartystreets/goconvey/convey"
)

func buildTeam(name string, seed int64) *roster.Team {
	rng := rand.New(rand.NewSource(seed))
	skill := func(mean float64) float64 { return mean + 0.1*rng.NormFloat64() }

	var players []*roster.Player
	for i := 0; i < 12; i++ {
		players = append(players, &roster.Player{
			Name: fmt.Sprintf("%s F%02d", name, i+1), Position: roster.Forward,
			Creation: skill(0.6), Conversion: skill(0.55),
			Suppression: skill(0.4), Prevention: skill(0.4),
			Stamina: skill(0.6), Discipline: skill(0.5),
		})
	}
	for i := 0; i < 6; i++ {
		players = append(players, &roster.Player{
			Name: fmt.Sprintf("%s D%02d", name, i+1), Position: roster.Defenseman,
			Creation: skill(0.4), Conversion: skill(0.35),
			Suppression: skill(0.6), Prevention: skill(0.6),
			Stamina: skill(0.6), Discipline: skill(0.5),
		})
	}
	players = append(players,
		&roster.Player{Name: name + " G01", Position: roster.Goalie, Goalkeeping: skill(0.6)},
		&roster.Player{Name: name + " G02", Position: roster.Goalie, Goalkeeping: skill(0.6)},
	)
	team, err := roster.NewTeam(name, players, &roster.Coach{Name: name + " Coach", Playstyle: roster.StarCentric}, 1.02, 0.0025, 0.98, -0.0025)
	if err != nil {
		panic(err)
	}
	return team
}

func playGame(seed int64) sim.Result {
	home := buildTeam("Finland", 5)
	away := buildTeam("Russia", 9)
	return sim.NewGame(home, away, rand.New(rand.NewSource(seed)), sim.DefaultParams()).Simulate()
}

func TestGenerate(t *testing.T) {
	Convey("Across a batch of replayed games", t, func() {
		for seed := int64(1); seed <= 15; seed++ {
			res := playGame(seed)
			rows := boxscore.Generate(res)

			Convey(fmt.Sprintf("Seed %d attributes the full game", seed), func() {
				So(rows, ShouldNotBeEmpty)

				var toi float64
				var homeShots, awayShots, homeGoals, awayGoals int
				var homePIM int
				for _, row := range rows {
					So(row.TOI, ShouldBeGreaterThanOrEqualTo, 0)
					toi += row.TOI
					homeShots += row.HomeShots
					awayShots += row.AwayShots
					homeGoals += row.HomeGoals
					awayGoals += row.AwayGoals
					homePIM += row.HomePIM
				}

				// Ice time accounts for the whole game, regulation or OT,
				// modulo the microsecond stagger between periods.
				So(math.Abs(toi-res.EndTime), ShouldBeLessThan, 1e-3)

				So(homeGoals, ShouldEqual, res.HomeScore)
				So(awayGoals, ShouldEqual, res.AwayScore)
				So(homeShots, ShouldBeGreaterThanOrEqualTo, homeGoals)
				So(awayShots, ShouldBeGreaterThanOrEqualTo, awayGoals)
				So(homePIM, ShouldBeGreaterThanOrEqualTo, 0)
			})
		}
	})

	Convey("Matchup labels are well-formed", t, func() {
		res := playGame(3)
		valid := map[string]bool{
			boxscore.Top: true, boxscore.Secondary: true,
			boxscore.PP: true, boxscore.PK: true,
		}
		for _, row := range boxscore.Generate(res) {
			m := row.Matchup
			So(valid[m.HomeLine], ShouldBeTrue)
			So(valid[m.HomePair], ShouldBeTrue)
			So(valid[m.AwayLine], ShouldBeTrue)
			So(valid[m.AwayPair], ShouldBeTrue)

			// Special teams collapse both positions on a side together.
			if m.HomeLine == boxscore.PP || m.HomeLine == boxscore.PK {
				So(m.HomePair, ShouldEqual, m.HomeLine)
				So(m.AwayLine, ShouldNotEqual, m.HomeLine)
			}
		}
	})

	Convey("Replay is deterministic for a given result", t, func() {
		res := playGame(4)
		a := boxscore.Generate(res)
		b := boxscore.Generate(res)
		So(a, ShouldResemble, b)
	})
}
