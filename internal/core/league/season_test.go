package league_test

import (
	"testing"

	"github.com/jdmarch/breakaway/internal/core/league"
	"github.com/jdmarch/breakaway/internal/core/sim"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSimulateSeason(t *testing.T) {
	Convey("Given a two-week season segment", t, func() {
		l, rng := buildLeague(7)
		weeks := league.BuildWeeks(l.BuildSchedule(rng))
		opts := league.SeasonOptions{
			Seed:      99,
			Params:    sim.DefaultParams(),
			StartWeek: 1,
			EndWeek:   2,
			PBPWeeks:  1,
		}

		res, err := l.SimulateSeason(weeks, opts)
		So(err, ShouldBeNil)

		Convey("Every scheduled game produced a result", func() {
			So(res.Games, ShouldHaveLength, len(weeks[0])+len(weeks[1]))
			for _, g := range res.Games {
				So(g.HomeScore+g.AwayScore, ShouldBeGreaterThanOrEqualTo, 0)
				So(g.HomeScore, ShouldNotEqual, g.AwayScore)
				So(g.Winner, ShouldNotEqual, g.Loser)
			}
		})

		Convey("Play-by-play only covers the first week", func() {
			So(res.PBP, ShouldNotBeEmpty)
			for _, r := range res.PBP {
				So(r.Week, ShouldEqual, 1)
				So(r.Period, ShouldBeGreaterThanOrEqualTo, 1)
			}
		})

		Convey("Box rows exist for every game", func() {
			seen := make(map[int]bool)
			for _, b := range res.Box {
				seen[b.GameID] = true
			}
			So(seen, ShouldHaveLength, len(res.Games))
		})

		Convey("The same options reproduce the same results", func() {
			res2, err := l.SimulateSeason(weeks, opts)
			So(err, ShouldBeNil)
			So(res2.Games, ShouldResemble, res.Games)
		})

		Convey("Worker count does not change outcomes", func() {
			serial := opts
			serial.Workers = 1
			res3, err := l.SimulateSeason(weeks, serial)
			So(err, ShouldBeNil)
			So(res3.Games, ShouldResemble, res.Games)
		})
	})
}

func TestAggregateTeamBox(t *testing.T) {
	Convey("Team box rows collapse line rows per game", t, func() {
		l, rng := buildLeague(8)
		weeks := league.BuildWeeks(l.BuildSchedule(rng))
		res, err := l.SimulateSeason(weeks, league.SeasonOptions{
			Seed:   5,
			Params: sim.DefaultParams(),
			EndWeek: 1,
		})
		So(err, ShouldBeNil)

		teamBox := league.AggregateTeamBox(res.Box, res.Games)
		So(teamBox, ShouldHaveLength, len(res.Games))

		byID := make(map[int]league.GameRow)
		for _, g := range res.Games {
			byID[g.GameID] = g
		}
		for _, tb := range teamBox {
			game := byID[tb.GameID]
			So(tb.HomeTeam, ShouldEqual, game.HomeTeam)
			So(tb.HomeGoals, ShouldEqual, game.HomeScore)
			So(tb.AwayGoals, ShouldEqual, game.AwayScore)
			So(tb.WentOT, ShouldEqual, game.WentOT)
			So(tb.HomeShots, ShouldBeGreaterThanOrEqualTo, tb.HomeGoals)
			So(tb.AwayShots, ShouldBeGreaterThanOrEqualTo, tb.AwayGoals)
		}
	})
}
