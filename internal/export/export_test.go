package export_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jdmarch/breakaway/internal/core/league"
	"github.com/jdmarch/breakaway/internal/core/sim"
	"github.com/jdmarch/breakaway/internal/export"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleSeason() *league.SeasonResult {
	events := []sim.Event{
		{Time: 0, Kind: sim.KindPeriodStart, Desc: "Start of Period 1"},
		{Time: 431.2, Kind: sim.KindShot, Desc: "Home team shot (xG: 0.101)", Side: sim.SideHome, XG: 0.101, Context: "even"},
		{Time: 431.2, Kind: sim.KindGoal, Desc: "Home team scores! 1-0", Side: sim.SideHome, HomeScore: 1, Assists: 2, Context: "even"},
		{Time: 1200, Kind: sim.KindPeriodEnd, Desc: "End of Period 1", HomeScore: 1},
	}
	return &league.SeasonResult{
		Games: []league.GameRow{
			{GameID: 1, Week: 1, HomeTeam: "Canada", AwayTeam: "Sweden", HomeScore: 3, AwayScore: 2, WentOT: true, Winner: "Canada", Loser: "Sweden"},
		},
		PBP: func() []league.PBPRow {
			rows := make([]league.PBPRow, 0, len(events))
			for _, ev := range events {
				rows = append(rows, league.PBPRow{GameID: 1, Week: 1, HomeTeam: "Canada", AwayTeam: "Sweden", Period: 1, Event: ev})
			}
			return rows
		}(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	Convey("Given a store with one saved season", t, func() {
		path := filepath.Join(t.TempDir(), "season.db")
		store, err := export.OpenStore(path)
		So(err, ShouldBeNil)
		defer store.Close()

		So(store.BeginRun(2026, 1, 0), ShouldBeNil)

		res := sampleSeason()
		teamBox := []league.TeamBoxRow{{GameID: 1, Week: 1, HomeTeam: "Canada", AwayTeam: "Sweden", WentOT: true, HomeShots: 30, AwayShots: 25, HomeGoals: 3, AwayGoals: 2}}
		standings := []league.StandingsRow{{Team: "Canada", GP: 1, OTW: 1, PTS: 2, GF: 3, GA: 2, GD: 1}}
		So(store.SaveSeason(res, teamBox, standings), ShouldBeNil)

		Convey("Play-by-play games come back in order", func() {
			games, err := store.LoadPBPGames()
			So(err, ShouldBeNil)
			So(games, ShouldHaveLength, 1)
			So(games[0].GameID, ShouldEqual, 1)
			So(games[0].HomeTeam, ShouldEqual, "Canada")
			So(games[0].Events, ShouldHaveLength, 4)

			var first sim.Event
			So(json.Unmarshal(games[0].Events[0], &first), ShouldBeNil)
			So(first.Kind, ShouldEqual, sim.KindPeriodStart)

			var goal sim.Event
			So(json.Unmarshal(games[0].Events[2], &goal), ShouldBeNil)
			So(goal.Kind, ShouldEqual, sim.KindGoal)
			So(goal.Assists, ShouldEqual, 2)
		})
	})
}

func TestCSVWriters(t *testing.T) {
	Convey("Game results land on disk as CSV", t, func() {
		dir := t.TempDir()
		res := sampleSeason()

		So(export.WriteGameResults(dir, res.Games), ShouldBeNil)
		So(export.WritePBP(dir, res.PBP), ShouldBeNil)

		f, err := os.Open(filepath.Join(dir, "game_results.csv"))
		So(err, ShouldBeNil)
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		So(err, ShouldBeNil)
		So(records, ShouldHaveLength, 2) // header + one game
		So(records[0][0], ShouldEqual, "game_id")
		So(records[1], ShouldResemble, []string{"1", "1", "Canada", "Sweden", "3", "2", "1", "Canada", "Sweden"})

		p, err := os.Open(filepath.Join(dir, "pbp.csv"))
		So(err, ShouldBeNil)
		defer p.Close()

		pbp, err := csv.NewReader(p).ReadAll()
		So(err, ShouldBeNil)
		So(pbp, ShouldHaveLength, 5)
		So(pbp[2][6], ShouldEqual, "shot")
	})
}
