package league_test

import (
	"math/rand"
	"testing"

	"github.com/jdmarch/breakaway/internal/core/gen"
	"github.com/jdmarch/breakaway/internal/core/league"
	. "github.com/smartystreets/goconvey/convey"
)

func buildLeague(seed int64) (*league.League, *rand.Rand) {
	rng := rand.New(rand.NewSource(seed))
	teams, err := gen.BuildTeams(rng, gen.DefaultOptions())
	if err != nil {
		panic(err)
	}
	l, err := league.New(teams)
	if err != nil {
		panic(err)
	}
	return l, rng
}

func TestLeagueStructure(t *testing.T) {
	Convey("Given a generated 32-team league", t, func() {
		l, _ := buildLeague(1)

		Convey("It has 8 divisions of 4 inside 2 conferences of 16", func() {
			So(l.Divisions, ShouldHaveLength, 8)
			for _, d := range l.Divisions {
				So(d.Teams, ShouldHaveLength, 4)
			}
			So(l.Conferences, ShouldHaveLength, 2)
			So(l.Conferences[0].Teams(), ShouldHaveLength, 16)
			So(l.Conferences[1].Teams(), ShouldHaveLength, 16)
		})

		Convey("Every team maps back to its division and conference", func() {
			for _, team := range l.Teams {
				div := l.TeamDivision(team)
				conf := l.TeamConference(team)
				So(div, ShouldNotBeNil)
				So(conf, ShouldNotBeNil)
				So(conf.Teams(), ShouldContain, team)
			}
		})

		Convey("Rivals share a division", func() {
			canada := l.Teams[0]
			So(canada.Name, ShouldEqual, "Canada")
			So(l.TeamDivision(canada).Name, ShouldEqual, "Atlantic")
			So(l.TeamConference(canada).Name, ShouldEqual, "Eastern")
		})
	})

	Convey("A league needs exactly 32 teams", t, func() {
		rng := rand.New(rand.NewSource(2))
		teams, err := gen.BuildTeams(rng, gen.Options{NumTeams: 32, NumLines: 4, NumPairs: 3, Goalies: 2})
		So(err, ShouldBeNil)
		_, err = league.New(teams[:30])
		So(err, ShouldNotBeNil)
	})
}

func TestSchedule(t *testing.T) {
	Convey("Given a built schedule", t, func() {
		l, rng := buildLeague(3)
		schedule := l.BuildSchedule(rng)

		Convey("There are 1312 games and 82 per team", func() {
			So(schedule, ShouldHaveLength, 32*82/2)

			perTeam := make(map[string]int)
			home := make(map[string]int)
			for _, m := range schedule {
				perTeam[m.Home.Name]++
				perTeam[m.Away.Name]++
				home[m.Home.Name]++
			}
			So(perTeam, ShouldHaveLength, 32)
			for _, n := range perTeam {
				So(n, ShouldEqual, 82)
			}
			// Per-pair alternation bounds hosting duties; odd series all
			// breaking one way still stays within this window.
			for _, n := range home {
				So(n, ShouldBeBetweenOrEqual, 34, 48)
			}
		})

		Convey("Division rivals meet 4 or 5 times, cross-conference twice", func() {
			meetings := make(map[[2]string]int)
			for _, m := range schedule {
				key := [2]string{m.Home.Name, m.Away.Name}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				meetings[key]++
			}

			canada := l.Teams[0]
			div := l.TeamDivision(canada)
			for _, rival := range div.Teams {
				if rival == canada {
					continue
				}
				key := [2]string{canada.Name, rival.Name}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				So(meetings[key], ShouldBeBetweenOrEqual, 4, 5)
			}

			key := [2]string{"Canada", "Latvia"} // opposite conferences
			So(meetings[key], ShouldEqual, 2)
		})

		Convey("Weeks never double-book a team", func() {
			weeks := league.BuildWeeks(schedule)
			So(weeks, ShouldNotBeEmpty)

			total := 0
			for _, week := range weeks {
				seen := make(map[string]bool)
				for _, m := range week {
					So(seen[m.Home.Name], ShouldBeFalse)
					So(seen[m.Away.Name], ShouldBeFalse)
					seen[m.Home.Name] = true
					seen[m.Away.Name] = true
				}
				total += len(week)
			}
			So(total, ShouldEqual, len(schedule))
		})

		Convey("The same seed reproduces the schedule", func() {
			l2, rng2 := buildLeague(3)
			schedule2 := l2.BuildSchedule(rng2)
			So(schedule2, ShouldHaveLength, len(schedule))
			for i := range schedule {
				So(schedule2[i].Home.Name, ShouldEqual, schedule[i].Home.Name)
				So(schedule2[i].Away.Name, ShouldEqual, schedule[i].Away.Name)
			}
		})
	})
}

func TestStandings(t *testing.T) {
	Convey("Given a handful of results", t, func() {
		l, _ := buildLeague(4)
		games := []league.GameRow{
			{GameID: 1, Week: 1, HomeTeam: "Canada", AwayTeam: "Sweden", HomeScore: 3, AwayScore: 1, Winner: "Canada", Loser: "Sweden"},
			{GameID: 2, Week: 1, HomeTeam: "Finland", AwayTeam: "Canada", HomeScore: 2, AwayScore: 3, WentOT: true, Winner: "Canada", Loser: "Finland"},
			{GameID: 3, Week: 2, HomeTeam: "Sweden", AwayTeam: "Finland", HomeScore: 0, AwayScore: 4, Winner: "Finland", Loser: "Sweden"},
		}
		rows := l.Standings(games, 0)

		byTeam := make(map[string]league.StandingsRow)
		for _, r := range rows {
			byTeam[r.Team] = r
		}

		Convey("Points follow the 2/1/0 rule", func() {
			So(byTeam["Canada"].PTS, ShouldEqual, 4)
			So(byTeam["Canada"].W, ShouldEqual, 1)
			So(byTeam["Canada"].OTW, ShouldEqual, 1)

			So(byTeam["Finland"].PTS, ShouldEqual, 3) // OT loss + regulation win
			So(byTeam["Finland"].OTL, ShouldEqual, 1)

			So(byTeam["Sweden"].PTS, ShouldEqual, 0)
			So(byTeam["Sweden"].L, ShouldEqual, 2)
		})

		Convey("Goal accounting balances", func() {
			So(byTeam["Canada"].GF, ShouldEqual, 6)
			So(byTeam["Canada"].GA, ShouldEqual, 3)
			So(byTeam["Sweden"].GD, ShouldEqual, -6)
		})

		Convey("The table sorts by points", func() {
			So(rows[0].Team, ShouldEqual, "Canada")
			So(rows[1].Team, ShouldEqual, "Finland")
		})

		Convey("through_week filters later games", func() {
			week1 := l.Standings(games, 1)
			for _, r := range week1 {
				if r.Team == "Sweden" {
					So(r.GP, ShouldEqual, 1)
				}
			}
		})
	})
}
