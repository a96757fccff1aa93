package league

import "sort"

// TeamBoxRow collapses a game's line-matchup box rows into one team-level
// row. Max-xG is the best single chance either way, not a sum.
type TeamBoxRow struct {
	GameID   int
	Week     int
	HomeTeam string
	AwayTeam string
	WentOT   bool

	HomeShots int
	AwayShots int
	HomeXG    float64
	AwayXG    float64
	HomeMaxXG float64
	AwayMaxXG float64

	HomeGoals   int
	AwayGoals   int
	HomeAssists int
	AwayAssists int

	HomePenaltiesTaken int
	AwayPenaltiesTaken int
	HomePenaltiesDrawn int
	AwayPenaltiesDrawn int
	HomePIM            int
	AwayPIM            int
}

// AggregateTeamBox rolls per-matchup box rows up to one row per game,
// ordered by game id.
func AggregateTeamBox(boxRows []BoxRow, games []GameRow) []TeamBoxRow {
	wentOT := make(map[int]bool, len(games))
	for _, g := range games {
		wentOT[g.GameID] = g.WentOT
	}

	byGame := make(map[int]*TeamBoxRow)
	for _, br := range boxRows {
		t, ok := byGame[br.GameID]
		if !ok {
			t = &TeamBoxRow{
				GameID:   br.GameID,
				Week:     br.Week,
				HomeTeam: br.HomeTeam,
				AwayTeam: br.AwayTeam,
				WentOT:   wentOT[br.GameID],
			}
			byGame[br.GameID] = t
		}
		r := br.Row
		t.HomeShots += r.HomeShots
		t.AwayShots += r.AwayShots
		t.HomeXG += r.HomeXG
		t.AwayXG += r.AwayXG
		if r.HomeMaxXG > t.HomeMaxXG {
			t.HomeMaxXG = r.HomeMaxXG
		}
		if r.AwayMaxXG > t.AwayMaxXG {
			t.AwayMaxXG = r.AwayMaxXG
		}
		t.HomeGoals += r.HomeGoals
		t.AwayGoals += r.AwayGoals
		t.HomeAssists += r.HomeAssists
		t.AwayAssists += r.AwayAssists
		t.HomePenaltiesTaken += r.HomePenaltiesTaken
		t.AwayPenaltiesTaken += r.AwayPenaltiesTaken
		t.HomePenaltiesDrawn += r.HomePenaltiesDrawn
		t.AwayPenaltiesDrawn += r.AwayPenaltiesDrawn
		t.HomePIM += r.HomePIM
		t.AwayPIM += r.AwayPIM
	}

	ids := make([]int, 0, len(byGame))
	for id := range byGame {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]TeamBoxRow, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byGame[id])
	}
	return out
}
