package league

import "sort"

// StandingsRow is one team's cumulative record. Points follow NHL rules:
// 2 for any win, 1 for an overtime loss, 0 for a regulation loss.
type StandingsRow struct {
	Team string
	GP   int
	W    int // regulation wins
	OTW  int
	L    int // regulation losses
	OTL  int
	PTS  int
	GF   int
	GA   int
	GD   int
}

// Standings tabulates game rows into a table sorted by points, then goal
// difference, then goals for. throughWeek <= 0 includes every game.
func (l *League) Standings(games []GameRow, throughWeek int) []StandingsRow {
	byTeam := make(map[string]*StandingsRow, len(l.Teams))
	order := make([]string, 0, len(l.Teams))
	for _, t := range l.Teams {
		byTeam[t.Name] = &StandingsRow{Team: t.Name}
		order = append(order, t.Name)
	}

	for _, g := range games {
		if throughWeek > 0 && g.Week > throughWeek {
			continue
		}
		home, away := byTeam[g.HomeTeam], byTeam[g.AwayTeam]
		if home == nil || away == nil {
			continue
		}
		home.GP++
		away.GP++
		home.GF += g.HomeScore
		home.GA += g.AwayScore
		away.GF += g.AwayScore
		away.GA += g.HomeScore

		winner, loser := home, away
		if g.AwayScore > g.HomeScore {
			winner, loser = away, home
		}
		winner.PTS += 2
		if g.WentOT {
			winner.OTW++
			loser.OTL++
			loser.PTS++
		} else {
			winner.W++
			loser.L++
		}
	}

	rows := make([]StandingsRow, 0, len(order))
	for _, name := range order {
		r := byTeam[name]
		r.GD = r.GF - r.GA
		rows = append(rows, *r)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.PTS != b.PTS {
			return a.PTS > b.PTS
		}
		if a.GD != b.GD {
			return a.GD > b.GD
		}
		return a.GF > b.GF
	})
	return rows
}
