package league

import (
	"math/rand"
	"sort"

	"github.com/jdmarch/breakaway/internal/core/roster"
)

// Matchup is a scheduled game; Home hosts.
type Matchup struct {
	Home *roster.Team
	Away *roster.Team
}

// pairKey orders two team names so home/away orderings of the same pair
// collapse to one key.
type pairKey struct {
	a, b string
}

func makePairKey(t1, t2 *roster.Team) pairKey {
	if t1.Name < t2.Name {
		return pairKey{t1.Name, t2.Name}
	}
	return pairKey{t2.Name, t1.Name}
}

// BuildSchedule creates the NHL-style imbalanced 82-game schedule:
//
//   - division opponents (3 teams): two at 5 games, one at 4, for 14
//   - conference non-division opponents (12 teams): 3 games each, 36
//   - cross-conference opponents (16 teams): 2 games each, 32
//
// Each pair alternates home ice game by game. The full game list is
// shuffled with the provided rng before being returned.
func (l *League) BuildSchedule(rng *rand.Rand) []Matchup {
	pairGames := make(map[pairKey]int)

	for _, div := range l.Divisions {
		assignDivisionGames(rng, div, pairGames)
	}

	for _, conf := range l.Conferences {
		teams := conf.Teams()
		for i, t1 := range teams {
			for _, t2 := range teams[i+1:] {
				pk := makePairKey(t1, t2)
				if _, ok := pairGames[pk]; !ok {
					pairGames[pk] = 3
				}
			}
		}
	}
	east, west := l.Conferences[0].Teams(), l.Conferences[1].Teams()
	for _, t1 := range east {
		for _, t2 := range west {
			pairGames[makePairKey(t1, t2)] = 2
		}
	}

	byName := make(map[string]*roster.Team, len(l.Teams))
	for _, t := range l.Teams {
		byName[t.Name] = t
	}

	// Deterministic pair order before the shuffle, so the same seed always
	// yields the same schedule.
	keys := make([]pairKey, 0, len(pairGames))
	for pk := range pairGames {
		keys = append(keys, pk)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})

	var games []Matchup
	for _, pk := range keys {
		first, second := byName[pk.a], byName[pk.b]
		for i := 0; i < pairGames[pk]; i++ {
			if i%2 == 0 {
				games = append(games, Matchup{Home: first, Away: second})
			} else {
				games = append(games, Matchup{Home: second, Away: first})
			}
		}
	}

	rng.Shuffle(len(games), func(i, j int) { games[i], games[j] = games[j], games[i] })
	return games
}

// assignDivisionGames fills pairGames for one division. Each team names the
// single opponent it plays only 4 times; the resulting pair counts are
// checked for the 14-game total, falling back to a fixed valid pattern when
// the random picks conflict.
func assignDivisionGames(rng *rand.Rand, div *Division, pairGames map[pairKey]int) {
	teams := append([]*roster.Team(nil), div.Teams...)
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	type pair struct {
		t1, t2 *roster.Team
		key    pairKey
	}
	var pairs []pair
	for i, t1 := range teams {
		for _, t2 := range teams[i+1:] {
			pairs = append(pairs, pair{t1, t2, makePairKey(t1, t2)})
		}
	}

	fourGameOpp := make(map[*roster.Team]*roster.Team, len(teams))
	for _, t := range teams {
		var opponents []*roster.Team
		for _, o := range teams {
			if o != t {
				opponents = append(opponents, o)
			}
		}
		fourGameOpp[t] = opponents[rng.Intn(len(opponents))]
	}

	for _, p := range pairs {
		if fourGameOpp[p.t1] == p.t2 || fourGameOpp[p.t2] == p.t1 {
			pairGames[p.key] = 4
		} else {
			pairGames[p.key] = 5
		}
	}

	totals := make(map[*roster.Team]int, len(teams))
	for _, p := range pairs {
		totals[p.t1] += pairGames[p.key]
		totals[p.t2] += pairGames[p.key]
	}
	for _, total := range totals {
		if total != 14 {
			// Fixed pattern: (0,3) and (1,2) at 4 games, the rest at 5.
			for _, p := range pairs {
				pairGames[p.key] = 5
			}
			pairGames[makePairKey(teams[0], teams[3])] = 4
			pairGames[makePairKey(teams[1], teams[2])] = 4
			return
		}
	}
}

// BuildWeeks greedily packs the schedule into matchweeks where no team
// plays twice. Order inside the schedule is preserved.
func BuildWeeks(schedule []Matchup) [][]Matchup {
	var weeks [][]Matchup
	remaining := schedule
	for len(remaining) > 0 {
		var week, next []Matchup
		used := make(map[*roster.Team]bool)
		for _, m := range remaining {
			if used[m.Home] || used[m.Away] {
				next = append(next, m)
				continue
			}
			week = append(week, m)
			used[m.Home] = true
			used[m.Away] = true
		}
		weeks = append(weeks, week)
		remaining = next
	}
	return weeks
}
