// Package boxscore reconstructs per-matchup statistics from a finished
// game's event log. It replays the log once, mirroring the scheduler's
// rotation rule through the structured side/unit fields on line-change
// events, and attributes each interval to the matchup that was on the ice
// during it.
package boxscore

import "github.com/jdmarch/breakaway/internal/core/sim"

// Unit-type labels used in matchup classification.
const (
	Top       = "top"
	Secondary = "secondary"
	PP        = "PP"
	PK        = "PK"
)

// Matchup identifies who was on the ice: line and pairing type per side at
// even strength, collapsed to an aggregate PP/PK pair during special teams.
type Matchup struct {
	HomeLine string
	HomePair string
	AwayLine string
	AwayPair string
}

var (
	homePPMatchup = Matchup{PP, PP, PK, PK}
	awayPPMatchup = Matchup{PK, PK, PP, PP}
)

// Row is the accumulated stat line for one matchup context.
type Row struct {
	Matchup Matchup

	TOI float64

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

	// Goalie in net for each side when this context first appeared;
	// empty while that side's net was empty.
	HomeGoalie string
	AwayGoalie string
}

// Generate replays the finished game's event log and returns one row per
// matchup context that saw ice time. The final interval is extended to the
// game's canonical end time so trailing idle time is attributed.
func Generate(res sim.Result) []Row {
	r := replayer{
		res:        res,
		homeLineID: 1, homePairID: 1,
		awayLineID: 1, awayPairID: 1,
		homeGoalie: res.HomeGoalie,
		awayGoalie: res.AwayGoalie,
		stats: make(map[Matchup]*Row),
	}
	return r.run()
}

type replayer struct {
	res sim.Result

	homeLineID, homePairID int
	awayLineID, awayPairID int

	inPP   bool
	ppSide sim.Side

	homeGoalie, awayGoalie string

	stats map[Matchup]*Row
	order []Matchup
}

func (r *replayer) run() []Row {
	var (
		prevTime       float64
		prevMatchup    *Matchup
		prevHomeGoalie = r.homeGoalie
		prevAwayGoalie = r.awayGoalie
	)

	for _, ev := range r.res.Events {
		if ev.Kind == sim.KindLineChange {
			r.rotate(ev)
		}
		r.trackPowerPlay(ev)

		matchup := r.currentMatchup(prevMatchup)

		// Time between events belongs to the context that was in force,
		// not the one this event establishes.
		if elapsed := ev.Time - prevTime; elapsed > 0 {
			credit := matchup
			if prevMatchup != nil {
				credit = *prevMatchup
			}
			r.entry(credit, prevHomeGoalie, prevAwayGoalie).TOI += elapsed
		}

		switch ev.Kind {
		case sim.KindGoaliePulled:
			if ev.Side == sim.SideHome {
				r.homeGoalie = ""
			} else {
				r.awayGoalie = ""
			}
		case sim.KindGoalieIn:
			if ev.Side == sim.SideHome {
				r.homeGoalie = r.res.HomeGoalie
			} else {
				r.awayGoalie = r.res.AwayGoalie
			}
		}

		row := r.entry(matchup, r.homeGoalie, r.awayGoalie)
		switch ev.Kind {
		case sim.KindShot:
			if ev.Side == sim.SideHome {
				row.HomeShots++
				row.HomeXG += ev.XG
				if ev.XG > row.HomeMaxXG {
					row.HomeMaxXG = ev.XG
				}
			} else {
				row.AwayShots++
				row.AwayXG += ev.XG
				if ev.XG > row.AwayMaxXG {
					row.AwayMaxXG = ev.XG
				}
			}
		case sim.KindGoal:
			if ev.Side == sim.SideHome {
				row.HomeGoals++
				row.HomeAssists += ev.Assists
			} else {
				row.AwayGoals++
				row.AwayAssists += ev.Assists
			}
		case sim.KindPenalty:
			if ev.Side == sim.SideHome {
				row.HomePenaltiesTaken++
				row.HomePIM += ev.Minutes
				row.AwayPenaltiesDrawn++
			} else {
				row.AwayPenaltiesTaken++
				row.AwayPIM += ev.Minutes
				row.HomePenaltiesDrawn++
			}
		}

		prevTime = ev.Time
		m := matchup
		prevMatchup = &m
		prevHomeGoalie = r.homeGoalie
		prevAwayGoalie = r.awayGoalie
	}

	// Trailing idle time up to the canonical end belongs to the last
	// context on the ice.
	if prevMatchup != nil && r.res.EndTime > prevTime {
		r.entry(*prevMatchup, prevHomeGoalie, prevAwayGoalie).TOI += r.res.EndTime - prevTime
	}

	rows := make([]Row, 0, len(r.order))
	for _, m := range r.order {
		rows = append(rows, *r.stats[m])
	}
	return rows
}

// rotate advances the shadow rotation pointers exactly the way the
// scheduler advanced its own on this event.
func (r *replayer) rotate(ev sim.Event) {
	advance := func(id, n int) int {
		if n <= 0 {
			return id
		}
		return id%n + 1
	}
	switch {
	case ev.Unit == sim.UnitBoth:
		r.homeLineID = advance(r.homeLineID, r.res.HomeLines)
		r.homePairID = advance(r.homePairID, r.res.HomePairs)
		r.awayLineID = advance(r.awayLineID, r.res.AwayLines)
		r.awayPairID = advance(r.awayPairID, r.res.AwayPairs)
	case ev.Side == sim.SideHome && ev.Unit == sim.UnitForward:
		r.homeLineID = advance(r.homeLineID, r.res.HomeLines)
	case ev.Side == sim.SideHome && ev.Unit == sim.UnitDefense:
		r.homePairID = advance(r.homePairID, r.res.HomePairs)
	case ev.Side == sim.SideAway && ev.Unit == sim.UnitForward:
		r.awayLineID = advance(r.awayLineID, r.res.AwayLines)
	case ev.Side == sim.SideAway && ev.Unit == sim.UnitDefense:
		r.awayPairID = advance(r.awayPairID, r.res.AwayPairs)
	}
}

func (r *replayer) trackPowerPlay(ev sim.Event) {
	switch ev.Kind {
	case sim.KindPPStart:
		r.inPP = true
		switch ev.Context {
		case "home_pp":
			r.ppSide = sim.SideHome
		case "away_pp":
			r.ppSide = sim.SideAway
		default:
			// Balanced 4v4/3v3 situations carry no advantaged side.
			r.ppSide = sim.SideNone
		}
	case sim.KindPPEnd:
		// A stacked situation can leave an advantage in force after one
		// penalty ends; the context says what the ice looks like now.
		switch ev.Context {
		case "home_pp":
			r.inPP, r.ppSide = true, sim.SideHome
		case "away_pp":
			r.inPP, r.ppSide = true, sim.SideAway
		case "full":
			r.inPP, r.ppSide = false, sim.SideNone
		default: // 4v4 or 3v3 continues
			r.inPP, r.ppSide = true, sim.SideNone
		}
	}
}

func (r *replayer) currentMatchup(prev *Matchup) Matchup {
	if r.inPP {
		switch r.ppSide {
		case sim.SideHome:
			return homePPMatchup
		case sim.SideAway:
			return awayPPMatchup
		}
		// No advantaged side (balanced manpower): keep the previous
		// special-teams orientation if one exists.
		if prev != nil && (prev.HomeLine == PP || prev.HomeLine == PK) {
			return *prev
		}
		return homePPMatchup
	}
	return Matchup{
		HomeLine: lineType(r.homeLineID),
		HomePair: lineType(r.homePairID),
		AwayLine: lineType(r.awayLineID),
		AwayPair: lineType(r.awayPairID),
	}
}

// lineType classifies unit 1 as the top unit and everything else as
// secondary.
func lineType(id int) string {
	if id == 1 {
		return Top
	}
	return Secondary
}

func (r *replayer) entry(m Matchup, homeGoalie, awayGoalie string) *Row {
	if row, ok := r.stats[m]; ok {
		return row
	}
	row := &Row{Matchup: m, HomeGoalie: homeGoalie, AwayGoalie: awayGoalie}
	r.stats[m] = row
	r.order = append(r.order, m)
	return row
}
