package sim

import (
	"fmt"
	"math"

	"github.com/jdmarch/breakaway/internal/core/roster"
)

// PenaltyType classifies an infraction. Double minors serve as two
// consecutive 120-second segments; majors run 300 seconds and are never
// ended early by a power-play goal.
type PenaltyType string

const (
	Minor       PenaltyType = "minor"
	DoubleMinor PenaltyType = "double_minor"
	Major       PenaltyType = "major"
)

// Minutes is the PIM value assessed for the penalty type.
func (t PenaltyType) Minutes() int {
	switch t {
	case DoubleMinor:
		return 4
	case Major:
		return 5
	default:
		return 2
	}
}

// Penalty type sampling and serving times.
const (
	minorProb       = 0.985
	doubleMinorProb = 0.010 // remaining 0.005 is a major

	minorSegmentSeconds = 120.0
	majorSeconds        = 300.0
)

// PenaltyRecord is one penalty being served. SegmentEnd is the absolute
// game-clock time the current segment expires; SegmentsLeft counts the
// 120-second segments remaining (2 at the start of a double minor).
type PenaltyRecord struct {
	Player       *roster.Player // nil if no skater could be identified
	Type         PenaltyType
	SegmentsLeft int
	SegmentEnd   float64
}

func (s *sideState) activePenalties(now float64) int {
	n := 0
	for _, rec := range s.penalties {
		if rec.SegmentEnd > now {
			n++
		}
	}
	return n
}

// nextExpiry returns the earliest pending segment end strictly after now.
func (s *sideState) nextExpiry(now float64) (float64, bool) {
	best := math.Inf(1)
	found := false
	for _, rec := range s.penalties {
		if rec.SegmentEnd > now && rec.SegmentEnd < best {
			best = rec.SegmentEnd
			found = true
		}
	}
	return best, found
}

// oldest returns the record with the smallest segment end, or nil.
func (s *sideState) oldest() *PenaltyRecord {
	var best *PenaltyRecord
	for _, rec := range s.penalties {
		if best == nil || rec.SegmentEnd < best.SegmentEnd {
			best = rec
		}
	}
	return best
}

func (s *sideState) remove(rec *PenaltyRecord) {
	for i, r := range s.penalties {
		if r == rec {
			s.penalties = append(s.penalties[:i], s.penalties[i+1:]...)
			return
		}
	}
}

// handlePenalty processes a penalty stochastic event against the offending
// side: creates the record, deploys special teams, and resets the shift.
func (g *Game) handlePenalty(offender *sideState) {
	rec := g.enterPenalty(offender)

	label := "Home"
	if offender.side == SideAway {
		label = "Away"
	}
	g.log(Event{
		Kind:    KindPenalty,
		Desc:    fmt.Sprintf("%s team penalty", label),
		Context: string(offender.side) + "_penalty",
		Side:    offender.side,
		Minutes: rec.Type.Minutes(),
	})
	g.fullLineChange()
}

// enterPenalty samples the penalty type, picks the offender from the
// on-ice skaters, pushes the record, redeploys both sides' units, and logs
// the resulting situation.
func (g *Game) enterPenalty(offender *sideState) *PenaltyRecord {
	rec := &PenaltyRecord{SegmentsLeft: 1}
	switch r := g.rng.Float64(); {
	case r < minorProb:
		rec.Type = Minor
		rec.SegmentEnd = g.clock + minorSegmentSeconds
	case r < minorProb+doubleMinorProb:
		rec.Type = DoubleMinor
		rec.SegmentsLeft = 2
		rec.SegmentEnd = g.clock + minorSegmentSeconds
	default:
		rec.Type = Major
		rec.SegmentEnd = g.clock + majorSeconds
	}

	rec.Player = g.selectPenalizedSkater(offender)
	offender.penalties = append(offender.penalties, rec)
	if rec.Player != nil {
		offender.unavailable[rec.Player] = true
	}

	g.recomputeSpecialUnits()

	mp := g.manpowerFromPenalties()
	if mp.Home == mp.Away && mp.Home < 5 {
		tag := fmt.Sprintf("%dv%d", mp.Home, mp.Away)
		g.log(Event{Kind: KindPPStart, Desc: tag + " starts", Context: tag})
	} else if offender.side == SideHome {
		g.log(Event{Kind: KindPPStart, Desc: "Away power play starts (home shorthanded)", Context: "away_pp"})
	} else {
		g.log(Event{Kind: KindPPStart, Desc: "Home power play starts (away shorthanded)", Context: "home_pp"})
	}
	return rec
}

// selectPenalizedSkater picks from the on-ice non-goalie skaters by
// inverse-CDF over exponentially tilted weights: lower discipline, higher
// odds. Falls back to the roster's skaters if nothing is on the ice.
func (g *Game) selectPenalizedSkater(s *sideState) *roster.Player {
	var pool []*roster.Player
	for _, p := range s.onIce {
		if p.Position != roster.Goalie {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		pool = append(s.team.Forwards(), s.team.Defensemen()...)
	}
	if len(pool) == 0 {
		return nil
	}

	weights := make([]float64, len(pool))
	total := 0.0
	for i, p := range pool {
		weights[i] = math.Exp(-g.params.PickBeta * p.Discipline)
		total += weights[i]
	}
	if total <= 0 {
		return pool[g.rng.Intn(len(pool))]
	}
	r := g.rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return pool[i]
		}
	}
	return pool[len(pool)-1]
}

// expireOldest ends the side's earliest-expiring penalty. forced marks the
// power-play-goal variant: majors are exempt, everything else behaves like
// a natural expiry. A double minor with a segment remaining decrements and
// restarts its clock instead of ending.
func (g *Game) expireOldest(s *sideState, forced bool) {
	rec := s.oldest()
	switch {
	case rec == nil:
		// No penalty to end; nothing to announce.
		return
	case forced && rec.Type == Major:
		// Majors run their full five minutes regardless of goals.
	case rec.SegmentsLeft > 1:
		rec.SegmentsLeft--
		rec.SegmentEnd = g.clock + minorSegmentSeconds
	default:
		s.remove(rec)
		if rec.Player != nil {
			delete(s.unavailable, rec.Player)
		}
	}

	mp := g.manpowerFromPenalties()
	switch {
	case mp.Home == 5 && mp.Away == 5:
		g.log(Event{Kind: KindPPEnd, Desc: "Back to full strength (5v5)", Context: "full"})
	case mp.Home == mp.Away:
		tag := fmt.Sprintf("%dv%d", mp.Home, mp.Away)
		g.log(Event{Kind: KindPPEnd, Desc: tag + " continues", Context: tag})
	case mp.Home > mp.Away:
		g.log(Event{Kind: KindPPEnd, Desc: "Home power play begins", Context: "home_pp"})
	default:
		g.log(Event{Kind: KindPPEnd, Desc: "Away power play begins", Context: "away_pp"})
	}

	g.recomputeSpecialUnits()
}

// manpowerFromPenalties is the skater-count pair before any pulled-goalie
// override; used for situation labeling and unit sizing.
func (g *Game) manpowerFromPenalties() Manpower {
	return Manpower{
		Home: max(3, 5-g.home.activePenalties(g.clock)),
		Away: max(3, 5-g.away.activePenalties(g.clock)),
	}
}

// recomputeSpecialUnits re-derives both sides' unit overrides and the
// shorthanded flag from the current penalty stacks: PP against a
// size-matched PK when manpowers differ, balanced PK-style units when both
// sides are below 5, and no overrides at even strength.
func (g *Game) recomputeSpecialUnits() {
	mp := g.manpowerFromPenalties()
	g.penalizedSide = SideNone

	switch {
	case mp.Home == 5 && mp.Away == 5:
		g.home.specialUnit = nil
		g.away.specialUnit = nil
	case mp.Home > mp.Away:
		g.penalizedSide = SideAway
		g.home.specialUnit = g.home.team.PowerPlayUnit(g.home.unavailable)
		g.away.specialUnit = g.away.team.PenaltyKillUnit(g.away.unavailable, mp.Away)
	case mp.Away > mp.Home:
		g.penalizedSide = SideHome
		g.away.specialUnit = g.away.team.PowerPlayUnit(g.away.unavailable)
		g.home.specialUnit = g.home.team.PenaltyKillUnit(g.home.unavailable, mp.Home)
	default:
		g.home.specialUnit = g.home.team.PenaltyKillUnit(g.home.unavailable, mp.Home)
		g.away.specialUnit = g.away.team.PenaltyKillUnit(g.away.unavailable, mp.Away)
	}
}

// ── Pulled goalie ────────────────────────────────────────────

// maybePullGoalie pulls the trailing side's goalie inside the late-game
// window: final regulation period, pullWindowSeconds or less remaining,
// deficit within pullMaxDeficit, and neither side already pulled.
func (g *Game) maybePullGoalie(periodRemaining float64) {
	if g.pulled != SideNone || g.period == nil {
		return
	}
	if g.period.Number != regulationPeriods || g.period.Overtime || periodRemaining > pullWindowSeconds {
		return
	}

	diff := g.HomeScore - g.AwayScore
	switch {
	case diff < 0 && -diff <= pullMaxDeficit:
		g.pulled = SideHome
		g.log(Event{Kind: KindGoaliePulled, Desc: "Home pulls the goalie for an extra attacker", Context: "home_pulled", Side: SideHome})
	case diff > 0 && diff <= pullMaxDeficit:
		g.pulled = SideAway
		g.log(Event{Kind: KindGoaliePulled, Desc: "Away pulls the goalie for an extra attacker", Context: "away_pulled", Side: SideAway})
	default:
		return
	}
	g.rebuildOnIce()
}

// pulledSkaters builds the 6-skater empty-net unit: the side's current
// special or line-based base unit plus the best available extra attacker
// not already on the ice, capped at 6.
func (g *Game) pulledSkaters(s *sideState) []*roster.Player {
	var base []*roster.Player
	if s.specialUnit != nil {
		base = append(base, s.specialUnit...)
	} else {
		base = append(base, s.team.Lines[s.lineID]...)
		base = append(base, s.team.Pairs[s.pairID]...)
	}

	onBase := roster.Set{}
	unit := base[:0:0]
	for _, p := range base {
		if p.Position != roster.Goalie {
			unit = append(unit, p)
			onBase[p] = true
		}
	}

	var extra *roster.Player
	for _, p := range s.team.Roster {
		if p.Position == roster.Goalie || onBase[p] || s.unavailable[p] {
			continue
		}
		if extra == nil || p.OffensiveScore() > extra.OffensiveScore() {
			extra = p
		}
	}
	if extra != nil {
		unit = append(unit, extra)
	}
	if len(unit) > 6 {
		unit = unit[:6]
	}
	return unit
}
