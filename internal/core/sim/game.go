// Package sim is the single-game simulation engine: a continuous-time
// competing-event scheduler over shot and penalty Poisson processes,
// interleaved with deterministic line-change, penalty-expiry, and period
// boundaries. A Game owns all of its mutable state and its own seeded RNG,
// so independent games can run in parallel.
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jdmarch/breakaway/internal/core/roster"
	"github.com/jdmarch/breakaway/internal/telemetry"
)

const (
	periodSeconds     = 1200.0
	regulationPeriods = 3
	regulationSeconds = periodSeconds * regulationPeriods

	// Goalie pull window: final period, this much time or less remaining,
	// trailing by at most this many goals.
	pullWindowSeconds = 150.0
	pullMaxDeficit    = 2
)

// Shift-length windows (seconds). Shifts stretch while special teams are on
// the ice anywhere in the game.
const (
	fwdShiftLo, fwdShiftHi               = 30.0, 60.0
	defShiftLo, defShiftHi               = 40.0, 60.0
	fwdShiftSpecialLo, fwdShiftSpecialHi = 50.0, 70.0
	defShiftSpecialLo, defShiftSpecialHi = 100.0, 120.0
)

// sideState is everything the engine tracks per team: rotation pointers,
// line-change deadlines, penalty stack, special-unit override, and the
// cached on-ice attribute sums the rate model reads.
type sideState struct {
	side Side
	team *roster.Team

	lineID int
	pairID int

	fwdDeadline float64
	defDeadline float64

	penalties   []*PenaltyRecord
	unavailable roster.Set
	specialUnit []*roster.Player // nil at even strength

	onIce []*roster.Player

	creationSum    float64
	suppressionSum float64
	conversionSum  float64
	preventionSum  float64
	goalieSkill    float64
	penMult        float64
}

// Game simulates one game between two teams. Construct with NewGame and run
// with Simulate; a Game is single-use and not safe for concurrent use.
type Game struct {
	rng    *rand.Rand
	params Params

	home sideState
	away sideState

	HomeScore int
	AwayScore int

	clock  float64
	period *Period

	pulled        Side // side with an empty net, at most one at a time
	penalizedSide Side // shorthanded side while a manpower differential exists

	events []Event
}

func NewGame(home, away *roster.Team, rng *rand.Rand, params Params) *Game {
	g := &Game{
		rng:    rng,
		params: params,
		home:   sideState{side: SideHome, team: home, lineID: 1, pairID: 1, unavailable: roster.Set{}},
		away:   sideState{side: SideAway, team: away, lineID: 1, pairID: 1, unavailable: roster.Set{}},
	}
	return g
}

// Result is the finished game: final score plus the complete ordered event
// log the box-score attributor and the exporters consume.
type Result struct {
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	WentOT     bool
	EndTime    float64 // regulation length, or the overtime-ending goal's time
	HomeGoalie string
	AwayGoalie string

	// Rotation shapes, needed to replay line changes post hoc.
	HomeLines int
	HomePairs int
	AwayLines int
	AwayPairs int

	Events []Event
}

// Simulate runs the game to completion: three regulation periods, then
// 20-minute sudden-death blocks until the tie breaks.
func (g *Game) Simulate() Result {
	g.startShift()

	for n := 1; n <= regulationPeriods; n++ {
		g.simulatePeriod(NewPeriod(n, periodSeconds, false))
	}

	wentOT := g.HomeScore == g.AwayScore
	if wentOT {
		g.simulateOvertime()
	}

	end := float64(regulationSeconds)
	if wentOT {
		end = g.clock
	}
	return Result{
		HomeTeam:   g.home.team.Name,
		AwayTeam:   g.away.team.Name,
		HomeScore:  g.HomeScore,
		AwayScore:  g.AwayScore,
		WentOT:     wentOT,
		EndTime:    end,
		HomeGoalie: g.home.team.StartingGoalie().Name,
		AwayGoalie: g.away.team.StartingGoalie().Name,
		HomeLines:  len(g.home.team.Lines),
		HomePairs:  len(g.home.team.Pairs),
		AwayLines:  len(g.away.team.Lines),
		AwayPairs:  len(g.away.team.Pairs),
		Events:     g.events,
	}
}

func (g *Game) simulatePeriod(p *Period) {
	g.period = p
	// Nudge the start past a prior period_end so log timestamps stay
	// strictly ordered for consumers that sort by time.
	if n := len(g.events); n > 0 && g.events[n-1].Kind == KindPeriodEnd {
		g.clock += 1e-6
	}
	p.StartAt(g.clock)
	g.log(Event{Kind: KindPeriodStart, Desc: fmt.Sprintf("Start of Period %d", p.Number)})

	for !p.Finished(g.clock) {
		g.simulateShift()
	}

	g.log(Event{Kind: KindPeriodEnd, Desc: fmt.Sprintf("End of Period %d", p.Number)})
}

func (g *Game) simulateOvertime() {
	for ot := 1; g.HomeScore == g.AwayScore; ot++ {
		p := NewPeriod(regulationPeriods+ot, periodSeconds, true)
		g.period = p
		p.StartAt(g.clock)
		g.log(Event{Kind: KindOvertimeStart, Desc: fmt.Sprintf("Overtime %d begins - sudden death", ot)})

		for !p.Finished(g.clock) {
			g.simulateShift()
			if g.HomeScore != g.AwayScore {
				g.log(Event{Kind: KindOvertimeGoal, Desc: "Overtime goal - game over!"})
				return
			}
		}
		g.log(Event{Kind: KindPeriodEnd, Desc: fmt.Sprintf("End of Overtime %d", ot)})
	}
}

// simulateShift advances the game by one step: either a stochastic event
// (shot or penalty, whichever Poisson clock fires first) or the nearest
// deterministic boundary (line change, penalty expiry, or period end).
func (g *Game) simulateShift() {
	periodRemaining := 0.0
	if g.period != nil {
		periodRemaining = math.Max(0, g.period.End-g.clock)
	}
	g.maybePullGoalie(periodRemaining)

	rates := g.eventRates()
	total := rates.Total()

	// The epsilon floor keeps total positive; if it ever fails, skip the
	// draw and let boundary handling advance the clock.
	delta := math.Inf(1)
	if total > 0 {
		delta = g.rng.ExpFloat64() / total
	} else {
		telemetry.Warnf("combined event rate is zero at %s; advancing to next boundary", telemetry.GameClock(g.clock))
	}

	type boundary struct {
		kind string
		in   float64
	}
	boundaries := []boundary{
		{"home_forward", math.Max(0, g.home.fwdDeadline-g.clock)},
		{"home_defense", math.Max(0, g.home.defDeadline-g.clock)},
		{"away_forward", math.Max(0, g.away.fwdDeadline-g.clock)},
		{"away_defense", math.Max(0, g.away.defDeadline-g.clock)},
		{"period_end", periodRemaining},
	}
	if t, ok := g.home.nextExpiry(g.clock); ok {
		boundaries = append(boundaries, boundary{"penalty_end_home", t - g.clock})
	}
	if t, ok := g.away.nextExpiry(g.clock); ok {
		boundaries = append(boundaries, boundary{"penalty_end_away", t - g.clock})
	}

	nearest := boundaries[0]
	for _, b := range boundaries[1:] {
		if b.in < nearest.in {
			nearest = b
		}
	}

	if delta < nearest.in {
		g.clock += delta
		g.dispatchStochastic(rates)
		return
	}

	// Boundary first. Clamp to period end so nothing drifts past 3600 in
	// regulation.
	step := math.Min(nearest.in, periodRemaining)
	g.clock += step
	switch nearest.kind {
	case "period_end":
		// The period loop logs the end; nothing to do here.
	case "penalty_end_home":
		g.expireOldest(&g.home, false)
		g.fullLineChange()
	case "penalty_end_away":
		g.expireOldest(&g.away, false)
		g.fullLineChange()
	case "home_forward":
		g.lineChange(&g.home, UnitForward)
	case "home_defense":
		g.lineChange(&g.home, UnitDefense)
	case "away_forward":
		g.lineChange(&g.away, UnitForward)
	case "away_defense":
		g.lineChange(&g.away, UnitDefense)
	}
}

// dispatchStochastic picks which of the four competing processes fired,
// with probability proportional to each rate.
func (g *Game) dispatchStochastic(rates Rates) {
	r := g.rng.Float64() * rates.Total()
	switch {
	case r < rates.HomeShot:
		g.handleShot(&g.home, &g.away)
	case r < rates.HomeShot+rates.AwayShot:
		g.handleShot(&g.away, &g.home)
	case r < rates.HomeShot+rates.AwayShot+rates.HomePenalty:
		g.handlePenalty(&g.home)
	default:
		g.handlePenalty(&g.away)
	}
}

// ── Shifts and rotation ──────────────────────────────────────

// startShift rebuilds on-ice units and resamples all four shift clocks.
func (g *Game) startShift() {
	g.rebuildOnIce()
	g.resampleAllClocks()
}

// fullLineChange rotates both teams' lines and pairs, the post-whistle
// reset after goals, penalties, and penalty expiries.
func (g *Game) fullLineChange() {
	g.rotateForward(&g.home)
	g.rotateDefense(&g.home)
	g.rotateForward(&g.away)
	g.rotateDefense(&g.away)
	g.rebuildOnIce()
	g.resampleAllClocks()
	g.log(Event{
		Kind: KindLineChange,
		Desc: "Both teams change forwards and defense",
		Unit: UnitBoth,
	})
}

// lineChange swaps a single unit on one side when its shift clock runs out.
func (g *Game) lineChange(s *sideState, unit Unit) {
	if unit == UnitForward {
		g.rotateForward(s)
	} else {
		g.rotateDefense(s)
	}
	g.rebuildOnIce()
	g.resampleClock(s, unit)

	label := "Home"
	if s.side == SideAway {
		label = "Away"
	}
	unitLabel := "forward line"
	if unit == UnitDefense {
		unitLabel = "defensive pair"
	}
	g.log(Event{
		Kind: KindLineChange,
		Desc: fmt.Sprintf("%s %s change", label, unitLabel),
		Side: s.side,
		Unit: unit,
	})
}

func (g *Game) rotateForward(s *sideState) {
	if n := len(s.team.Lines); n > 0 {
		s.lineID = s.lineID%n + 1
	}
}

func (g *Game) rotateDefense(s *sideState) {
	if n := len(s.team.Pairs); n > 0 {
		s.pairID = s.pairID%n + 1
	}
}

// specialTeamsActive reports whether any side is off full manpower or has
// pulled its goalie; shift windows widen while it holds.
func (g *Game) specialTeamsActive() bool {
	return g.pulled != SideNone ||
		g.home.activePenalties(g.clock) > 0 ||
		g.away.activePenalties(g.clock) > 0
}

func (g *Game) resampleAllClocks() {
	g.resampleClock(&g.home, UnitForward)
	g.resampleClock(&g.home, UnitDefense)
	g.resampleClock(&g.away, UnitForward)
	g.resampleClock(&g.away, UnitDefense)
}

func (g *Game) resampleClock(s *sideState, unit Unit) {
	special := g.specialTeamsActive()
	var lo, hi float64
	if unit == UnitForward {
		lo, hi = fwdShiftLo, fwdShiftHi
		if special {
			lo, hi = fwdShiftSpecialLo, fwdShiftSpecialHi
		}
	} else {
		lo, hi = defShiftLo, defShiftHi
		if special {
			lo, hi = defShiftSpecialLo, defShiftSpecialHi
		}
	}
	deadline := g.clock + lo + g.rng.Float64()*(hi-lo)
	if unit == UnitForward {
		s.fwdDeadline = deadline
	} else {
		s.defDeadline = deadline
	}
}

// ── On-ice units and caches ──────────────────────────────────

// rebuildOnIce recomputes both sides' on-ice units and the attribute sums
// the rate model reads. Must run after any change to rotation, penalties,
// or the pulled-goalie flag; shift clocks are left alone.
func (g *Game) rebuildOnIce() {
	g.home.onIce = g.composeOnIce(&g.home)
	g.away.onIce = g.composeOnIce(&g.away)
	g.recache(&g.home)
	g.recache(&g.away)
}

// composeOnIce builds a side's unit: special-teams override or current
// line+pair, plus the goalie unless this side has an explicit 6-skater
// empty-net unit.
func (g *Game) composeOnIce(s *sideState) []*roster.Player {
	skaters := s.specialUnit
	if g.pulled == s.side {
		skaters = g.pulledSkaters(s)
		if len(skaters) >= 6 {
			return append([]*roster.Player(nil), skaters...)
		}
	}
	if skaters == nil {
		skaters = append(skaters, s.team.Lines[s.lineID]...)
		skaters = append(skaters, s.team.Pairs[s.pairID]...)
	}
	unit := append([]*roster.Player(nil), skaters...)
	return append(unit, s.team.StartingGoalie())
}

func (g *Game) recache(s *sideState) {
	s.creationSum, s.suppressionSum = 0, 0
	s.conversionSum, s.preventionSum = 0, 0
	s.goalieSkill = 0

	var wSum float64
	var skaters int
	for _, p := range s.onIce {
		if p.Position == roster.Goalie {
			s.goalieSkill = p.Goalkeeping
			continue
		}
		s.creationSum += p.Creation
		s.suppressionSum += p.Suppression
		s.conversionSum += p.Conversion
		s.preventionSum += p.Prevention
		wSum += math.Exp(-g.params.PenBeta * p.Discipline)
		skaters++
	}

	mult := 1.0
	if skaters > 0 {
		mult = wSum / float64(skaters) / g.params.penNorm()
	}
	s.penMult = math.Min(g.params.PenClampHi, math.Max(g.params.PenClampLo, mult))
}

// manpower is the effective skater count pair: 5 minus active penalties,
// clamped at 3, overridden to 6 on the empty-net side.
func (g *Game) manpower() Manpower {
	h := max(3, 5-g.home.activePenalties(g.clock))
	a := max(3, 5-g.away.activePenalties(g.clock))
	if g.pulled == SideHome {
		h = 6
	} else if g.pulled == SideAway {
		a = 6
	}
	return Manpower{Home: h, Away: a}
}

func (g *Game) onIceNames() (home, away []string) {
	for _, p := range g.home.onIce {
		home = append(home, p.Name)
	}
	for _, p := range g.away.onIce {
		away = append(away, p.Name)
	}
	return home, away
}

// log appends an event, stamping the clock, score snapshot, and on-ice
// name snapshots. Events are never mutated after this.
func (g *Game) log(ev Event) {
	ev.Time = g.clock
	ev.HomeScore = g.HomeScore
	ev.AwayScore = g.AwayScore
	ev.HomeOnIce, ev.AwayOnIce = g.onIceNames()
	g.events = append(g.events, ev)
}

func (g *Game) sideState(side Side) *sideState {
	if side == SideHome {
		return &g.home
	}
	return &g.away
}
