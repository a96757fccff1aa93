package sim

import (
	"fmt"
	"math"
)

// handleShot resolves a shot stochastic event for the shooting side:
// computes xG, logs the attempt, and on a goal applies score, assists, the
// oldest-minor rule, pulled-goalie reversion, and a fresh shift.
func (g *Game) handleShot(shooter, defender *sideState) {
	xg := g.shotXG(shooter, defender)

	context := "even"
	if g.penalizedSide == defender.side {
		context = string(shooter.side) + "_pp_shot"
	}
	label := "Home"
	if shooter.side == SideAway {
		label = "Away"
	}
	g.log(Event{
		Kind:    KindShot,
		Desc:    fmt.Sprintf("%s team shot (xG: %.3f)", label, xg),
		Context: context,
		Side:    shooter.side,
		XG:      xg,
	})

	if g.rng.Float64() >= xg {
		// Save or miss; the shift continues.
		return
	}
	g.scoreGoal(shooter, defender)
}

// shotXG is the per-shot goal probability: situation baseline, shooter
// conversion, defender prevention, the defending goalie (zero when pulled),
// and the home side's xG coefficient, clamped to [0,1].
func (g *Game) shotXG(shooter, defender *sideState) float64 {
	base := xgBaseline(g.manpower(), shooter.side)

	goalie := 0.0
	if g.pulled != defender.side {
		goalie = g.params.GoalieScale * defender.goalieSkill
	}

	homeBonus := g.home.team.HFAXGBonus
	if shooter.side == SideAway {
		homeBonus = g.home.team.HFAXGSuppression
	}

	xg := base +
		g.params.XGScale*shooter.conversionSum -
		g.params.XGScale*defender.preventionSum -
		goalie +
		homeBonus
	return math.Max(0, math.Min(1, xg))
}

func (g *Game) scoreGoal(scorer, defender *sideState) {
	if scorer.side == SideHome {
		g.HomeScore++
	} else {
		g.AwayScore++
	}

	context := "even"
	switch {
	case g.penalizedSide == defender.side:
		context = string(scorer.side) + "_pp_goal"
	case g.penalizedSide == scorer.side:
		context = string(defender.side) + "_pp_against"
	}

	mp := g.manpower()
	scoring, opposing := mp.Home, mp.Away
	if scorer.side == SideAway {
		scoring, opposing = mp.Away, mp.Home
	}
	assists := g.sampleAssists(scoring, opposing)

	label := "Home"
	if scorer.side == SideAway {
		label = "Away"
	}
	g.log(Event{
		Kind:    KindGoal,
		Desc:    fmt.Sprintf("%s team scores! %d-%d", label, g.HomeScore, g.AwayScore),
		Context: context,
		Side:    scorer.side,
		Assists: assists,
	})

	// A power-play goal ends the shorthanded side's oldest minor.
	if g.penalizedSide == defender.side {
		g.expireOldest(defender, true)
	}

	// Empty-net goal against the pulled side while no power play is in
	// force: the goalie comes back with the comeback attempt dead.
	if g.pulled == defender.side && g.penalizedSide == SideNone {
		g.pulled = SideNone
		g.log(Event{
			Kind:    KindGoalieIn,
			Desc:    fmt.Sprintf("%s goalie returns after empty-net against", displayName(defender.side)),
			Context: string(defender.side) + "_in",
			Side:    defender.side,
		})
		g.rebuildOnIce()
	}

	// The pulling side tied it up: goalie returns.
	if g.pulled == scorer.side && g.HomeScore == g.AwayScore {
		g.pulled = SideNone
		g.log(Event{
			Kind:    KindGoalieIn,
			Desc:    fmt.Sprintf("%s goalie returns after tying the game", displayName(scorer.side)),
			Context: string(scorer.side) + "_in",
			Side:    scorer.side,
		})
		g.rebuildOnIce()
	}

	g.fullLineChange()
}

// sampleAssists draws the assist count (0, 1, or 2) from the
// manpower-keyed distribution for the scoring side.
func (g *Game) sampleAssists(scoring, opposing int) int {
	probs := assistProbs(scoring, opposing)
	r := g.rng.Float64()
	switch {
	case r < probs[0]:
		return 0
	case r < probs[0]+probs[1]:
		return 1
	default:
		return 2
	}
}

func displayName(s Side) string {
	if s == SideAway {
		return "Away"
	}
	return "Home"
}
