package sim

import "math"

// Manpower is the ordered pair of effective skater counts (goalies excluded).
type Manpower struct {
	Home int
	Away int
}

// perSide holds a (home value, away value) table entry.
type perSide struct {
	Home float64
	Away float64
}

// Shot-rate baselines in shots per second, keyed by manpower situation.
// Source rates are per minute; divided by 60 here. (6,6) and other unreachable
// combinations are absent and fall back to 5v5.
var shotRateBaselines = map[Manpower]perSide{
	{3, 3}: {0.418 / 60.0, 0.418 / 60.0},
	{3, 4}: {0.198 / 60.0, 0.792 / 60.0},
	{3, 5}: {0.115 / 60.0, 1.353 / 60.0},
	{3, 6}: {0.072 / 60.0, 1.920 / 60.0},
	{4, 3}: {0.792 / 60.0, 0.198 / 60.0},
	{4, 4}: {0.462 / 60.0, 0.462 / 60.0},
	{4, 5}: {0.221 / 60.0, 0.754 / 60.0},
	{4, 6}: {0.104 / 60.0, 1.566 / 60.0},
	{5, 3}: {1.353 / 60.0, 0.115 / 60.0},
	{5, 4}: {0.754 / 60.0, 0.221 / 60.0},
	{5, 5}: {0.400 / 60.0, 0.400 / 60.0},
	{5, 6}: {0.174 / 60.0, 0.900 / 60.0},
	{6, 3}: {1.920 / 60.0, 0.072 / 60.0},
	{6, 4}: {1.566 / 60.0, 0.104 / 60.0},
	{6, 5}: {0.900 / 60.0, 0.174 / 60.0},
}

// Expected goals per shot on goal, keyed by manpower situation.
var xgBaselines = map[Manpower]perSide{
	{3, 3}: {0.105, 0.105},
	{3, 4}: {0.085, 0.129},
	{3, 5}: {0.061, 0.218},
	{3, 6}: {0.050, 0.225},
	{4, 3}: {0.129, 0.085},
	{4, 4}: {0.105, 0.105},
	{4, 5}: {0.076, 0.146},
	{4, 6}: {0.071, 0.172},
	{5, 3}: {0.218, 0.061},
	{5, 4}: {0.146, 0.076},
	{5, 5}: {0.095, 0.095},
	{5, 6}: {0.117, 0.163},
	{6, 3}: {0.225, 0.050},
	{6, 4}: {0.172, 0.071},
	{6, 5}: {0.163, 0.117},
}

// assistDist is the categorical distribution over {0,1,2} assists for the
// scoring side, keyed by (scoring side skaters, opposing skaters).
var assistDist = map[Manpower][3]float64{
	{3, 3}: {0.12, 0.48, 0.40},
	{3, 4}: {0.20, 0.50, 0.30},
	{3, 5}: {0.28, 0.48, 0.24},
	{3, 6}: {0.60, 0.32, 0.08},
	{4, 3}: {0.10, 0.40, 0.50},
	{4, 4}: {0.11, 0.31, 0.58},
	{4, 5}: {0.25, 0.45, 0.30},
	{4, 6}: {0.55, 0.35, 0.10},
	{5, 3}: {0.07, 0.35, 0.58},
	{5, 4}: {0.05, 0.25, 0.70},
	{5, 5}: {0.09, 0.22, 0.69},
	{5, 6}: {0.45, 0.37, 0.18},
	{6, 3}: {0.05, 0.33, 0.62},
	{6, 4}: {0.02, 0.18, 0.80},
	{6, 5}: {0.07, 0.20, 0.73},
}

// Params holds the model scaling constants. DefaultParams matches the fitted
// values; individual fields can be overridden from a tuning file.
//
// ShotRateScale scales creation/suppression sums into the shot rate.
// XGScale scales conversion/prevention sums into per-shot xG.
// GoalieScale scales the defending goalie's goalkeeping into per-shot xG.
// PenBase is the league-base penalty hazard (6 per team per 60 minutes).
// PenBeta is the discipline tilt on the penalty hazard; PickBeta is the
// steeper tilt used when choosing which on-ice skater takes the penalty.
// HFAPenaltyMult boosts the home side's penalty draw rate.
type Params struct {
	ShotRateScale  float64
	XGScale        float64
	GoalieScale    float64
	PenBase        float64
	PenBeta        float64
	PickBeta       float64
	PenClampLo     float64
	PenClampHi     float64
	HFAPenaltyMult float64
}

func DefaultParams() Params {
	return Params{
		ShotRateScale:  0.00035,
		XGScale:        0.006,
		GoalieScale:    0.012, // 2x XGScale
		PenBase:        6.0 / 3600.0,
		PenBeta:        0.40,
		PickBeta:       0.55,
		PenClampLo:     0.5,
		PenClampHi:     1.8,
		HFAPenaltyMult: 1.075,
	}
}

// penNorm recenters mean(exp(-beta*discipline)) at 1.0 for standard-normal
// discipline: E[exp(-bX)] = exp(b^2/2).
func (p Params) penNorm() float64 {
	return math.Exp(0.5 * p.PenBeta * p.PenBeta)
}

// tiny floors stochastic rates so the combined rate never reaches zero.
const tiny = 1e-12

// Rates are the four competing Poisson intensities for the current situation.
type Rates struct {
	HomeShot    float64
	AwayShot    float64
	HomePenalty float64
	AwayPenalty float64
}

func (r Rates) Total() float64 {
	return r.HomeShot + r.AwayShot + r.HomePenalty + r.AwayPenalty
}

func shotBaselines(mp Manpower) perSide {
	if b, ok := shotRateBaselines[mp]; ok {
		return b
	}
	return shotRateBaselines[Manpower{5, 5}]
}

func xgBaseline(mp Manpower, side Side) float64 {
	b, ok := xgBaselines[mp]
	if !ok {
		b = xgBaselines[Manpower{5, 5}]
	}
	if side == SideHome {
		return b.Home
	}
	return b.Away
}

func assistProbs(scoring, opposing int) [3]float64 {
	clamp := func(n int) int {
		if n < 3 {
			return 3
		}
		if n > 6 {
			return 6
		}
		return n
	}
	if d, ok := assistDist[Manpower{clamp(scoring), clamp(opposing)}]; ok {
		return d
	}
	return assistDist[Manpower{5, 5}]
}

// eventRates computes the four competing intensities from the cached on-ice
// sums and the current manpower situation. Home-ice effects use the home
// team's drafted coefficients.
func (g *Game) eventRates() Rates {
	mp := g.manpower()
	base := shotBaselines(mp)

	baseHome := base.Home * g.home.team.HFAShotCreationMult
	baseAway := base.Away * g.home.team.HFAShotSuppressionMult

	scale := g.params.ShotRateScale
	homeShot := math.Max(tiny, baseHome+scale*g.home.creationSum-scale*g.away.suppressionSum)
	awayShot := math.Max(tiny, baseAway+scale*g.away.creationSum-scale*g.home.suppressionSum)

	return Rates{
		HomeShot:    homeShot,
		AwayShot:    awayShot,
		HomePenalty: g.params.PenBase * g.home.penMult * g.params.HFAPenaltyMult,
		AwayPenalty: g.params.PenBase * g.away.penMult,
	}
}
