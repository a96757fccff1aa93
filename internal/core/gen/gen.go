// Package gen builds randomized leagues: coaches, skill-sampled players
// and national teams drafted from shared pools.
package gen

import (
	"math/rand"

	"github.com/jdmarch/breakaway/internal/core/roster"
)

// Options controls roster shapes. Counts are per team.
type Options struct {
	NumTeams int
	NumLines int
	NumPairs int
	Goalies  int
}

func DefaultOptions() Options {
	return Options{NumTeams: 32, NumLines: 4, NumPairs: 3, Goalies: 2}
}

// Home-advantage coefficients are sampled per team around league means so
// no two buildings play identically.
const (
	hfaCreationMean = 1.02
	hfaCreationSD   = 0.01
	hfaXGBonusMean  = 0.0025
	hfaXGBonusSD    = 0.0005
	hfaSuppressMean = 0.98
	hfaSuppressSD   = 0.005
	hfaXGSuppressMu = -0.0025
	hfaXGSuppressSD = 0.0005
)

// CreateCoaches samples n coaches with uniformly random playstyles.
func CreateCoaches(rng *rand.Rand, n int, seen map[string]bool) []*roster.Coach {
	coaches := make([]*roster.Coach, 0, n)
	for i := 0; i < n; i++ {
		coaches = append(coaches, &roster.Coach{
			Name:      uniqueName(rng, seen),
			Playstyle: roster.Playstyles[rng.Intn(len(roster.Playstyles))],
		})
	}
	return coaches
}

// Skills are standard normal. The rate model's scale constants and its
// discipline normalization are calibrated to N(0,1) draws.
func newSkater(rng *rand.Rand, pos roster.Position, seen map[string]bool) *roster.Player {
	return &roster.Player{
		Name:        uniqueName(rng, seen),
		Position:    pos,
		Creation:    rng.NormFloat64(),
		Conversion:  rng.NormFloat64(),
		Suppression: rng.NormFloat64(),
		Prevention:  rng.NormFloat64(),
		Stamina:     rng.NormFloat64(),
		Discipline:  rng.NormFloat64(),
	}
}

func newGoalie(rng *rand.Rand, seen map[string]bool) *roster.Player {
	return &roster.Player{
		Name:        uniqueName(rng, seen),
		Position:    roster.Goalie,
		Goalkeeping: rng.NormFloat64(),
		Stamina:     rng.NormFloat64(),
		Discipline:  rng.NormFloat64(),
	}
}

// BuildTeams generates league-wide player and coach pools, shuffles them
// and deals them out to the national teams in HockeyCountries order.
func BuildTeams(rng *rand.Rand, opts Options) ([]*roster.Team, error) {
	seen := make(map[string]bool)

	fwdPerTeam := opts.NumLines * 3
	defPerTeam := opts.NumPairs * 2

	forwards := make([]*roster.Player, 0, opts.NumTeams*fwdPerTeam)
	defensemen := make([]*roster.Player, 0, opts.NumTeams*defPerTeam)
	goalies := make([]*roster.Player, 0, opts.NumTeams*opts.Goalies)
	for i := 0; i < opts.NumTeams*fwdPerTeam; i++ {
		forwards = append(forwards, newSkater(rng, roster.Forward, seen))
	}
	for i := 0; i < opts.NumTeams*defPerTeam; i++ {
		defensemen = append(defensemen, newSkater(rng, roster.Defenseman, seen))
	}
	for i := 0; i < opts.NumTeams*opts.Goalies; i++ {
		goalies = append(goalies, newGoalie(rng, seen))
	}

	rng.Shuffle(len(forwards), func(i, j int) { forwards[i], forwards[j] = forwards[j], forwards[i] })
	rng.Shuffle(len(defensemen), func(i, j int) { defensemen[i], defensemen[j] = defensemen[j], defensemen[i] })
	rng.Shuffle(len(goalies), func(i, j int) { goalies[i], goalies[j] = goalies[j], goalies[i] })

	coaches := CreateCoaches(rng, opts.NumTeams, seen)

	teams := make([]*roster.Team, 0, opts.NumTeams)
	for i := 0; i < opts.NumTeams; i++ {
		players := make([]*roster.Player, 0, fwdPerTeam+defPerTeam+opts.Goalies)
		players = append(players, forwards[i*fwdPerTeam:(i+1)*fwdPerTeam]...)
		players = append(players, defensemen[i*defPerTeam:(i+1)*defPerTeam]...)
		players = append(players, goalies[i*opts.Goalies:(i+1)*opts.Goalies]...)

		name := HockeyCountries[i%len(HockeyCountries)]
		team, err := roster.NewTeam(name, players, coaches[i],
			hfaCreationMean+hfaCreationSD*rng.NormFloat64(),
			hfaXGBonusMean+hfaXGBonusSD*rng.NormFloat64(),
			hfaSuppressMean+hfaSuppressSD*rng.NormFloat64(),
			hfaXGSuppressMu+hfaXGSuppressSD*rng.NormFloat64())
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}
