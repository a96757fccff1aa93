package roster

import (
	"fmt"
	"sort"
)

// Team owns a roster plus the derived lines and pairings its coach built.
// The four HFA coefficients are drafted per team; a league where every team
// shares the same values degenerates to a global home-ice constant.
type Team struct {
	Name   string
	Roster []*Player
	Coach  *Coach

	Lines map[int][]*Player // line id -> 3 forwards
	Pairs map[int][]*Player // pair id -> 2 defensemen

	HFAShotCreationMult    float64 // home shot-rate multiplier, league avg ~1.02
	HFAXGBonus             float64 // home per-shot xG bonus, league avg ~0.0025
	HFAShotSuppressionMult float64 // opponent shot-rate multiplier, league avg ~0.98
	HFAXGSuppression       float64 // opponent per-shot xG delta, league avg ~-0.0025
}

// NewTeam builds a team and its line/pair groupings. A roster without
// forwards or without a goalie cannot take the ice and is rejected here;
// everything else (short benches, zero defensemen) degrades gracefully
// inside the simulation.
func NewTeam(name string, players []*Player, coach *Coach,
	hfaShotCreation, hfaXGBonus, hfaShotSuppression, hfaXGSuppression float64) (*Team, error) {

	t := &Team{
		Name:                   name,
		Roster:                 players,
		Coach:                  coach,
		HFAShotCreationMult:    hfaShotCreation,
		HFAXGBonus:             hfaXGBonus,
		HFAShotSuppressionMult: hfaShotSuppression,
		HFAXGSuppression:       hfaXGSuppression,
	}
	if len(t.Forwards()) < 3 {
		return nil, fmt.Errorf("team %s: need at least one full forward line, have %d forwards", name, len(t.Forwards()))
	}
	if len(t.Goalies()) == 0 {
		return nil, fmt.Errorf("team %s: no goalie on roster", name)
	}
	t.Lines = coach.Lines(t.Forwards())
	t.Pairs = coach.Pairs(t.Defensemen())
	return t, nil
}

func (t *Team) Forwards() []*Player   { return t.byPosition(Forward) }
func (t *Team) Defensemen() []*Player { return t.byPosition(Defenseman) }
func (t *Team) Goalies() []*Player    { return t.byPosition(Goalie) }

func (t *Team) byPosition(pos Position) []*Player {
	var out []*Player
	for _, p := range t.Roster {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}

// StartingGoalie is the goalie credited with the game; goalie rotation is
// not modeled.
func (t *Team) StartingGoalie() *Player { return t.Goalies()[0] }

// skaterPool splits skaters into available and counts how many of the
// roster's skaters the unavailable set removes.
func (t *Team) skaterPool(unavailable Set) (available []*Player, removed int) {
	for _, p := range t.Roster {
		if p.Position == Goalie {
			continue
		}
		if unavailable[p] {
			removed++
			continue
		}
		available = append(available, p)
	}
	return available, removed
}

// PowerPlayUnit selects 5-minus-unavailable skaters ranked by offensive
// contribution, keeping at least 1 and at most 2 defensemen when the roster
// allows it. Under scarcity it returns the best feasible subset.
func (t *Team) PowerPlayUnit(unavailable Set) []*Player {
	available, removed := t.skaterPool(unavailable)
	target := 5 - removed
	if target < 0 {
		target = 0
	}
	return selectUnit(available, target, (*Player).OffensiveScore, 1, 2)
}

// PenaltyKillUnit selects a shorthanded unit of the given size ranked by
// defensive contribution, keeping at least 2 and at most 3 defensemen when
// possible. size <= 0 derives the size from the unavailable count. The same
// selector, sized 4 or 3, produces the balanced units used at 4v4/3v3.
func (t *Team) PenaltyKillUnit(unavailable Set, size int) []*Player {
	available, removed := t.skaterPool(unavailable)
	if size <= 0 {
		size = 5 - removed
	}
	if size < 0 {
		size = 0
	}
	return selectUnit(available, size, (*Player).DefensiveScore, 2, 3)
}

// selectUnit takes the top `target` skaters by score, then swaps players in
// and out until the defenseman count lands inside [minD, maxD]. Best effort:
// constraints relax when the pool cannot satisfy them.
func selectUnit(pool []*Player, target int, score func(*Player) float64, minD, maxD int) []*Player {
	if target <= 0 || len(pool) == 0 {
		return nil
	}
	sorted := sortedByScore(pool, score)
	if target > len(sorted) {
		target = len(sorted)
	}
	selected := append([]*Player(nil), sorted[:target]...)

	totalD := 0
	for _, p := range pool {
		if p.Position == Defenseman {
			totalD++
		}
	}
	if minD > totalD {
		minD = totalD
	}
	if maxD > target {
		maxD = target
	}

	countD := func() int {
		n := 0
		for _, p := range selected {
			if p.Position == Defenseman {
				n++
			}
		}
		return n
	}
	inSelected := func(p *Player) bool {
		for _, q := range selected {
			if q == p {
				return true
			}
		}
		return false
	}
	bestOutside := func(pos Position) *Player {
		for _, p := range sorted {
			if p.Position == pos && !inSelected(p) {
				return p
			}
		}
		return nil
	}
	worstInside := func(pos Position) int {
		idx := -1
		for i, p := range selected {
			if p.Position != pos {
				continue
			}
			if idx == -1 || score(p) < score(selected[idx]) {
				idx = i
			}
		}
		return idx
	}

	// Raise the defenseman count to minD by swapping out the weakest forwards.
	for countD() < minD {
		d := bestOutside(Defenseman)
		fi := worstInside(Forward)
		if d == nil || fi == -1 {
			break
		}
		selected[fi] = d
	}
	// Cap at maxD by swapping the weakest defensemen for the best forwards.
	for countD() > maxD {
		f := bestOutside(Forward)
		di := worstInside(Defenseman)
		if f == nil || di == -1 {
			break
		}
		selected[di] = f
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return score(selected[i]) > score(selected[j])
	})
	return selected
}
