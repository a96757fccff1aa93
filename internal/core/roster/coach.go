package roster

import "sort"

// Playstyle selects the grouping heuristic a coach uses to build lines and
// defensive pairings.
type Playstyle string

const (
	StarCentric    Playstyle = "star-centric"
	Balanced       Playstyle = "balanced"
	Complementary  Playstyle = "complementary"
	HyperOffensive Playstyle = "hyper-offensive"
	HyperDefensive Playstyle = "hyper-defensive"
)

// Playstyles lists every known playstyle, in generation order.
var Playstyles = []Playstyle{StarCentric, Balanced, Complementary, HyperOffensive, HyperDefensive}

// Coach assembles forward lines (groups of 3) and defensive pairings
// (groups of 2) from a position pool according to its playstyle.
type Coach struct {
	Name      string
	Playstyle Playstyle
}

// Lines groups forwards into numbered lines of 3, starting at 1.
func (c *Coach) Lines(forwards []*Player) map[int][]*Player {
	return c.groupings(forwards, 3)
}

// Pairs groups defensemen into numbered pairings of 2, starting at 1.
func (c *Coach) Pairs(defensemen []*Player) map[int][]*Player {
	return c.groupings(defensemen, 2)
}

func (c *Coach) groupings(players []*Player, size int) map[int][]*Player {
	switch c.Playstyle {
	case Balanced:
		return balancedGroupings(players, size)
	case Complementary:
		return complementaryGroupings(players, size)
	case HyperOffensive:
		return stackedGroupings(players, size, (*Player).OffensiveScore)
	case HyperDefensive:
		return stackedGroupings(players, size, (*Player).DefensiveScore)
	default: // star-centric
		return stackedGroupings(players, size, (*Player).TotalScore)
	}
}

// stackedGroupings sorts by the given score and fills group 1 with the best
// players, group 2 with the next, and so on.
func stackedGroupings(players []*Player, size int, score func(*Player) float64) map[int][]*Player {
	sorted := sortedByScore(players, score)
	groups := make(map[int][]*Player)
	for i := 0; i < len(sorted); i += size {
		end := i + size
		if end > len(sorted) {
			end = len(sorted)
		}
		groups[i/size+1] = sorted[i:end]
	}
	return groups
}

// balancedGroupings round-robins the talent-sorted pool into
// floor(len/size) equal groups so group totals stay close.
func balancedGroupings(players []*Player, size int) map[int][]*Player {
	sorted := sortedByScore(players, (*Player).TotalScore)
	n := len(sorted) / size
	if n < 1 {
		n = 1
	}
	groups := make(map[int][]*Player, n)
	limit := n * size
	if limit > len(sorted) {
		limit = len(sorted)
	}
	for i := 0; i < limit; i++ {
		id := i%n + 1
		groups[id] = append(groups[id], sorted[i])
	}
	return groups
}

// complementaryGroupings alternates offense-leaning and defense-leaning
// players within each group.
func complementaryGroupings(players []*Player, size int) map[int][]*Player {
	var offensive, defensive []*Player
	for _, p := range players {
		if p.OffensiveScore() > p.DefensiveScore() {
			offensive = append(offensive, p)
		} else {
			defensive = append(defensive, p)
		}
	}
	offensive = sortedByScore(offensive, (*Player).OffensiveScore)
	defensive = sortedByScore(defensive, (*Player).DefensiveScore)

	n := len(players) / size
	if n < 1 {
		n = 1
	}
	groups := make(map[int][]*Player, n)
	for i := 0; i < n*size; i++ {
		id := i%n + 1
		slot := len(groups[id])
		var pick *Player
		if slot%2 == 0 {
			pick, offensive, defensive = popFirst(offensive, defensive)
		} else {
			pick, defensive, offensive = popFirst(defensive, offensive)
		}
		if pick == nil {
			break
		}
		groups[id] = append(groups[id], pick)
	}
	for id, g := range groups {
		if len(g) > size {
			groups[id] = g[:size]
		}
	}
	return groups
}

// popFirst takes the head of the preferred pool, falling back to the other.
func popFirst(preferred, fallback []*Player) (*Player, []*Player, []*Player) {
	if len(preferred) > 0 {
		return preferred[0], preferred[1:], fallback
	}
	if len(fallback) > 0 {
		// Caller expects (pick, preferred', fallback'): the fallback pool
		// shrinks but comes back in the fallback slot.
		return fallback[0], preferred, fallback[1:]
	}
	return nil, preferred, fallback
}

func sortedByScore(players []*Player, score func(*Player) float64) []*Player {
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return score(sorted[i]) > score(sorted[j])
	})
	return sorted
}
