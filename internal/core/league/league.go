// Package league organizes teams into divisions and conferences, builds the
// 82-game schedule, and runs and tabulates full seasons.
package league

import (
	"fmt"
	"sort"

	"github.com/jdmarch/breakaway/internal/core/roster"
)

type Division struct {
	Name  string
	Teams []*roster.Team
}

type Conference struct {
	Name      string
	Divisions []*Division
}

func (c *Conference) Teams() []*roster.Team {
	var out []*roster.Team
	for _, d := range c.Divisions {
		out = append(out, d.Teams...)
	}
	return out
}

// League is a fixed 32-team, 8-division, 2-conference structure mirroring
// the modern NHL alignment.
type League struct {
	Teams       []*roster.Team
	Divisions   []*Division
	Conferences []*Conference
}

// divisionLayout maps division name to its four member countries, grouped
// geographically. The first four divisions form the Eastern conference, the
// rest the Western.
var divisionLayout = []struct {
	Name    string
	Members [4]string
}{
	{"Atlantic", [4]string{"Canada", "United States", "Great Britain", "France"}},
	{"Nordic", [4]string{"Sweden", "Finland", "Norway", "Denmark"}},
	{"Slavic", [4]string{"Russia", "Czech Republic", "Slovakia", "Belarus"}},
	{"Alpine", [4]string{"Germany", "Switzerland", "Austria", "Italy"}},
	{"Baltic", [4]string{"Latvia", "Estonia", "Lithuania", "Poland"}},
	{"Danube", [4]string{"Slovenia", "Croatia", "Hungary", "Romania"}},
	{"Asia-Pacific", [4]string{"Kazakhstan", "Ukraine", "Japan", "South Korea"}},
	{"Western Europe", [4]string{"Netherlands", "Belgium", "Spain", "China"}},
}

// New builds a league from exactly 32 teams whose names match the
// predefined geographic layout.
func New(teams []*roster.Team) (*League, error) {
	if len(teams) != 32 {
		return nil, fmt.Errorf("league needs exactly 32 teams, got %d", len(teams))
	}
	byName := make(map[string]*roster.Team, len(teams))
	for _, t := range teams {
		byName[t.Name] = t
	}

	l := &League{Teams: teams}
	for _, layout := range divisionLayout {
		div := &Division{Name: layout.Name}
		for _, name := range layout.Members {
			t, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("division %s: team %q not in league", layout.Name, name)
			}
			div.Teams = append(div.Teams, t)
		}
		l.Divisions = append(l.Divisions, div)
	}
	l.Conferences = []*Conference{
		{Name: "Eastern", Divisions: l.Divisions[0:4]},
		{Name: "Western", Divisions: l.Divisions[4:8]},
	}
	return l, nil
}

func (l *League) TeamDivision(t *roster.Team) *Division {
	for _, d := range l.Divisions {
		for _, m := range d.Teams {
			if m == t {
				return d
			}
		}
	}
	return nil
}

func (l *League) TeamConference(t *roster.Team) *Conference {
	for _, c := range l.Conferences {
		for _, m := range c.Teams() {
			if m == t {
				return c
			}
		}
	}
	return nil
}

// PlayerRanking is one row of a league-wide skill leaderboard.
type PlayerRanking struct {
	Team        string
	Player      string
	Position    roster.Position
	Creation    float64
	Conversion  float64
	Suppression float64
	Prevention  float64
	Goalkeeping float64
	Stamina     float64
	Discipline  float64
	Total       float64
}

// PlayerRankings returns the top n players sorted by the given attribute.
// Unknown keys fall back to creation.
func (l *League) PlayerRankings(n int, key string) []PlayerRanking {
	var rows []PlayerRanking
	for _, team := range l.Teams {
		for _, p := range team.Roster {
			rows = append(rows, PlayerRanking{
				Team:        team.Name,
				Player:      p.Name,
				Position:    p.Position,
				Creation:    p.Creation,
				Conversion:  p.Conversion,
				Suppression: p.Suppression,
				Prevention:  p.Prevention,
				Goalkeeping: p.Goalkeeping,
				Stamina:     p.Stamina,
				Discipline:  p.Discipline,
				Total:       p.TotalScore() + p.Goalkeeping,
			})
		}
	}
	val := func(r PlayerRanking) float64 {
		switch key {
		case "conversion":
			return r.Conversion
		case "suppression":
			return r.Suppression
		case "prevention":
			return r.Prevention
		case "goalkeeping":
			return r.Goalkeeping
		case "stamina":
			return r.Stamina
		case "discipline":
			return r.Discipline
		case "total":
			return r.Total
		default:
			return r.Creation
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return val(rows[i]) > val(rows[j]) })
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

// TeamSummary carries the per-team attribute sums and home-ice coefficients
// exported alongside the season data.
type TeamSummary struct {
	Team       string
	Coach      string
	Playstyle  roster.Playstyle
	Conference string
	Division   string

	CreationSum    float64
	ConversionSum  float64
	SuppressionSum float64
	PreventionSum  float64
	GoalkeepingSum float64
	StaminaSum     float64
	DisciplineSum  float64
	TotalSum       float64

	HFAShotCreationMult    float64
	HFAXGBonus             float64
	HFAShotSuppressionMult float64
	HFAXGSuppression       float64
}

func (l *League) TeamSummaries() []TeamSummary {
	out := make([]TeamSummary, 0, len(l.Teams))
	for _, team := range l.Teams {
		s := TeamSummary{
			Team:                   team.Name,
			Coach:                  team.Coach.Name,
			Playstyle:              team.Coach.Playstyle,
			HFAShotCreationMult:    team.HFAShotCreationMult,
			HFAXGBonus:             team.HFAXGBonus,
			HFAShotSuppressionMult: team.HFAShotSuppressionMult,
			HFAXGSuppression:       team.HFAXGSuppression,
		}
		if d := l.TeamDivision(team); d != nil {
			s.Division = d.Name
		}
		if c := l.TeamConference(team); c != nil {
			s.Conference = c.Name
		}
		for _, p := range team.Roster {
			s.CreationSum += p.Creation
			s.ConversionSum += p.Conversion
			s.SuppressionSum += p.Suppression
			s.PreventionSum += p.Prevention
			s.GoalkeepingSum += p.Goalkeeping
			s.StaminaSum += p.Stamina
			s.DisciplineSum += p.Discipline
		}
		s.TotalSum = s.CreationSum + s.ConversionSum + s.SuppressionSum +
			s.PreventionSum + s.GoalkeepingSum
		out = append(out, s)
	}
	return out
}
