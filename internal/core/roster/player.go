// Package roster holds the player/team domain the simulator consumes:
// rosters, coach-built lines and pairings, and the special-teams unit
// selection queries. The simulation core treats all of it as read-only.
package roster

// Position is a player's role on the roster sheet.
type Position string

const (
	Forward    Position = "F"
	Defenseman Position = "D"
	Goalie     Position = "G"
)

// Player carries the skill scalars the rate model consumes. Skills are
// standard-normal draws at generation time; goalkeeping is only meaningful
// for goalies and is zeroed elsewhere.
type Player struct {
	Name     string
	Position Position

	Creation    float64 // shot generation, raises own shot rate
	Conversion  float64 // shot quality, raises own xG
	Suppression float64 // lowers opponent shot rate
	Prevention  float64 // lowers opponent xG
	Goalkeeping float64 // goalies only, lowers opponent xG

	Stamina    float64
	Discipline float64 // higher = fewer penalties
}

// OffensiveScore ranks players for power-play and extra-attacker selection.
func (p *Player) OffensiveScore() float64 { return p.Creation + p.Conversion }

// DefensiveScore ranks players for penalty-kill selection.
func (p *Player) DefensiveScore() float64 { return p.Suppression + p.Prevention }

// TotalScore is the overall skill sum used by coaches when seeding groupings.
func (p *Player) TotalScore() float64 {
	return p.Creation + p.Conversion + p.Suppression + p.Prevention
}

// Set is a lookup of players, used for unavailability checks.
type Set map[*Player]bool
