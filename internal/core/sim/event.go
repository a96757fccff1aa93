package sim

// Kind identifies an entry in a game's event log. The set is closed: the
// box-score attributor and the exporters switch over it exhaustively.
type Kind string

const (
	KindPeriodStart   Kind = "period_start"
	KindPeriodEnd     Kind = "period_end"
	KindOvertimeStart Kind = "overtime_start"
	KindOvertimeGoal  Kind = "overtime_goal"
	KindShot          Kind = "shot"
	KindGoal          Kind = "goal"
	KindPenalty       Kind = "penalty"
	KindPPStart       Kind = "pp_start"
	KindPPEnd         Kind = "pp_end"
	KindLineChange    Kind = "line_change"
	KindGoaliePulled  Kind = "goalie_pulled"
	KindGoalieIn      Kind = "goalie_in"
)

// Side is the team an event belongs to. Empty for neutral events.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideNone Side = ""
)

// Opponent returns the other side, or SideNone for SideNone.
func (s Side) Opponent() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	}
	return SideNone
}

// Unit names which on-ice group a line change swapped.
type Unit string

const (
	UnitForward Unit = "forward"
	UnitDefense Unit = "defense"
	UnitBoth    Unit = "both"
)

// Event is one immutable entry in the play-by-play log. Payload fields are
// populated per Kind: XG on shots, Assists on goals, Minutes on penalties,
// Side/Unit on line changes. Everything else carries the snapshot fields only.
type Event struct {
	Time      float64 `json:"time"`
	Kind      Kind    `json:"kind"`
	Desc      string  `json:"desc"`
	HomeScore int     `json:"home_score"`
	AwayScore int     `json:"away_score"`

	// Context tags the manpower situation the event happened in:
	// "even", "home_pp", "away_pp", "home_pp_shot", "away_pp_shot",
	// "home_penalty", "away_penalty", "full", "4v4", "3v3",
	// "home_pulled", "away_pulled", "home_in", "away_in".
	Context string `json:"context,omitempty"`

	HomeOnIce []string `json:"home_on_ice,omitempty"`
	AwayOnIce []string `json:"away_on_ice,omitempty"`

	Side Side `json:"side,omitempty"`
	Unit Unit `json:"unit,omitempty"`

	XG      float64 `json:"xg,omitempty"`
	Assists int     `json:"assists,omitempty"`
	Minutes int     `json:"minutes,omitempty"`
}
