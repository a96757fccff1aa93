// Package export persists season outputs: CSV files for analysis and a
// SQLite database for downstream consumers like the feed server.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jdmarch/breakaway/internal/core/league"
)

func writeCSV(dir, name string, header []string, rows [][]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s rows: %w", name, err)
	}
	return nil
}

func f3(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
func f4(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
func itoa(v int) string   { return strconv.Itoa(v) }

func btoi(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// WriteRosters writes one row per player with team and coach context.
func WriteRosters(dir string, l *league.League) error {
	header := []string{"team", "coach", "playstyle", "player", "position",
		"creation", "conversion", "suppression", "prevention", "goalkeeping",
		"stamina", "discipline", "total"}
	var rows [][]string
	for _, team := range l.Teams {
		for _, p := range team.Roster {
			rows = append(rows, []string{
				team.Name, team.Coach.Name, string(team.Coach.Playstyle),
				p.Name, string(p.Position),
				f3(p.Creation), f3(p.Conversion), f3(p.Suppression), f3(p.Prevention),
				f3(p.Goalkeeping), f3(p.Stamina), f3(p.Discipline),
				f3(p.TotalScore() + p.Goalkeeping),
			})
		}
	}
	return writeCSV(dir, "rosters.csv", header, rows)
}

// WriteSchedule writes the matchweek grid.
func WriteSchedule(dir string, weeks [][]league.Matchup) error {
	header := []string{"matchweek", "home_team", "away_team"}
	var rows [][]string
	for i, week := range weeks {
		for _, m := range week {
			rows = append(rows, []string{itoa(i + 1), m.Home.Name, m.Away.Name})
		}
	}
	return writeCSV(dir, "schedule.csv", header, rows)
}

func WriteGameResults(dir string, games []league.GameRow) error {
	header := []string{"game_id", "week", "home_team", "away_team",
		"home_score", "away_score", "went_ot", "winner", "loser"}
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{
			itoa(g.GameID), itoa(g.Week), g.HomeTeam, g.AwayTeam,
			itoa(g.HomeScore), itoa(g.AwayScore), btoi(g.WentOT), g.Winner, g.Loser,
		})
	}
	return writeCSV(dir, "game_results.csv", header, rows)
}

func WriteStandings(dir string, standings []league.StandingsRow) error {
	header := []string{"team", "GP", "W", "OTW", "L", "OTL", "PTS", "GF", "GA", "GD"}
	rows := make([][]string, 0, len(standings))
	for _, s := range standings {
		rows = append(rows, []string{
			s.Team, itoa(s.GP), itoa(s.W), itoa(s.OTW), itoa(s.L), itoa(s.OTL),
			itoa(s.PTS), itoa(s.GF), itoa(s.GA), itoa(s.GD),
		})
	}
	return writeCSV(dir, "standings.csv", header, rows)
}

// WritePBP writes the play-by-play log for the exported weeks. On-ice
// skater lists are pipe-joined to keep the file one row per event.
func WritePBP(dir string, pbp []league.PBPRow) error {
	header := []string{"game_id", "week", "home_team", "away_team", "period",
		"time_seconds", "event_type", "description", "home_score", "away_score",
		"tag", "home_on_ice", "away_on_ice"}
	rows := make([][]string, 0, len(pbp))
	for _, r := range pbp {
		ev := r.Event
		rows = append(rows, []string{
			itoa(r.GameID), itoa(r.Week), r.HomeTeam, r.AwayTeam, itoa(r.Period),
			strconv.FormatFloat(ev.Time, 'f', 2, 64),
			string(ev.Kind), ev.Desc, itoa(ev.HomeScore), itoa(ev.AwayScore),
			ev.Context,
			strings.Join(ev.HomeOnIce, "|"), strings.Join(ev.AwayOnIce, "|"),
		})
	}
	return writeCSV(dir, "pbp.csv", header, rows)
}

// WriteRankings writes the top-n leaderboard for one attribute key to
// <key>_rankings.csv.
func WriteRankings(dir string, l *league.League, key string, n int) error {
	header := []string{"rank", "player", "position", "team",
		"creation", "conversion", "suppression", "prevention", "goalkeeping",
		"stamina", "discipline", "total"}
	var rows [][]string
	for i, r := range l.PlayerRankings(n, key) {
		rows = append(rows, []string{
			itoa(i + 1), r.Player, string(r.Position), r.Team,
			f3(r.Creation), f3(r.Conversion), f3(r.Suppression), f3(r.Prevention),
			f3(r.Goalkeeping), f3(r.Stamina), f3(r.Discipline), f3(r.Total),
		})
	}
	return writeCSV(dir, key+"_rankings.csv", header, rows)
}

func WriteTeams(dir string, summaries []league.TeamSummary) error {
	header := []string{"team", "coach", "playstyle", "conference", "division",
		"creation_sum", "conversion_sum", "suppression_sum", "prevention_sum",
		"goalkeeping_sum", "stamina_sum", "discipline_sum", "total_sum",
		"hfa_shot_creation_mult", "hfa_xg_bonus", "hfa_shot_suppression_mult", "hfa_xg_suppression"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Team, s.Coach, string(s.Playstyle), s.Conference, s.Division,
			f3(s.CreationSum), f3(s.ConversionSum), f3(s.SuppressionSum), f3(s.PreventionSum),
			f3(s.GoalkeepingSum), f3(s.StaminaSum), f3(s.DisciplineSum), f3(s.TotalSum),
			f4(s.HFAShotCreationMult), f4(s.HFAXGBonus), f4(s.HFAShotSuppressionMult), f4(s.HFAXGSuppression),
		})
	}
	return writeCSV(dir, "teams.csv", header, rows)
}

// WriteLineBox writes the per-matchup box scores.
func WriteLineBox(dir string, box []league.BoxRow) error {
	header := []string{"game_id", "week", "home_team", "away_team",
		"home_line", "home_pair", "away_line", "away_pair", "toi_seconds",
		"home_shots", "away_shots", "home_xg", "away_xg",
		"home_max_xg", "away_max_xg", "home_goals", "away_goals",
		"home_assists", "away_assists",
		"home_penalties_taken", "away_penalties_taken",
		"home_penalties_drawn", "away_penalties_drawn",
		"home_penalty_minutes", "away_penalty_minutes",
		"home_goalie", "away_goalie"}
	rows := make([][]string, 0, len(box))
	for _, b := range box {
		r := b.Row
		rows = append(rows, []string{
			itoa(b.GameID), itoa(b.Week), b.HomeTeam, b.AwayTeam,
			r.Matchup.HomeLine, r.Matchup.HomePair, r.Matchup.AwayLine, r.Matchup.AwayPair,
			strconv.FormatFloat(r.TOI, 'f', 2, 64),
			itoa(r.HomeShots), itoa(r.AwayShots), f4(r.HomeXG), f4(r.AwayXG),
			f4(r.HomeMaxXG), f4(r.AwayMaxXG), itoa(r.HomeGoals), itoa(r.AwayGoals),
			itoa(r.HomeAssists), itoa(r.AwayAssists),
			itoa(r.HomePenaltiesTaken), itoa(r.AwayPenaltiesTaken),
			itoa(r.HomePenaltiesDrawn), itoa(r.AwayPenaltiesDrawn),
			itoa(r.HomePIM), itoa(r.AwayPIM),
			r.HomeGoalie, r.AwayGoalie,
		})
	}
	return writeCSV(dir, "box_scores.csv", header, rows)
}

// WriteTeamBox writes the game-level team box scores.
func WriteTeamBox(dir string, box []league.TeamBoxRow) error {
	header := []string{"game_id", "week", "home_team", "away_team", "went_ot",
		"home_shots", "away_shots", "home_xg", "away_xg",
		"home_max_xg", "away_max_xg", "home_goals", "away_goals",
		"home_assists", "away_assists",
		"home_penalties_taken", "away_penalties_taken",
		"home_penalties_drawn", "away_penalties_drawn",
		"home_penalty_minutes", "away_penalty_minutes"}
	rows := make([][]string, 0, len(box))
	for _, t := range box {
		rows = append(rows, []string{
			itoa(t.GameID), itoa(t.Week), t.HomeTeam, t.AwayTeam, btoi(t.WentOT),
			itoa(t.HomeShots), itoa(t.AwayShots), f4(t.HomeXG), f4(t.AwayXG),
			f4(t.HomeMaxXG), f4(t.AwayMaxXG), itoa(t.HomeGoals), itoa(t.AwayGoals),
			itoa(t.HomeAssists), itoa(t.AwayAssists),
			itoa(t.HomePenaltiesTaken), itoa(t.AwayPenaltiesTaken),
			itoa(t.HomePenaltiesDrawn), itoa(t.AwayPenaltiesDrawn),
			itoa(t.HomePIM), itoa(t.AwayPIM),
		})
	}
	return writeCSV(dir, "team_box_scores.csv", header, rows)
}
