package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jdmarch/breakaway/internal/core/league"
	"github.com/jdmarch/breakaway/internal/telemetry"

	_ "modernc.org/sqlite"
)

// Store persists season runs in SQLite. Each run gets a uuid so several
// seasons can live in one database; the feed server replays pbp rows by run
// and game id.
type Store struct {
	db    *sql.DB
	mu    sync.Mutex
	RunID string
}

func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id     TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			seed       INTEGER NOT NULL,
			start_week INTEGER NOT NULL,
			end_week   INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			run_id     TEXT NOT NULL,
			game_id    INTEGER NOT NULL,
			week       INTEGER NOT NULL,
			home_team  TEXT NOT NULL,
			away_team  TEXT NOT NULL,
			home_score INTEGER NOT NULL,
			away_score INTEGER NOT NULL,
			went_ot    INTEGER NOT NULL,
			winner     TEXT NOT NULL,
			loser      TEXT NOT NULL,
			PRIMARY KEY (run_id, game_id)
		)`,
		`CREATE TABLE IF NOT EXISTS pbp (
			run_id     TEXT NOT NULL,
			game_id    INTEGER NOT NULL,
			week       INTEGER NOT NULL,
			seq        INTEGER NOT NULL,
			period     INTEGER NOT NULL,
			event_json TEXT NOT NULL,
			PRIMARY KEY (run_id, game_id, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS team_box (
			run_id               TEXT NOT NULL,
			game_id              INTEGER NOT NULL,
			week                 INTEGER NOT NULL,
			home_team            TEXT NOT NULL,
			away_team            TEXT NOT NULL,
			went_ot              INTEGER NOT NULL,
			home_shots           INTEGER, away_shots   INTEGER,
			home_xg              REAL,    away_xg      REAL,
			home_goals           INTEGER, away_goals   INTEGER,
			home_penalty_minutes INTEGER, away_penalty_minutes INTEGER,
			PRIMARY KEY (run_id, game_id)
		)`,
		`CREATE TABLE IF NOT EXISTS standings (
			run_id TEXT NOT NULL,
			team   TEXT NOT NULL,
			gp INTEGER, w INTEGER, otw INTEGER, l INTEGER, otl INTEGER,
			pts INTEGER, gf INTEGER, ga INTEGER, gd INTEGER,
			PRIMARY KEY (run_id, team)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pbp_game ON pbp(run_id, game_id)`,
		`CREATE INDEX IF NOT EXISTS idx_games_week ON games(run_id, week)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init schema (%s): %w", stmt, err)
		}
	}

	s := &Store{db: db, RunID: uuid.NewString()}
	telemetry.Infof("season store: opened %s run=%s", path, s.RunID)
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// BeginRun records the run row. Call once before the season inserts.
func (s *Store) BeginRun(seed int64, startWeek, endWeek int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, created_at, seed, start_week, end_week) VALUES (?,?,?,?,?)`,
		s.RunID, time.Now().UTC().Format(time.RFC3339), seed, startWeek, endWeek)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// SaveSeason writes a full season result inside one transaction.
func (s *Store) SaveSeason(res *league.SeasonResult, teamBox []league.TeamBoxRow, standings []league.StandingsRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	gameStmt, err := tx.Prepare(`INSERT INTO games
		(run_id, game_id, week, home_team, away_team, home_score, away_score, went_ot, winner, loser)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare games: %w", err)
	}
	defer gameStmt.Close()
	for _, g := range res.Games {
		if _, err := gameStmt.Exec(s.RunID, g.GameID, g.Week, g.HomeTeam, g.AwayTeam,
			g.HomeScore, g.AwayScore, boolInt(g.WentOT), g.Winner, g.Loser); err != nil {
			return fmt.Errorf("insert game %d: %w", g.GameID, err)
		}
	}

	pbpStmt, err := tx.Prepare(`INSERT INTO pbp
		(run_id, game_id, week, seq, period, event_json) VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare pbp: %w", err)
	}
	defer pbpStmt.Close()
	seq := 0
	lastGame := -1
	for _, r := range res.PBP {
		if r.GameID != lastGame {
			lastGame = r.GameID
			seq = 0
		}
		seq++
		payload, err := json.Marshal(r.Event)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		if _, err := pbpStmt.Exec(s.RunID, r.GameID, r.Week, seq, r.Period, string(payload)); err != nil {
			return fmt.Errorf("insert pbp game %d seq %d: %w", r.GameID, seq, err)
		}
	}

	boxStmt, err := tx.Prepare(`INSERT INTO team_box
		(run_id, game_id, week, home_team, away_team, went_ot,
		 home_shots, away_shots, home_xg, away_xg, home_goals, away_goals,
		 home_penalty_minutes, away_penalty_minutes)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare team_box: %w", err)
	}
	defer boxStmt.Close()
	for _, t := range teamBox {
		if _, err := boxStmt.Exec(s.RunID, t.GameID, t.Week, t.HomeTeam, t.AwayTeam, boolInt(t.WentOT),
			t.HomeShots, t.AwayShots, t.HomeXG, t.AwayXG, t.HomeGoals, t.AwayGoals,
			t.HomePIM, t.AwayPIM); err != nil {
			return fmt.Errorf("insert team_box game %d: %w", t.GameID, err)
		}
	}

	standStmt, err := tx.Prepare(`INSERT INTO standings
		(run_id, team, gp, w, otw, l, otl, pts, gf, ga, gd) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare standings: %w", err)
	}
	defer standStmt.Close()
	for _, row := range standings {
		if _, err := standStmt.Exec(s.RunID, row.Team, row.GP, row.W, row.OTW, row.L, row.OTL,
			row.PTS, row.GF, row.GA, row.GD); err != nil {
			return fmt.Errorf("insert standings %s: %w", row.Team, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	telemetry.Infof("season store: saved %d games, %d pbp rows", len(res.Games), len(res.PBP))
	return nil
}

// PBPGame is a stored game with its replayable event stream.
type PBPGame struct {
	GameID   int
	Week     int
	HomeTeam string
	AwayTeam string
	Events   []json.RawMessage
}

// LoadPBPGames returns the play-by-play games of the most recent run, in
// game-id order. The feed server streams these.
func (s *Store) LoadPBPGames() ([]PBPGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var runID string
	if err := s.db.QueryRow(`SELECT run_id FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&runID); err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}

	rows, err := s.db.Query(`SELECT p.game_id, p.week, g.home_team, g.away_team, p.event_json
		FROM pbp p JOIN games g ON g.run_id = p.run_id AND g.game_id = p.game_id
		WHERE p.run_id = ? ORDER BY p.game_id, p.seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query pbp: %w", err)
	}
	defer rows.Close()

	var games []PBPGame
	for rows.Next() {
		var gameID, week int
		var home, away, payload string
		if err := rows.Scan(&gameID, &week, &home, &away, &payload); err != nil {
			return nil, fmt.Errorf("scan pbp: %w", err)
		}
		if len(games) == 0 || games[len(games)-1].GameID != gameID {
			games = append(games, PBPGame{GameID: gameID, Week: week, HomeTeam: home, AwayTeam: away})
		}
		g := &games[len(games)-1]
		g.Events = append(g.Events, json.RawMessage(payload))
	}
	return games, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
