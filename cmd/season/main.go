// season builds a 32-team league, simulates the selected matchweeks, and
// writes CSV files plus a SQLite database the feed server can replay.
//
// Usage:
//
//	go run cmd/season/main.go
//
// Configuration comes from the environment (optionally a .env file); see
// internal/config for the BREAKAWAY_* keys.
package main

import (
	"math/rand"
	"os"

	"github.com/jdmarch/breakaway/internal/config"
	"github.com/jdmarch/breakaway/internal/core/gen"
	"github.com/jdmarch/breakaway/internal/core/league"
	"github.com/jdmarch/breakaway/internal/export"
	"github.com/jdmarch/breakaway/internal/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))
	telemetry.Infof("Starting season process seed=%d", cfg.Seed)

	// ── League generation ──────────────────────────────────────
	rng := rand.New(rand.NewSource(cfg.Seed))
	teams, err := gen.BuildTeams(rng, gen.Options{
		NumTeams: cfg.NumTeams,
		NumLines: cfg.NumLines,
		NumPairs: cfg.NumPairs,
		Goalies:  cfg.Goalies,
	})
	if err != nil {
		telemetry.Errorf("Team generation: %v", err)
		os.Exit(1)
	}
	lg, err := league.New(teams)
	if err != nil {
		telemetry.Errorf("League setup: %v", err)
		os.Exit(1)
	}

	// ── Schedule ───────────────────────────────────────────────
	schedule := lg.BuildSchedule(rng)
	weeks := league.BuildWeeks(schedule)
	telemetry.Infof("Schedule built: %d games over %d matchweeks", len(schedule), len(weeks))

	// ── Model tuning ───────────────────────────────────────────
	params, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		telemetry.Errorf("Tuning load: %v", err)
		os.Exit(1)
	}

	// ── Season simulation ──────────────────────────────────────
	res, err := lg.SimulateSeason(weeks, league.SeasonOptions{
		Seed:      cfg.Seed,
		Params:    params,
		StartWeek: cfg.StartWeek,
		EndWeek:   cfg.EndWeek,
		PBPWeeks:  cfg.PBPWeeks,
	})
	if err != nil {
		telemetry.Errorf("Season simulation: %v", err)
		os.Exit(1)
	}
	standings := lg.Standings(res.Games, 0)
	teamBox := league.AggregateTeamBox(res.Box, res.Games)

	// ── CSV exports ────────────────────────────────────────────
	writers := []func() error{
		func() error { return export.WriteRosters(cfg.DataDir, lg) },
		func() error { return export.WriteSchedule(cfg.DataDir, weeks) },
		func() error { return export.WriteGameResults(cfg.DataDir, res.Games) },
		func() error { return export.WriteStandings(cfg.DataDir, standings) },
		func() error { return export.WritePBP(cfg.DataDir, res.PBP) },
		func() error { return export.WriteLineBox(cfg.DataDir, res.Box) },
		func() error { return export.WriteTeamBox(cfg.DataDir, teamBox) },
		func() error { return export.WriteTeams(cfg.DataDir, lg.TeamSummaries()) },
	}
	for _, key := range []string{"creation", "conversion", "suppression", "prevention", "goalkeeping", "discipline", "total"} {
		key := key
		writers = append(writers, func() error { return export.WriteRankings(cfg.DataDir, lg, key, 50) })
	}
	for _, write := range writers {
		if err := write(); err != nil {
			telemetry.Errorf("CSV export: %v", err)
			os.Exit(1)
		}
	}
	telemetry.Infof("CSV outputs written to %s", cfg.DataDir)

	// ── SQLite store ───────────────────────────────────────────
	store, err := export.OpenStore(cfg.SQLitePath)
	if err != nil {
		telemetry.Errorf("Store open: %v", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.BeginRun(cfg.Seed, cfg.StartWeek, cfg.EndWeek); err != nil {
		telemetry.Errorf("Store run: %v", err)
		os.Exit(1)
	}
	if err := store.SaveSeason(res, teamBox, standings); err != nil {
		telemetry.Errorf("Store save: %v", err)
		os.Exit(1)
	}
	telemetry.Infof("Season run %s saved to %s", store.RunID, cfg.SQLitePath)
}
