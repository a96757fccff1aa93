// feedserver replays stored play-by-play over websockets.
//
// Usage:
//
//	go run cmd/feedserver/main.go
//
// Run cmd/season/main.go first so the SQLite database has a season in it.
// Clients list games at GET /games and subscribe at ws://.../ws/{game_id};
// Prometheus metrics are served at /metrics.
package main

import (
	"os"

	"github.com/jdmarch/breakaway/internal/config"
	"github.com/jdmarch/breakaway/internal/export"
	"github.com/jdmarch/breakaway/internal/feed"
	"github.com/jdmarch/breakaway/internal/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))
	telemetry.Infof("Starting feed server")

	// ── Season store ───────────────────────────────────────────
	store, err := export.OpenStore(cfg.SQLitePath)
	if err != nil {
		telemetry.Errorf("Store open: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	// ── Feed server ────────────────────────────────────────────
	srv, err := feed.NewServer(cfg.FeedAddr, cfg.FeedSpeed, store)
	if err != nil {
		telemetry.Errorf("Feed setup: %v", err)
		os.Exit(1)
	}
	if err := srv.ListenAndServe(); err != nil {
		telemetry.Errorf("Feed server: %v", err)
		os.Exit(1)
	}
}
