// Package feed replays stored play-by-play over websockets, pacing events
// by their in-game timestamps so clients see a live-feeling broadcast.
package feed

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jdmarch/breakaway/internal/export"
	"github.com/jdmarch/breakaway/internal/telemetry"
	"github.com/jdmarch/breakaway/pkg/metrics"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// Server streams stored games. Speed is game seconds per wall second; 60
// replays a period in 20 seconds, 0 or less streams without pacing.
type Server struct {
	addr  string
	speed float64
	games []export.PBPGame
}

func NewServer(addr string, speed float64, store *export.Store) (*Server, error) {
	games, err := store.LoadPBPGames()
	if err != nil {
		return nil, err
	}
	return &Server{addr: addr, speed: speed, games: games}, nil
}

// Handler builds the route mux. ListenAndServe serves it; tests can mount
// it on their own listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/games", s.handleGames)
	mux.HandleFunc("/ws/", s.handleWS)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

func (s *Server) ListenAndServe() error {
	telemetry.Infof("feed server listening on %s (%d games, %.0fx speed)", s.addr, len(s.games), s.speed)
	return http.ListenAndServe(s.addr, s.Handler())
}

type gameSummary struct {
	GameID   int    `json:"game_id"`
	Week     int    `json:"week"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Events   int    `json:"events"`
}

func (s *Server) handleGames(w http.ResponseWriter, _ *http.Request) {
	out := make([]gameSummary, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, gameSummary{
			GameID:   g.GameID,
			Week:     g.Week,
			HomeTeam: g.HomeTeam,
			AwayTeam: g.AwayTeam,
			Events:   len(g.Events),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) findGame(id int) *export.PBPGame {
	for i := range s.games {
		if s.games[i].GameID == id {
			return &s.games[i]
		}
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/ws/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "bad game id", http.StatusBadRequest)
		return
	}
	game := s.findGame(id)
	if game == nil {
		http.Error(w, "unknown game", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	metrics.FeedClients.Inc()
	defer metrics.FeedClients.Dec()
	telemetry.Infof("feed: client connected for game %d (%s vs %s)", game.GameID, game.HomeTeam, game.AwayTeam)

	prev := 0.0
	for _, raw := range game.Events {
		if s.speed > 0 {
			var stamp struct {
				Time float64 `json:"time"`
			}
			if err := json.Unmarshal(raw, &stamp); err == nil && stamp.Time > prev {
				time.Sleep(time.Duration((stamp.Time - prev) / s.speed * float64(time.Second)))
				prev = stamp.Time
			}
		}
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			telemetry.Warnf("feed: write to client failed: %v", err)
			return
		}
		metrics.FeedEventsSent.Inc()
	}
	telemetry.Infof("feed: game %d replay complete", game.GameID)
}
