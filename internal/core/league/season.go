package league

import (
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jdmarch/breakaway/internal/core/boxscore"
	"github.com/jdmarch/breakaway/internal/core/sim"
	"github.com/jdmarch/breakaway/internal/telemetry"
	"github.com/jdmarch/breakaway/pkg/metrics"
)

// GameRow is the one-line result of a simulated game.
type GameRow struct {
	GameID    int
	Week      int
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	WentOT    bool
	Winner    string
	Loser     string
}

// PBPRow is one play-by-play event with its game context attached.
type PBPRow struct {
	GameID   int
	Week     int
	HomeTeam string
	AwayTeam string
	Period   int
	Event    sim.Event
}

// BoxRow is one line-matchup box-score row with its game context attached.
type BoxRow struct {
	GameID   int
	Week     int
	HomeTeam string
	AwayTeam string
	Row      boxscore.Row
}

// SeasonOptions selects the week range to simulate and seeds the games.
type SeasonOptions struct {
	Seed      int64
	Params    sim.Params
	StartWeek int // 1-based, inclusive
	EndWeek   int // inclusive; <= 0 means through the last week
	PBPWeeks  int // keep play-by-play for the first N simulated weeks
	Workers   int // <= 0 means runtime.NumCPU()
}

// SeasonResult bundles everything a season simulation produces.
type SeasonResult struct {
	Games []GameRow
	PBP   []PBPRow
	Box   []BoxRow
}

type scheduledGame struct {
	id      int
	week    int
	matchup Matchup
}

// SimulateSeason runs the selected weeks in parallel. Each game gets its
// own rng derived from the season seed and the game id, so results are
// reproducible regardless of worker count or completion order.
func (l *League) SimulateSeason(weeks [][]Matchup, opts SeasonOptions) (*SeasonResult, error) {
	start := opts.StartWeek
	if start < 1 {
		start = 1
	}
	end := opts.EndWeek
	if end <= 0 || end > len(weeks) {
		end = len(weeks)
	}

	var scheduled []scheduledGame
	gameID := 0
	for wk := start; wk <= end; wk++ {
		for _, m := range weeks[wk-1] {
			gameID++
			scheduled = append(scheduled, scheduledGame{id: gameID, week: wk, matchup: m})
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	telemetry.Infof("simulating weeks %d-%d: %d games across %d workers", start, end, len(scheduled), workers)

	results := make([]sim.Result, len(scheduled))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, sg := range scheduled {
		i, sg := i, sg
		g.Go(func() error {
			begin := time.Now()
			rng := rand.New(rand.NewSource(opts.Seed + int64(sg.id)))
			game := sim.NewGame(sg.matchup.Home, sg.matchup.Away, rng, opts.Params)
			results[i] = game.Simulate()
			metrics.GamesSimulated.Inc()
			metrics.SimulationSeconds.Observe(time.Since(begin).Seconds())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &SeasonResult{Games: make([]GameRow, 0, len(scheduled))}
	for i, sg := range scheduled {
		res := results[i]

		metrics.GoalsScored.WithLabelValues("home").Add(float64(res.HomeScore))
		metrics.GoalsScored.WithLabelValues("away").Add(float64(res.AwayScore))
		if res.WentOT {
			metrics.OvertimeGames.Inc()
		}
		for _, ev := range res.Events {
			if ev.Kind == sim.KindPenalty {
				metrics.PenaltiesCalled.Inc()
			}
		}

		winner, loser := res.HomeTeam, res.AwayTeam
		if res.AwayScore > res.HomeScore {
			winner, loser = res.AwayTeam, res.HomeTeam
		}
		out.Games = append(out.Games, GameRow{
			GameID:    sg.id,
			Week:      sg.week,
			HomeTeam:  res.HomeTeam,
			AwayTeam:  res.AwayTeam,
			HomeScore: res.HomeScore,
			AwayScore: res.AwayScore,
			WentOT:    res.WentOT,
			Winner:    winner,
			Loser:     loser,
		})

		if sg.week-start+1 <= opts.PBPWeeks {
			for _, ev := range res.Events {
				out.PBP = append(out.PBP, PBPRow{
					GameID:   sg.id,
					Week:     sg.week,
					HomeTeam: res.HomeTeam,
					AwayTeam: res.AwayTeam,
					Period:   int(ev.Time/1200.0) + 1,
					Event:    ev,
				})
			}
		}

		for _, row := range boxscore.Generate(res) {
			out.Box = append(out.Box, BoxRow{
				GameID:   sg.id,
				Week:     sg.week,
				HomeTeam: res.HomeTeam,
				AwayTeam: res.AwayTeam,
				Row:      row,
			})
		}
	}
	telemetry.Infof("season segment done: %d games, %d pbp rows, %d box rows", len(out.Games), len(out.PBP), len(out.Box))
	return out, nil
}
