package match

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/agent"
	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

// ReportEvery is how often, in finished games, a series reports progress.
const ReportEvery int = 25

type Stats struct {
	Games      int
	WhiteWins  int
	BlackWins  int
	Draws      int
	TotalPlies int
}

func (st *Stats) Add(o *Outcome) {
	st.Games++
	st.TotalPlies += o.Plies
	switch o.Winner {
	case shobu.White:
		st.WhiteWins++
	case shobu.Black:
		st.BlackWins++
	default:
		st.Draws++
	}
}

func (st Stats) ratio(n int) float64 {
	if st.Games == 0 {
		return 0
	}
	return float64(n) / float64(st.Games)
}

func (st Stats) MeanPlies() float64 {
	return st.ratio(st.TotalPlies)
}

func (st Stats) String() string {
	return fmt.Sprintf("%d games -> White: %.3f, Black: %.3f, Draw: %.3f, mean number of plies: %.1f",
		st.Games, st.ratio(st.WhiteWins), st.ratio(st.BlackWins),
		st.ratio(st.Draws), st.MeanPlies())
}

// AgentsFunc builds a fresh pair of agents for one match.
type AgentsFunc func() ([shobu.NumPlayers]agent.Agent, error)

// Series plays n matches, at most parallel at a time, and tallies their
// outcomes. report, if not nil, receives the running stats every
// ReportEvery games.
func Series(ctx context.Context, game *shobu.Game, n, parallel int,
	newAgents AgentsFunc, opts Options, report func(Stats)) (Stats, error) {
	var mu sync.Mutex
	var stats Stats
	g, gctx := errgroup.WithContext(ctx)
	if parallel < 1 {
		parallel = 1
	}
	g.SetLimit(parallel)
	var buildErr error
	for i := 0; i < n && buildErr == nil; i++ {
		agents, err := newAgents()
		if err != nil {
			buildErr = err
			break
		}
		g.Go(func() error {
			o, err := Play(gctx, game, agents, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			stats.Add(o)
			if report != nil && stats.Games%ReportEvery == 0 {
				report(stats)
			}
			return nil
		})
	}
	err := g.Wait()
	if buildErr != nil {
		err = buildErr
	}
	return stats, err
}
