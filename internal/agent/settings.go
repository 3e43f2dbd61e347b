package agent

import (
	"math"
	"math/rand"
	"runtime"
	"time"
)

type Settings struct {
	// Seed for the agents' random sources; 0 seeds from the clock.
	Seed int64 `json:"seed,omitempty"`
	// Share of the remaining clock a search may spend on one action.
	TimeFraction float64 `json:"time_fraction,omitempty"`

	MctsTimeLimit     time.Duration `json:"mcts_time_limit,omitempty"`
	MctsMaxIterations int           `json:"mcts_max_iterations,omitempty"`
	UctCmpThold       float64       `json:"uct_cmp_thold,omitempty"`
	UctParamC         float64       `json:"uct_param_c,omitempty"`
	RolloutWorkers    int           `json:"rollout_workers,omitempty"`
	RolloutsPerLeaf   int           `json:"rollouts_per_leaf,omitempty"`
	RolloutPlyCap     int           `json:"rollout_ply_cap,omitempty"`

	AlphaBetaDepth     int           `json:"alphabeta_depth,omitempty"`
	AlphaBetaTimeLimit time.Duration `json:"alphabeta_time_limit,omitempty"`
	TTMaxEntries       int           `json:"tt_max_entries,omitempty"`
}

func NewSettings() *Settings {
	return &Settings{
		TimeFraction:       0.05,
		MctsTimeLimit:      time.Second * 5,
		UctCmpThold:        1e-4,
		UctParamC:          math.Sqrt2,
		RolloutWorkers:     runtime.NumCPU(),
		RolloutsPerLeaf:    4,
		RolloutPlyCap:      400,
		AlphaBetaDepth:     3,
		AlphaBetaTimeLimit: time.Second * 5,
		TTMaxEntries:       1 << 20,
	}
}

func (s *Settings) newRand() *rand.Rand {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
