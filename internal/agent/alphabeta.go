package agent

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

var errSearchStopped = errors.New("search stopped")

// AlphaBetaAgent runs an iteratively deepened minimax search with
// alpha-beta pruning and a transposition table.
type AlphaBetaAgent struct {
	player   shobu.Player
	game     *shobu.Game
	settings *Settings
	tt       *transTable

	ctx      context.Context
	deadline time.Time
	nodes    uint64
}

func NewAlphaBeta(player shobu.Player, game *shobu.Game,
	settings *Settings) *AlphaBetaAgent {
	if game == nil {
		panic(errors.New("game is nil"))
	}
	if settings == nil {
		settings = NewSettings()
	}
	return &AlphaBetaAgent{
		player:   player,
		game:     game,
		settings: settings,
		tt:       newTransTable(settings.TTMaxEntries),
	}
}

func (ab *AlphaBetaAgent) Play(ctx context.Context, s *shobu.State,
	remaining time.Duration) (shobu.Action, error) {
	if s.NumActions() == 0 {
		return shobu.Action{}, ErrNoAction
	}
	if s.Mover() != ab.player {
		return shobu.Action{}, fmt.Errorf("%v asked to play for %v", ab, s.Mover())
	}
	ab.ctx = ctx
	ab.deadline = time.Now().Add(
		budget(ab.settings.AlphaBetaTimeLimit, remaining, ab.settings.TimeFraction))
	ab.nodes = 0

	maxDepth := ab.settings.AlphaBetaDepth
	if maxDepth < 1 {
		maxDepth = 1
	}
	best := 0
	for depth := 1; depth <= maxDepth; depth++ {
		_, idx, err := ab.value(s, math.Inf(-1), math.Inf(1), depth)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return shobu.Action{}, ctxErr
			}
			if errors.Is(err, errSearchStopped) {
				break
			}
			return shobu.Action{}, err
		}
		if idx >= 0 {
			best = idx
		}
		if time.Now().After(ab.deadline) {
			break
		}
	}
	return s.Action(best), nil
}

// Nodes returns the number of states visited by the last Play.
func (ab *AlphaBetaAgent) Nodes() uint64 {
	return ab.nodes
}

func (ab *AlphaBetaAgent) String() string {
	return fmt.Sprintf("alphabeta(%v)", ab.player)
}

func (ab *AlphaBetaAgent) tick() error {
	ab.nodes++
	if ab.nodes&1023 != 0 {
		return nil
	}
	if err := ab.ctx.Err(); err != nil {
		return err
	}
	if time.Now().After(ab.deadline) {
		return errSearchStopped
	}
	return nil
}

// value returns the minimax value of s for the agent's player and the index
// of the best action, or -1 at a leaf. The agent's player maximizes.
func (ab *AlphaBetaAgent) value(s *shobu.State, alpha, beta float64,
	depth int) (float64, int, error) {
	if err := ab.tick(); err != nil {
		return 0, -1, err
	}
	if depth == 0 || ab.game.IsTerminal(s) {
		return Evaluate(ab.game, s, ab.player), -1, nil
	}
	ttBest := -1
	if e, ok := ab.tt.probe(s); ok {
		if score, ok := e.usable(depth, alpha, beta); ok {
			return score, e.best, nil
		}
		ttBest = e.best
	}
	alphaOrig, betaOrig := alpha, beta
	maximizing := s.Mover() == ab.player
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	bestIdx := -1
	for _, i := range order(s.NumActions(), ttBest) {
		v, _, err := ab.value(ab.game.ResultAt(s, i), alpha, beta, depth-1)
		if err != nil {
			return 0, -1, err
		}
		if maximizing {
			if v > best || bestIdx < 0 {
				best, bestIdx = v, i
			}
			if best >= beta {
				break
			}
			alpha = math.Max(alpha, best)
		} else {
			if v < best || bestIdx < 0 {
				best, bestIdx = v, i
			}
			if best <= alpha {
				break
			}
			beta = math.Min(beta, best)
		}
	}
	flag := exactFlag
	switch {
	case best <= alphaOrig:
		flag = upperFlag
	case best >= betaOrig:
		flag = lowerFlag
	}
	ab.tt.store(s, ttEntry{depth: depth, score: best, flag: flag, best: bestIdx})
	return best, bestIdx, nil
}

// order lists action indices with first, if valid, moved to the front.
func order(n, first int) []int {
	idx := make([]int, 0, n)
	if first >= 0 && first < n {
		idx = append(idx, first)
	}
	for i := 0; i < n; i++ {
		if i != first {
			idx = append(idx, i)
		}
	}
	return idx
}
