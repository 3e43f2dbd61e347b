package agent

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

// RandomAgent plays a uniformly chosen legal action.
type RandomAgent struct {
	player shobu.Player
	rng    *rand.Rand
}

func NewRandom(player shobu.Player, rng *rand.Rand) *RandomAgent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomAgent{player: player, rng: rng}
}

func (ra *RandomAgent) Play(ctx context.Context, s *shobu.State,
	remaining time.Duration) (shobu.Action, error) {
	if err := ctx.Err(); err != nil {
		return shobu.Action{}, err
	}
	n := s.NumActions()
	if n == 0 {
		return shobu.Action{}, ErrNoAction
	}
	return s.Action(ra.rng.Intn(n)), nil
}

func (ra *RandomAgent) String() string {
	return fmt.Sprintf("random(%v)", ra.player)
}
