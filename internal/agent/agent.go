// Package agent provides players for a Shobu match. Every agent implements
// the same capability: choose an action for a state within a time budget.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

var (
	ErrNoAction = errors.New("no action available")
	ErrQuit     = errors.New("player quit")
)

type Agent interface {
	// Play returns the action to apply to s. remaining is what is left on
	// the player's clock; a non-positive value means no clock.
	Play(ctx context.Context, s *shobu.State, remaining time.Duration) (
		shobu.Action, error)
}

type Kind int8

const (
	Human Kind = iota + 1
	Random
	AlphaBeta
	MCTS
)

var kindStrings = [...]string{
	"unknown",
	"human",
	"random",
	"alphabeta",
	"mcts",
}

func ParseKind(s string) Kind {
	for i := range kindStrings {
		if strings.EqualFold(s, kindStrings[i]) {
			return Kind(i)
		}
	}
	return 0 // Stands for "unknown".
}

func (k Kind) IsValid() bool {
	return k >= Human && k <= MCTS
}

func (k Kind) String() string {
	if !k.IsValid() {
		return kindStrings[0]
	}
	return kindStrings[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}

// New builds an agent of the given kind playing player. A human agent
// talks on the process's standard input and output.
func New(kind Kind, player shobu.Player, game *shobu.Game,
	settings *Settings) (Agent, error) {
	if game == nil {
		panic(errors.New("game is nil"))
	}
	if !player.IsValid() {
		return nil, fmt.Errorf("player %v is invalid", player)
	}
	if settings == nil {
		settings = NewSettings()
	}
	switch kind {
	case Human:
		return NewHuman(player, game, nil, nil), nil
	case Random:
		return NewRandom(player, settings.newRand()), nil
	case AlphaBeta:
		return NewAlphaBeta(player, game, settings), nil
	case MCTS:
		return NewMonteCarlo(player, game, settings), nil
	default:
		return nil, fmt.Errorf("agent kind %q is unknown; valid: %v",
			kind, kindStrings[1:])
	}
}

// budget returns how long a search may run given the configured limit and
// the player's remaining clock.
func budget(limit, remaining time.Duration, fraction float64) time.Duration {
	if remaining <= 0 {
		return limit
	}
	share := time.Duration(float64(remaining) * fraction)
	if limit > 0 && limit < share {
		return limit
	}
	return share
}
