// Package match runs Shobu matches between agents: clocks, move cap,
// action records, replays and multi-game statistics.
package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/agent"
	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/record"
	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

// DefaultMoveCap aborts matches that neither finish nor stall.
const DefaultMoveCap int = 10000

type Reason int8

const (
	Elimination Reason = iota + 1
	NoMoves
	BoringDraw
	TimeForfeit
	MoveCapReached
	Aborted
)

var reasonStrings = [...]string{
	"unknown",
	"elimination",
	"no moves",
	"boring draw",
	"time forfeit",
	"move cap",
	"aborted",
}

func (r Reason) String() string {
	if r < Elimination || r > Aborted {
		return reasonStrings[0]
	}
	return reasonStrings[r]
}

type Outcome struct {
	Winner shobu.Player
	Reason Reason
	Plies  int
	Final  *shobu.State
	// Remaining clock per player; meaningless without a clock.
	Remaining [shobu.NumPlayers]time.Duration
	Entries   []record.Entry
}

func (o *Outcome) IsDraw() bool {
	return o.Winner == shobu.NoPlayer
}

func (o *Outcome) String() string {
	if o.IsDraw() {
		return fmt.Sprintf("draw (%v) after %d plies", o.Reason, o.Plies)
	}
	return fmt.Sprintf("%v wins (%v) after %d plies", o.Winner, o.Reason, o.Plies)
}

type Options struct {
	// Clock of each player; 0 disables the clock.
	PlayTime time.Duration
	// Maximum number of plies; 0 selects DefaultMoveCap.
	MoveCap int
	// OnPly is called after every applied action with the new state.
	OnPly  func(s *shobu.State, a shobu.Action)
	Logger *log.Logger
}

func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// Play runs one match from the initial position. agents[shobu.White] moves
// first. Running out of clock loses the match; the late action is not
// applied. The outcome is returned even with an error, with the actions
// applied so far, so that the record can be saved.
func Play(ctx context.Context, game *shobu.Game,
	agents [shobu.NumPlayers]agent.Agent, opts Options) (*Outcome, error) {
	if game == nil {
		panic(errors.New("game is nil"))
	}
	for p, a := range agents {
		if a == nil {
			panic(fmt.Errorf("agent of %v is nil", shobu.Player(p)))
		}
	}
	logger := opts.logger()
	moveCap := opts.MoveCap
	if moveCap <= 0 {
		moveCap = DefaultMoveCap
	}
	s := game.Initial()
	o := &Outcome{Winner: shobu.NoPlayer}
	o.Remaining[shobu.White] = opts.PlayTime
	o.Remaining[shobu.Black] = opts.PlayTime
	finish := func(winner shobu.Player, reason Reason) *Outcome {
		o.Winner, o.Reason, o.Final = winner, reason, s
		o.Plies = s.Ply()
		logger.Printf("[match] %v", o)
		return o
	}

	for !game.IsTerminal(s) {
		if s.Ply() >= moveCap {
			o.Entries = append(o.Entries, record.Entry{Empty: true})
			return finish(shobu.NoPlayer, MoveCapReached), nil
		}
		mover := game.ToMove(s)
		startTime := time.Now()
		a, err := agents[mover].Play(ctx, s, o.Remaining[mover])
		elapsed := time.Since(startTime)
		if opts.PlayTime > 0 {
			o.Remaining[mover] -= elapsed
		}
		if err != nil {
			o.Entries = append(o.Entries, record.Entry{Empty: true})
			finish(shobu.NoPlayer, Aborted)
			if errors.Is(err, agent.ErrQuit) {
				return o, nil
			}
			return o, fmt.Errorf("%v at ply %d: %w", mover, s.Ply(), err)
		}
		if opts.PlayTime > 0 && o.Remaining[mover] <= 0 {
			logger.Printf("[match] %v ran out of time at ply %d", mover, s.Ply())
			return finish(mover.Opponent(), TimeForfeit), nil
		}
		next, err := game.Result(s, a)
		if err != nil {
			finish(shobu.NoPlayer, Aborted)
			return o, fmt.Errorf("%v at ply %d: %w", mover, s.Ply(), err)
		}
		o.Entries = append(o.Entries, record.NewEntry(s.Ply(), a))
		logger.Printf("[match] ply %d %v: %v (%v)", s.Ply(), mover, a, elapsed)
		s = next
		if opts.OnPly != nil {
			opts.OnPly(s, a)
		}
	}

	switch {
	case s.Winner() == shobu.NoPlayer:
		return finish(shobu.NoPlayer, BoringDraw), nil
	case s.NumActions() == 0:
		return finish(s.Winner(), NoMoves), nil
	default:
		return finish(s.Winner(), Elimination), nil
	}
}

// Replay re-applies recorded actions from the initial position. Entries
// whose move number is at least from are passed to onState, each followed
// by a pause of delay; earlier ones are applied silently.
func Replay(ctx context.Context, game *shobu.Game, entries []record.Entry,
	from int, delay time.Duration,
	onState func(s *shobu.State, a shobu.Action)) (*shobu.State, error) {
	s := game.Initial()
	for _, e := range entries {
		if e.Empty {
			continue
		}
		next, err := game.Result(s, e.Action)
		if err != nil {
			return s, fmt.Errorf("move %d: %w", e.Move, err)
		}
		s = next
		if e.Move < from {
			continue
		}
		if onState != nil {
			onState(s, e.Action)
		}
		if delay > 0 {
			select {
			case <-ctx.Done():
				return s, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return s, nil
}
