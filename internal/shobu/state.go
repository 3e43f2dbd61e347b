package shobu

// State is an immutable game position. It caches the legal actions of the
// player to move, computed when the State is built.
type State struct {
	mover    Player
	utility  int
	board    Board
	actions  []Action
	boring   int
	ply      int
	pushed   bool
	captured bool
}

func newState(b Board, mover Player, boring, ply int, pushed, captured bool) *State {
	actions := ComputeActions(b, mover)
	return &State{
		mover:    mover,
		utility:  computeUtility(b, mover, actions),
		board:    b,
		actions:  actions[:len(actions):len(actions)],
		boring:   boring,
		ply:      ply,
		pushed:   pushed,
		captured: captured,
	}
}

// NewState builds a position from an arbitrary board. It is meant for
// analysis and tests; games start from Game.Initial.
func NewState(b Board, mover Player, boring int) (*State, error) {
	if !mover.IsValid() {
		return nil, newOutOfRangeError("player", int(mover), NumPlayers)
	}
	for sub := range b {
		if b[sub][White]&b[sub][Black] != 0 {
			return nil, newOverlapError(sub)
		}
	}
	if boring < 0 {
		boring = 0
	}
	return newState(b, mover, boring, 0, false, false), nil
}

// computeUtility scores a board from White's point of view. A mover
// without legal actions loses; otherwise a player with an empty sub-board
// loses, whoever is to move.
func computeUtility(b Board, mover Player, actions []Action) int {
	if len(actions) == 0 {
		if mover == White {
			return -1
		}
		return 1
	}
	for sub := range b {
		if b[sub][White] == 0 {
			return -1
		}
		if b[sub][Black] == 0 {
			return 1
		}
	}
	return 0
}

// push describes an opponent stone displaced by an active half-move.
type push struct {
	from, to Cell
	captured bool
}

// findPush re-derives from b the opponent stone in the path of the active
// half-move of a, if any.
func findPush(b Board, mover Player, a Action) (push, bool) {
	opp := mover.Opponent()
	for l := 1; l <= a.Length; l++ {
		c, ok := Step(a.ActiveStone, a.Direction, l)
		if !ok {
			break
		}
		if b.has(a.ActiveBoard, opp, c) {
			end := a.ActiveTarget()
			to, onBoard := Step(end, a.Direction, 1)
			if !onBoard || !end.Adjacent(to) {
				return push{from: c, to: InvalidCell, captured: true}, true
			}
			return push{from: c, to: to}, true
		}
	}
	return push{}, false
}

// apply plays a on the board of s. The returned Board is a fresh copy.
func apply(b Board, mover Player, a Action) (next Board, pushed, captured bool) {
	next = b.move(a.PassiveBoard, mover, a.PassiveStone, a.PassiveTarget())
	p, pushed := findPush(b, mover, a)
	next = next.move(a.ActiveBoard, mover, a.ActiveStone, a.ActiveTarget())
	if pushed {
		opp := mover.Opponent()
		if p.captured {
			next = next.remove(a.ActiveBoard, opp, p.from)
		} else {
			next = next.move(a.ActiveBoard, opp, p.from, p.to)
		}
	}
	return next, pushed, p.captured
}

func (s *State) Mover() Player {
	return s.mover
}

func (s *State) Board() Board {
	return s.board
}

// Utility is the raw outcome from White's point of view: 1, -1, or 0 while
// undecided or drawn.
func (s *State) Utility() int {
	return s.utility
}

// Actions returns a copy of the cached legal actions.
func (s *State) Actions() []Action {
	a := make([]Action, len(s.actions))
	copy(a, s.actions)
	return a
}

func (s *State) NumActions() int {
	return len(s.actions)
}

// Action returns the i-th cached legal action.
func (s *State) Action(i int) Action {
	return s.actions[i]
}

// BoringCount is the number of consecutive plies without a push.
func (s *State) BoringCount() int {
	return s.boring
}

// Ply is the number of actions applied since the state passed to the Game.
func (s *State) Ply() int {
	return s.ply
}

// Pushed reports whether the action leading here displaced a stone.
func (s *State) Pushed() bool {
	return s.pushed
}

// Captured reports whether the action leading here pushed a stone off its
// sub-board.
func (s *State) Captured() bool {
	return s.captured
}

// Winner returns the winning player, or NoPlayer while undecided or drawn.
func (s *State) Winner() Player {
	switch {
	case s.utility > 0:
		return White
	case s.utility < 0:
		return Black
	default:
		return NoPlayer
	}
}
