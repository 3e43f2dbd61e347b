package shobu

import "golang.org/x/exp/slices"

// Game carries the rule parameters shared by every State of a match. It has
// no mutable state and may be used from many goroutines.
type Game struct {
	maxBoringActions int
	initial          *State
}

// NewGame returns a Game whose draw ceiling is maxBoringActions
// consecutive non-pushing plies. A non-positive value selects
// DefaultMaxBoringActions.
func NewGame(maxBoringActions int) *Game {
	if maxBoringActions <= 0 {
		maxBoringActions = DefaultMaxBoringActions
	}
	return &Game{
		maxBoringActions: maxBoringActions,
		initial:          newState(initialBoard, White, 0, 0, false, false),
	}
}

func (g *Game) MaxBoringActions() int {
	return g.maxBoringActions
}

// Initial returns the starting position: White to move, four stones per
// player on every sub-board.
func (g *Game) Initial() *State {
	return g.initial
}

func (g *Game) ToMove(s *State) Player {
	return s.mover
}

// Actions returns the legal actions cached in s.
func (g *Game) Actions(s *State) []Action {
	return s.Actions()
}

// Result applies a to s and returns the successor. s is left untouched.
// An action absent from the cached list yields an *InvalidActionError.
func (g *Game) Result(s *State, a Action) (*State, error) {
	if !slices.Contains(s.actions, a) {
		return nil, NewInvalidActionError(a)
	}
	return g.result(s, a), nil
}

func (g *Game) result(s *State, a Action) *State {
	b, pushed, captured := apply(s.board, s.mover, a)
	boring := s.boring + 1
	if pushed {
		boring = 0
	}
	return newState(b, s.mover.Opponent(), boring, s.ply+1, pushed, captured)
}

// ResultAt applies the i-th cached action of s. It skips the membership
// test of Result and is meant for search loops that index Actions.
func (g *Game) ResultAt(s *State, i int) *State {
	return g.result(s, s.actions[i])
}

// IsTerminal reports whether the game is over at s: decided, or drawn by
// reaching the non-pushing ceiling.
func (g *Game) IsTerminal(s *State) bool {
	return s.utility != 0 || s.boring >= g.maxBoringActions
}

// Utility returns the outcome of a terminal s for player.
func (g *Game) Utility(s *State, player Player) (int, error) {
	if !g.IsTerminal(s) {
		return 0, ErrNotTerminal
	}
	switch player {
	case White:
		return s.utility, nil
	case Black:
		return -s.utility, nil
	default:
		return 0, newOutOfRangeError("player", int(player), NumPlayers)
	}
}

// Display renders the four sub-boards with the default glyphs.
func (g *Game) Display(s *State) string {
	return s.board.Format(DefaultGlyphs)
}
