package shobu

// BoardSide is the side length of one sub-board.
const BoardSide int = 4

const (
	NumCells     int = BoardSide * BoardSide
	NumSubBoards int = 4
	NumPlayers   int = 2
)

// MaxLength bounds any straight-line move on a 4×4 grid.
const MaxLength int = BoardSide / 2

// DefaultMaxBoringActions is the number of consecutive non-pushing plies
// after which the game is drawn.
const DefaultMaxBoringActions int = 50
