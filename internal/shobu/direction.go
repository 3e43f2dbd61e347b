package shobu

import "fmt"

// Direction is the offset added to a cell index to move one step.
type Direction int8

const (
	UpLeft    Direction = +3
	Up        Direction = +4
	UpRight   Direction = +5
	Left      Direction = -1
	Right     Direction = +1
	DownLeft  Direction = -5
	Down      Direction = -4
	DownRight Direction = -3
)

// Directions lists every direction in generation order.
var Directions = [...]Direction{
	UpLeft, Up, UpRight, Left, Right, DownLeft, Down, DownRight,
}

func ParseDirection(d int) (Direction, error) {
	for _, dir := range Directions {
		if int(dir) == d {
			return dir, nil
		}
	}
	return 0, fmt.Errorf("direction %d is unknown", d)
}

func (d Direction) IsValid() bool {
	dr, dc := d.Delta()
	return dr != 0 || dc != 0
}

// Delta returns the row and column offsets of one step.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case UpLeft:
		return 1, -1
	case Up:
		return 1, 0
	case UpRight:
		return 1, 1
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case DownLeft:
		return -1, -1
	case Down:
		return -1, 0
	case DownRight:
		return -1, 1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case UpLeft:
		return "up-left"
	case Up:
		return "up"
	case UpRight:
		return "up-right"
	case Left:
		return "left"
	case Right:
		return "right"
	case DownLeft:
		return "down-left"
	case Down:
		return "down"
	case DownRight:
		return "down-right"
	default:
		return fmt.Sprintf("<invalid direction %d>", int8(d))
	}
}

// Step walks n steps from c in direction d using row/column arithmetic.
// ok is false when the destination leaves the sub-board.
func Step(c Cell, d Direction, n int) (dst Cell, ok bool) {
	if !c.IsValid() || !d.IsValid() {
		return InvalidCell, false
	}
	dr, dc := d.Delta()
	row, col := c.Row()+dr*n, c.Col()+dc*n
	if row < 0 || row >= BoardSide || col < 0 || col >= BoardSide {
		return InvalidCell, false
	}
	return Cell(row*BoardSide + col), true
}

// Reach is one entry of the reachability table: a stone can travel up to
// MaxLength steps in Dir without leaving the sub-board.
type Reach struct {
	Dir       Direction
	MaxLength int
}

var reachTable [NumCells][]Reach

func init() {
	for i := 0; i < NumCells; i++ {
		c := Cell(i)
		for _, d := range Directions {
			n := 0
			for n < MaxLength {
				if _, ok := Step(c, d, n+1); !ok {
					break
				}
				n++
			}
			if n > 0 {
				reachTable[i] = append(reachTable[i], Reach{Dir: d, MaxLength: n})
			}
		}
	}
}

// Reachable returns the reachability entries of c, in generation order.
// The returned slice is shared and must not be modified.
func Reachable(c Cell) []Reach {
	if !c.IsValid() {
		return nil
	}
	return reachTable[c]
}

// MaxSteps returns how far a stone on c may travel in direction d.
func MaxSteps(c Cell, d Direction) int {
	for _, r := range Reachable(c) {
		if r.Dir == d {
			return r.MaxLength
		}
	}
	return 0
}
