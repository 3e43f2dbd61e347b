package shobu

import (
	"fmt"
	"math/bits"
)

// Board holds, for each of the four sub-boards, one occupancy mask per
// player. It is a value type: assignment copies it, and every operation that
// changes a Board returns a new one.
//
// Sub-boards 0 and 1 are White's home pair, 2 and 3 Black's. The column of a
// sub-board (id % 2) is its color; a passive half-move and its active
// half-move are always played on sub-boards of different columns.
//
//	[2][3]
//	[0][1]
type Board [NumSubBoards][NumPlayers]uint16

// Layout lists occupied cells per sub-board and player.
type Layout [NumSubBoards][NumPlayers][]int

var initialBoard Board

func init() {
	var err error
	initialBoard, err = NewBoard(Layout{
		{{0, 1, 2, 3}, {12, 13, 14, 15}},
		{{0, 1, 2, 3}, {12, 13, 14, 15}},
		{{0, 1, 2, 3}, {12, 13, 14, 15}},
		{{0, 1, 2, 3}, {12, 13, 14, 15}},
	})
	if err != nil {
		panic(err)
	}
}

// InitialBoard returns the canonical starting layout.
func InitialBoard() Board {
	return initialBoard
}

// NewBoard builds a Board from a layout. It fails if a cell index is out of
// range or a cell is claimed by both players on the same sub-board.
func NewBoard(layout Layout) (Board, error) {
	var b Board
	for sub := range layout {
		for p := range layout[sub] {
			for _, i := range layout[sub][p] {
				c, err := CheckCell(i)
				if err != nil {
					return Board{}, err
				}
				if b.occupied(sub, c) {
					return Board{}, fmt.Errorf(
						"cell %v on sub-board %d is occupied twice", c, sub)
				}
				b[sub][p] |= c.bit()
			}
		}
	}
	return b, nil
}

// HomeBoards returns the ids of p's home pair.
func HomeBoards(p Player) [2]int {
	return [2]int{2 * int(p), 2*int(p) + 1}
}

// Column returns the color column of a sub-board.
func Column(sub int) int {
	return sub % 2
}

func (b Board) Owner(sub int, c Cell) (Player, error) {
	if err := CheckSubBoard(sub); err != nil {
		return NoPlayer, err
	}
	if _, err := CheckCell(int(c)); err != nil {
		return NoPlayer, err
	}
	return b.owner(sub, c), nil
}

// Stones returns p's occupied cells on a sub-board in ascending order.
func (b Board) Stones(sub int, p Player) ([]Cell, error) {
	if err := CheckSubBoard(sub); err != nil {
		return nil, err
	}
	if !p.IsValid() {
		return nil, fmt.Errorf("player %v is invalid", p)
	}
	return b.stones(sub, p), nil
}

func (b Board) Count(sub int, p Player) (int, error) {
	if err := CheckSubBoard(sub); err != nil {
		return 0, err
	}
	if !p.IsValid() {
		return 0, fmt.Errorf("player %v is invalid", p)
	}
	return bits.OnesCount16(b[sub][p]), nil
}

// Total counts p's stones over all sub-boards.
func (b Board) Total(p Player) int {
	if !p.IsValid() {
		return 0
	}
	var n int
	for sub := range b {
		n += bits.OnesCount16(b[sub][p])
	}
	return n
}

func (b Board) has(sub int, p Player, c Cell) bool {
	return b[sub][p]&c.bit() != 0
}

func (b Board) occupied(sub int, c Cell) bool {
	return (b[sub][White]|b[sub][Black])&c.bit() != 0
}

func (b Board) owner(sub int, c Cell) Player {
	switch {
	case b.has(sub, White, c):
		return White
	case b.has(sub, Black, c):
		return Black
	default:
		return NoPlayer
	}
}

func (b Board) stones(sub int, p Player) []Cell {
	mask := b[sub][p]
	cells := make([]Cell, 0, bits.OnesCount16(mask))
	for mask != 0 {
		i := bits.TrailingZeros16(mask)
		cells = append(cells, Cell(i))
		mask &= mask - 1
	}
	return cells
}

// move relocates p's stone on a sub-board. b is a copy, so the caller's
// Board is untouched.
func (b Board) move(sub int, p Player, from, to Cell) Board {
	b[sub][p] &^= from.bit()
	b[sub][p] |= to.bit()
	return b
}

func (b Board) remove(sub int, p Player, c Cell) Board {
	b[sub][p] &^= c.bit()
	return b
}
