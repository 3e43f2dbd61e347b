package shobu

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Cell ∈ [0, 15], row-major from the bottom-left corner.
type Cell int8

const InvalidCell Cell = -1

func NewCell(row, col int) (Cell, error) {
	if row < 0 || row >= BoardSide {
		return InvalidCell, newOutOfRangeError("row", row, BoardSide)
	}
	if col < 0 || col >= BoardSide {
		return InvalidCell, newOutOfRangeError("column", col, BoardSide)
	}
	return Cell(row*BoardSide + col), nil
}

// CheckCell reports an *OutOfRangeError if i is not a cell index.
func CheckCell(i int) (Cell, error) {
	if i < 0 || i >= NumCells {
		return InvalidCell, newOutOfRangeError("cell", i, NumCells)
	}
	return Cell(i), nil
}

// CheckSubBoard reports an *OutOfRangeError if id is not a sub-board id.
func CheckSubBoard(id int) error {
	if id < 0 || id >= NumSubBoards {
		return newOutOfRangeError("sub-board", id, NumSubBoards)
	}
	return nil
}

// ParseCell accepts a plain index ("0" to "15") or a column letter followed
// by a row number ("a1" is cell 0, "d4" is cell 15).
func ParseCell(s string) (Cell, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return InvalidCell, fmt.Errorf("cell %q is unknown", s)
	}
	if i, err := strconv.Atoi(s); err == nil {
		return CheckCell(i)
	}
	r, w := utf8.DecodeRuneInString(s)
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return InvalidCell, fmt.Errorf("cell %q is unknown", s)
	}
	row, err := strconv.Atoi(s[w:])
	if err != nil {
		return InvalidCell, fmt.Errorf("cell %q is unknown", s)
	}
	return NewCell(row-1, int(r-'a'))
}

func (c Cell) IsValid() bool {
	return c >= 0 && int(c) < NumCells
}

func (c Cell) Row() int {
	if !c.IsValid() {
		return -1
	}
	return int(c) / BoardSide
}

func (c Cell) Col() int {
	if !c.IsValid() {
		return -1
	}
	return int(c) % BoardSide
}

func (c Cell) String() string {
	if !c.IsValid() {
		return "<invalid cell>"
	}
	return fmt.Sprintf("%c%d", 'a'+c.Col(), c.Row()+1)
}

func (c Cell) bit() uint16 {
	return 1 << uint(c)
}

// Adjacent reports whether c and o differ by at most one row and at most
// one column. It is the wrap guard for every step taken on a sub-board.
func (c Cell) Adjacent(o Cell) bool {
	if !c.IsValid() || !o.IsValid() {
		return false
	}
	return abs(c.Row()-o.Row()) <= 1 && abs(c.Col()-o.Col()) <= 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
