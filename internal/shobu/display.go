package shobu

import "strings"

type Glyphs struct {
	Empty string
	White string
	Black string
}

var DefaultGlyphs = Glyphs{Empty: ".", White: "W", Black: "B"}

// Format draws Black's home pair above White's, each sub-board with its
// top row first:
//
//	BBBB   BBBB
//	....   ....
//	....   ....
//	WWWW   WWWW
//
//	-----------
//
//	BBBB   BBBB
//	....   ....
//	....   ....
//	WWWW   WWWW
func (b Board) Format(g Glyphs) string {
	if g.Empty == "" {
		g.Empty = DefaultGlyphs.Empty
	}
	if g.White == "" {
		g.White = DefaultGlyphs.White
	}
	if g.Black == "" {
		g.Black = DefaultGlyphs.Black
	}
	var builder strings.Builder
	writeRow := func(sub, row int) {
		for col := 0; col < BoardSide; col++ {
			c := Cell(row*BoardSide + col)
			switch b.owner(sub, c) {
			case White:
				builder.WriteString(g.White)
			case Black:
				builder.WriteString(g.Black)
			default:
				builder.WriteString(g.Empty)
			}
		}
	}
	writePair := func(left, right int) {
		for row := BoardSide - 1; row >= 0; row-- {
			writeRow(left, row)
			builder.WriteString("   ")
			writeRow(right, row)
			builder.WriteByte('\n')
		}
	}
	writePair(2, 3)
	builder.WriteByte('\n')
	builder.WriteString(strings.Repeat("-", 2*BoardSide+3))
	builder.WriteString("\n\n")
	writePair(0, 1)
	return builder.String()
}

func (b Board) String() string {
	return b.Format(DefaultGlyphs)
}
