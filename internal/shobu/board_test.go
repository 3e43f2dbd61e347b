package shobu

import (
	"errors"
	"testing"
)

func mustBoard(t *testing.T, layout Layout) Board {
	t.Helper()
	b, err := NewBoard(layout)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestNewBoardRejectsOverlap(t *testing.T) {
	_, err := NewBoard(Layout{{{1}, {1}}})
	if err == nil {
		t.Fatal("a cell held by both players should be rejected")
	}
	_, err = NewBoard(Layout{{{16}, nil}})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
}

func TestInitialBoard(t *testing.T) {
	b := InitialBoard()
	for sub := 0; sub < NumSubBoards; sub++ {
		white, err := b.Stones(sub, White)
		if err != nil {
			t.Fatal(err)
		}
		black, err := b.Stones(sub, Black)
		if err != nil {
			t.Fatal(err)
		}
		for i, c := range white {
			if c != Cell(i) {
				t.Errorf("sub-board %d: white stones %v", sub, white)
				break
			}
		}
		for i, c := range black {
			if c != Cell(12+i) {
				t.Errorf("sub-board %d: black stones %v", sub, black)
				break
			}
		}
	}
	if b.Total(White) != 16 || b.Total(Black) != 16 {
		t.Errorf("totals %d/%d", b.Total(White), b.Total(Black))
	}
}

func TestBoardAccessorsOutOfRange(t *testing.T) {
	b := InitialBoard()
	if _, err := b.Stones(4, White); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Stones(4): %v", err)
	}
	if _, err := b.Count(-1, Black); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Count(-1): %v", err)
	}
	if _, err := b.Owner(0, 16); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Owner(0, 16): %v", err)
	}
	p, err := b.Owner(2, 13)
	if err != nil {
		t.Fatal(err)
	}
	if p != Black {
		t.Errorf("Owner(2, 13) = %v", p)
	}
	p, err = b.Owner(1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if p != NoPlayer {
		t.Errorf("Owner(1, 7) = %v", p)
	}
}

func TestBoardIsAValue(t *testing.T) {
	b := InitialBoard()
	moved := b.move(0, White, 0, 4)
	if !b.has(0, White, 0) || b.has(0, White, 4) {
		t.Fatal("move changed the original board")
	}
	if moved.has(0, White, 0) || !moved.has(0, White, 4) {
		t.Fatal("move did not relocate the stone")
	}
	if InitialBoard() != b {
		t.Fatal("initial board was modified")
	}
}

func TestFormat(t *testing.T) {
	want := "BBBB   BBBB\n" +
		"....   ....\n" +
		"....   ....\n" +
		"WWWW   WWWW\n" +
		"\n" +
		"-----------\n" +
		"\n" +
		"BBBB   BBBB\n" +
		"....   ....\n" +
		"....   ....\n" +
		"WWWW   WWWW\n"
	if got := InitialBoard().String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	b := mustBoard(t, Layout{{{5}, {10}}})
	want = "----   ----\n" +
		"----   ----\n" +
		"----   ----\n" +
		"----   ----\n" +
		"\n" +
		"-----------\n" +
		"\n" +
		"----   ----\n" +
		"--x-   ----\n" +
		"-o--   ----\n" +
		"----   ----\n"
	if got := b.Format(Glyphs{Empty: "-", White: "o", Black: "x"}); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
