package record

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

func TestEncode(t *testing.T) {
	e := NewEntry(3, shobu.Action{PassiveBoard: 0, PassiveStone: 1,
		ActiveBoard: 1, ActiveStone: 6, Direction: shobu.DownRight, Length: 2})
	if got := Encode(e); got != "3:0:1:1:6:-3:2" {
		t.Errorf("Encode = %q", got)
	}
	if got := Encode(Entry{Empty: true}); got != "" {
		t.Errorf("empty entry encoded as %q", got)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := []string{
		"1:0:1:1:6:1",
		"1:0:1:1:6:1:1:1",
		"x:0:1:1:6:1:1",
		"-1:0:1:1:6:1:1",
		"1:4:1:1:6:1:1",
		"1:0:16:1:6:1:1",
		"1:0:1:1:6:2:1",
		"1:0:1:1:6:1:3",
		"1:0:1:1:6:1:0",
	}
	for _, c := range cases {
		if _, err := Decode(c); err == nil {
			t.Errorf("Decode(%q) should fail", c)
		}
	}
	if _, err := Decode("1:0:1:9:6:1:1"); !errors.Is(err, shobu.ErrOutOfRange) {
		t.Errorf("sub-board 9: %v", err)
	}
}

func TestReplayRandomGame(t *testing.T) {
	g := shobu.NewGame(0)
	s := g.Initial()
	var entries []Entry
	for i := 0; i < 40 && !g.IsTerminal(s); i++ {
		a := s.Action((i * 7) % s.NumActions())
		entries = append(entries, NewEntry(i, a))
		next, err := g.Result(s, a)
		if err != nil {
			t.Fatal(err)
		}
		s = next
	}
	entries = append(entries, Entry{Empty: true})

	name := filepath.Join(t.TempDir(), "game.log")
	if err := WriteFile(name, entries); err != nil {
		t.Fatal(err)
	}
	decoded, err := ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(entries) {
		t.Fatalf("%d entries read, %d written", len(decoded), len(entries))
	}
	replayed := g.Initial()
	for i, e := range decoded {
		if e != entries[i] {
			t.Fatalf("entry %d: %+v != %+v", i, e, entries[i])
		}
		if e.Empty {
			continue
		}
		replayed, err = g.Result(replayed, e.Action)
		if err != nil {
			t.Fatal(err)
		}
	}
	if replayed.Board() != s.Board() {
		t.Error("replay reached a different position")
	}
}

func TestReadReportsLine(t *testing.T) {
	_, err := Read(strings.NewReader("0:0:0:1:0:4:1\nbroken\n"))
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want *SyntaxError", err)
	}
	if se.Line != 2 {
		t.Errorf("line %d, want 2", se.Line)
	}
	var buf bytes.Buffer
	if err := Write(&buf, []Entry{NewEntry(0, shobu.Action{ActiveBoard: 1,
		Direction: shobu.Up, Length: 1})}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "0:0:0:1:0:4:1\n" {
		t.Errorf("Write = %q", buf.String())
	}
}
