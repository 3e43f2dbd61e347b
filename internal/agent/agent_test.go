package agent

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
	"golang.org/x/exp/slices"
)

// White captures Black's last stone on sub-board 1 with
// (0:b1 → c1, 1:c2 → d2) and wins at once.
var winningAction = shobu.Action{PassiveBoard: 0, PassiveStone: 1,
	ActiveBoard: 1, ActiveStone: 6, Direction: shobu.Right, Length: 1}

func winInOne(t *testing.T) *shobu.State {
	t.Helper()
	b, err := shobu.NewBoard(shobu.Layout{
		{{1}, {12}},
		{{6}, {7}},
		{{0, 1}, {14, 15}},
		{{0, 1}, {14, 15}},
	})
	if err != nil {
		t.Fatal(err)
	}
	s, err := shobu.NewState(b, shobu.White, 0)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testSettings() *Settings {
	settings := NewSettings()
	settings.Seed = 1
	settings.RolloutWorkers = 2
	settings.RolloutsPerLeaf = 2
	settings.RolloutPlyCap = 100
	return settings
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Human, Random, AlphaBeta, MCTS} {
		if ParseKind(k.String()) != k {
			t.Errorf("ParseKind(%q) != %v", k.String(), k)
		}
	}
	if ParseKind("MCTS") != MCTS {
		t.Error("kinds are case-insensitive")
	}
	if k := ParseKind("minimax"); k.IsValid() || k.String() != "unknown" {
		t.Errorf("ParseKind(minimax) = %v", k)
	}
	if _, err := New(0, shobu.White, shobu.NewGame(0), nil); err == nil {
		t.Error("New accepted an unknown kind")
	}
}

func TestRandomPlaysLegalActions(t *testing.T) {
	g := shobu.NewGame(0)
	a := NewRandom(shobu.White, rand.New(rand.NewSource(1)))
	s := g.Initial()
	for i := 0; i < 30 && !g.IsTerminal(s); i++ {
		action, err := a.Play(context.Background(), s, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Contains(s.Actions(), action) {
			t.Fatalf("%v is not legal", action)
		}
		s, err = g.Result(s, action)
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestNoActionIsReported(t *testing.T) {
	b, err := shobu.NewBoard(shobu.Layout{
		{{0}, {1, 4, 5}},
		{{0}, {1, 4, 5}},
		{{0}, {15}},
		{{0}, {15}},
	})
	if err != nil {
		t.Fatal(err)
	}
	s, err := shobu.NewState(b, shobu.White, 0)
	if err != nil {
		t.Fatal(err)
	}
	g := shobu.NewGame(0)
	agents := []Agent{
		NewRandom(shobu.White, nil),
		NewAlphaBeta(shobu.White, g, testSettings()),
		NewMonteCarlo(shobu.White, g, testSettings()),
		NewHuman(shobu.White, g, strings.NewReader(""), io.Discard),
	}
	for _, a := range agents {
		if _, err := a.Play(context.Background(), s, 0); !errors.Is(err, ErrNoAction) {
			t.Errorf("%v: got %v, want ErrNoAction", a, err)
		}
	}
}

func TestEvaluate(t *testing.T) {
	g := shobu.NewGame(0)
	if v := Evaluate(g, g.Initial(), shobu.White); v != 0 {
		t.Errorf("initial evaluation %v", v)
	}
	s := winInOne(t)
	next, err := g.Result(s, winningAction)
	if err != nil {
		t.Fatal(err)
	}
	if v := Evaluate(g, next, shobu.White); v != winScore {
		t.Errorf("won state scores %v for the winner", v)
	}
	if v := Evaluate(g, next, shobu.Black); v != -winScore {
		t.Errorf("won state scores %v for the loser", v)
	}
}

func TestAlphaBetaFindsWinInOne(t *testing.T) {
	g := shobu.NewGame(0)
	settings := testSettings()
	settings.AlphaBetaDepth = 2
	ab := NewAlphaBeta(shobu.White, g, settings)
	a, err := ab.Play(context.Background(), winInOne(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	next, err := g.Result(winInOne(t), a)
	if err != nil {
		t.Fatal(err)
	}
	if next.Winner() != shobu.White {
		t.Errorf("played %v, which does not win", a)
	}
	t.Log("nodes:", ab.Nodes(), "tt entries:", ab.tt.size())
}

func TestAlphaBetaRejectsOtherPlayer(t *testing.T) {
	g := shobu.NewGame(0)
	ab := NewAlphaBeta(shobu.Black, g, testSettings())
	if _, err := ab.Play(context.Background(), g.Initial(), 0); err == nil {
		t.Error("Black's agent played for White")
	}
}

func TestAlphaBetaStopsOnCancel(t *testing.T) {
	g := shobu.NewGame(0)
	settings := testSettings()
	settings.AlphaBetaDepth = 8
	settings.AlphaBetaTimeLimit = time.Minute
	ab := NewAlphaBeta(shobu.White, g, settings)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := ab.Play(ctx, g.Initial(), 0)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want context.DeadlineExceeded", err)
	}
}

func TestAlphaBetaHonoursTimeBudget(t *testing.T) {
	g := shobu.NewGame(0)
	settings := testSettings()
	settings.AlphaBetaDepth = 8
	settings.AlphaBetaTimeLimit = 100 * time.Millisecond
	ab := NewAlphaBeta(shobu.White, g, settings)
	start := time.Now()
	a, err := ab.Play(context.Background(), g.Initial(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(g.Initial().Actions(), a) {
		t.Errorf("%v is not legal", a)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("search ran for %v", elapsed)
	}
}

func TestBudget(t *testing.T) {
	cases := []struct {
		limit, remaining time.Duration
		want             time.Duration
	}{
		{time.Second, 0, time.Second},
		{time.Second, time.Minute, time.Second},
		{time.Minute, 10 * time.Second, 500 * time.Millisecond},
		{0, 10 * time.Second, 500 * time.Millisecond},
	}
	for _, c := range cases {
		if got := budget(c.limit, c.remaining, 0.05); got != c.want {
			t.Errorf("budget(%v, %v) = %v, want %v", c.limit, c.remaining, got, c.want)
		}
	}
}

func TestHumanReadsUntilLegal(t *testing.T) {
	g := shobu.NewGame(0)
	input := strings.Join([]string{
		"",
		"nonsense",
		"0 b1 1 b1 right 1",
		"0 a1 1 a1 up 1",
	}, "\n")
	var out strings.Builder
	h := NewHuman(shobu.White, g, strings.NewReader(input), &out)
	a, err := h.Play(context.Background(), g.Initial(), 0)
	if err != nil {
		t.Fatal(err)
	}
	want := shobu.Action{PassiveBoard: 0, PassiveStone: 0, ActiveBoard: 1,
		ActiveStone: 0, Direction: shobu.Up, Length: 1}
	if a != want {
		t.Errorf("got %v, want %v", a, want)
	}
	if !strings.Contains(out.String(), "is illegal") {
		t.Errorf("illegal input not reported:\n%s", out.String())
	}
}

func TestHumanQuit(t *testing.T) {
	g := shobu.NewGame(0)
	h := NewHuman(shobu.White, g, strings.NewReader("quit\n"), io.Discard)
	if _, err := h.Play(context.Background(), g.Initial(), 0); !errors.Is(err, ErrQuit) {
		t.Errorf("got %v, want ErrQuit", err)
	}
	h = NewHuman(shobu.White, g, strings.NewReader(""), io.Discard)
	if _, err := h.Play(context.Background(), g.Initial(), 0); !errors.Is(err, io.EOF) {
		t.Errorf("got %v, want io.EOF", err)
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("2 15 1 d4 -5 2")
	if err != nil {
		t.Fatal(err)
	}
	want := shobu.Action{PassiveBoard: 2, PassiveStone: 15, ActiveBoard: 1,
		ActiveStone: 15, Direction: shobu.DownLeft, Length: 2}
	if a != want {
		t.Errorf("got %v, want %v", a, want)
	}
	for _, s := range []string{"2 15 1 15 -5", "4 0 1 0 4 1", "0 0 1 0 7 1", "0 0 1 0 up x"} {
		if _, err := ParseAction(s); err == nil {
			t.Errorf("ParseAction(%q) should fail", s)
		}
	}
}
