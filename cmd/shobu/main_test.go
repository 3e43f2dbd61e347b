package main

import (
	"errors"
	"testing"
	"time"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/agent"
	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/match"
)

func TestRecoverToError(t *testing.T) {
	want := errors.New("boom")
	if err := recoverToError(func() error { panic(want) }); !errors.Is(err, want) {
		t.Errorf("got %v", err)
	}
	if err := recoverToError(func() error { panic("text") }); err == nil {
		t.Error("non-error panic was swallowed")
	}
	if err := recoverToError(func() error { return nil }); err != nil {
		t.Error(err)
	}
}

func TestApplyFlags(t *testing.T) {
	settings := match.NewSettings()
	opts := &options{white: "mcts", playTime: 30, games: 1, parallel: 4}
	if err := applyFlags(settings, opts); err != nil {
		t.Fatal(err)
	}
	m := settings.Match
	if m.White != agent.MCTS || m.Black != agent.Random {
		t.Errorf("players %v/%v", m.White, m.Black)
	}
	if m.PlayTime != 30*time.Second || m.Parallel != 4 {
		t.Errorf("match settings %+v", m)
	}
	if err := applyFlags(match.NewSettings(), &options{black: "minimax", games: 1}); err == nil {
		t.Error("unknown player accepted")
	}
	if err := applyFlags(match.NewSettings(), &options{games: 0}); err == nil {
		t.Error("zero games accepted")
	}
}
