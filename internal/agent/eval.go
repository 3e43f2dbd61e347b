package agent

import (
	"math"
	"math/bits"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

const (
	winScore      float64 = 10000
	materialScore float64 = 1
	weakestScore  float64 = 3
)

// Evaluate scores s for player. Decided states score ±winScore, drawn ones
// 0. Otherwise the score is the stone difference plus a bonus for the gap
// between the two players' weakest sub-boards, since emptying any one
// sub-board wins.
func Evaluate(game *shobu.Game, s *shobu.State, player shobu.Player) float64 {
	if game.IsTerminal(s) {
		u, err := game.Utility(s, player)
		if err != nil {
			return 0
		}
		return float64(u) * winScore
	}
	b := s.Board()
	opp := player.Opponent()
	own, other := 0, 0
	minOwn, minOther := math.MaxInt, math.MaxInt
	for sub := range b {
		n := bits.OnesCount16(b[sub][player])
		m := bits.OnesCount16(b[sub][opp])
		own += n
		other += m
		if n < minOwn {
			minOwn = n
		}
		if m < minOther {
			minOther = m
		}
	}
	return materialScore*float64(own-other) +
		weakestScore*float64(minOwn-minOther)
}
