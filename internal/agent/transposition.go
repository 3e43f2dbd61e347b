package agent

import "github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"

const (
	// Flags
	exactFlag int8 = iota
	lowerFlag
	upperFlag
)

type ttKey struct {
	board  shobu.Board
	mover  shobu.Player
	boring int
}

type ttEntry struct {
	depth int
	score float64
	flag  int8
	best  int
}

// transTable caches search results by position. Boards are plain values,
// so the position itself is the key and no hashing is needed.
type transTable struct {
	entries    map[ttKey]ttEntry
	maxEntries int
}

func newTransTable(maxEntries int) *transTable {
	if maxEntries <= 0 {
		maxEntries = 1 << 20
	}
	return &transTable{entries: make(map[ttKey]ttEntry), maxEntries: maxEntries}
}

func keyOf(s *shobu.State) ttKey {
	return ttKey{board: s.Board(), mover: s.Mover(), boring: s.BoringCount()}
}

func (tt *transTable) probe(s *shobu.State) (ttEntry, bool) {
	e, ok := tt.entries[keyOf(s)]
	return e, ok
}

// usable reports whether e answers a search of the given depth and window.
func (e ttEntry) usable(depth int, alpha, beta float64) (float64, bool) {
	if e.depth < depth {
		return 0, false
	}
	switch e.flag {
	case exactFlag:
		return e.score, true
	case lowerFlag:
		if e.score >= beta {
			return e.score, true
		}
	case upperFlag:
		if e.score <= alpha {
			return e.score, true
		}
	}
	return 0, false
}

func (tt *transTable) store(s *shobu.State, e ttEntry) {
	if len(tt.entries) >= tt.maxEntries {
		tt.clear()
	}
	key := keyOf(s)
	if old, ok := tt.entries[key]; ok && old.depth > e.depth {
		return
	}
	tt.entries[key] = e
}

func (tt *transTable) clear() {
	tt.entries = make(map[ttKey]ttEntry)
}

func (tt *transTable) size() int {
	return len(tt.entries)
}
