package shobu

// dirSlot maps a Direction (offset -5..+5) to its index in Directions.
var dirSlot [11]int8

func init() {
	for i := range dirSlot {
		dirSlot[i] = -1
	}
	for i, d := range Directions {
		dirSlot[int(d)+5] = int8(i)
	}
}

// passiveCatalog lists, per (direction, length), the stones able to make
// that passive half-move on one sub-board.
type passiveCatalog [len(Directions)][MaxLength][]Cell

func (pc *passiveCatalog) sources(d Direction, length int) []Cell {
	return pc[dirSlot[int(d)+5]][length-1]
}

func (pc *passiveCatalog) isEmpty() bool {
	for i := range pc {
		for j := range pc[i] {
			if len(pc[i][j]) > 0 {
				return false
			}
		}
	}
	return true
}

// buildPassiveCatalog walks every stone of p on sub along every reachable
// direction, stopping at the first occupied cell: passive moves never push
// and never jump.
func buildPassiveCatalog(b Board, sub int, p Player) *passiveCatalog {
	pc := new(passiveCatalog)
	for _, s := range b.stones(sub, p) {
		for _, r := range Reachable(s) {
			slot := dirSlot[int(r.Dir)+5]
			for l := 1; l <= r.MaxLength; l++ {
				dst, _ := Step(s, r.Dir, l)
				if b.occupied(sub, dst) {
					break
				}
				pc[slot][l-1] = append(pc[slot][l-1], s)
			}
		}
	}
	return pc
}

// ComputeActions enumerates every legal action of p on b in a fixed order:
// passive sub-board, active sub-board, active stone, direction, length,
// passive stone.
func ComputeActions(b Board, p Player) []Action {
	if !p.IsValid() {
		return nil
	}
	opp := p.Opponent()
	var actions []Action
	for j, passive := range HomeBoards(p) {
		pc := buildPassiveCatalog(b, passive, p)
		if pc.isEmpty() {
			continue
		}
		for i := 0; i < 2; i++ {
			active := 2*i + (j+1)%2
			for _, stone := range b.stones(active, p) {
				for _, r := range Reachable(stone) {
					pushing := false
					for l := 1; l <= r.MaxLength; l++ {
						sources := pc.sources(r.Dir, l)
						if len(sources) == 0 {
							break
						}
						dst, _ := Step(stone, r.Dir, l)
						if b.has(active, p, dst) {
							break
						}
						if !pushing && b.has(active, opp, dst) {
							pushing = true
						}
						if pushing {
							beyond, onBoard := Step(dst, r.Dir, 1)
							if onBoard && dst.Adjacent(beyond) &&
								b.occupied(active, beyond) {
								break
							}
						}
						for _, src := range sources {
							actions = append(actions, Action{
								PassiveBoard: passive,
								PassiveStone: src,
								ActiveBoard:  active,
								ActiveStone:  stone,
								Direction:    r.Dir,
								Length:       l,
							})
						}
					}
				}
			}
		}
	}
	return actions
}
