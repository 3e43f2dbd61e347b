package shobu

import "fmt"

// Action pairs a passive half-move and an active half-move that share the
// same direction and length.
type Action struct {
	PassiveBoard int
	PassiveStone Cell
	ActiveBoard  int
	ActiveStone  Cell
	Direction    Direction
	Length       int
}

// PassiveTarget returns where the passive stone lands.
func (a Action) PassiveTarget() Cell {
	c, _ := Step(a.PassiveStone, a.Direction, a.Length)
	return c
}

// ActiveTarget returns where the active stone lands.
func (a Action) ActiveTarget() Cell {
	c, _ := Step(a.ActiveStone, a.Direction, a.Length)
	return c
}

func (a Action) String() string {
	return fmt.Sprintf("passive %d:%v active %d:%v %v×%d",
		a.PassiveBoard, a.PassiveStone, a.ActiveBoard, a.ActiveStone,
		a.Direction, a.Length)
}
