package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
	"golang.org/x/exp/slices"
)

// HumanAgent asks for actions on a line-oriented terminal.
type HumanAgent struct {
	player  shobu.Player
	game    *shobu.Game
	scanner *bufio.Scanner
	w       io.Writer
}

// NewHuman returns a HumanAgent reading from r and prompting on w; nil
// selects the standard input or output.
func NewHuman(player shobu.Player, game *shobu.Game, r io.Reader,
	w io.Writer) *HumanAgent {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &HumanAgent{
		player:  player,
		game:    game,
		scanner: bufio.NewScanner(r),
		w:       w,
	}
}

func (ha *HumanAgent) String() string {
	return "human(" + ha.player.String() + ")"
}

func (ha *HumanAgent) readLine() (string, error) {
	if ha.scanner.Scan() {
		return ha.scanner.Text(), nil
	}
	if err := ha.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (ha *HumanAgent) Play(ctx context.Context, s *shobu.State,
	remaining time.Duration) (shobu.Action, error) {
	if s.NumActions() == 0 {
		return shobu.Action{}, ErrNoAction
	}
	fmt.Fprintln(ha.w)
	fmt.Fprintln(ha.w, ha.game.Display(s))
	fmt.Fprint(ha.w, "Ply ", s.Ply()+1, " - ", ha.player,
		` to move. Enter "passiveBoard passiveCell activeBoard activeCell direction length"`,
		` (type "q" or "quit" to exit): `)
	for {
		if err := ctx.Err(); err != nil {
			return shobu.Action{}, err
		}
		input, err := ha.readLine()
		if err != nil {
			return shobu.Action{}, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		inputUpper := strings.ToUpper(input)
		if inputUpper == "Q" || inputUpper == "QUIT" {
			return shobu.Action{}, ErrQuit
		}
		a, err := ParseAction(input)
		if err != nil {
			fmt.Fprintln(ha.w, err)
			fmt.Fprint(ha.w, `Please input again(type "q" or "quit" to exit): `)
			continue
		}
		if !slices.Contains(s.Actions(), a) {
			fmt.Fprintln(ha.w, "Action", a, "is illegal.")
			fmt.Fprint(ha.w, `Please input again(type "q" or "quit" to exit): `)
			continue
		}
		return a, nil
	}
}

// ParseAction reads six whitespace-separated fields: passive sub-board,
// passive cell, active sub-board, active cell, direction, length. Cells are
// indices or names such as "b2"; the direction is an offset such as "-3"
// or a name such as "down-right".
func ParseAction(s string) (shobu.Action, error) {
	fields := strings.Fields(s)
	if len(fields) != 6 {
		return shobu.Action{}, fmt.Errorf("%d fields, want 6", len(fields))
	}
	var a shobu.Action
	var err error
	if a.PassiveBoard, err = parseSubBoard(fields[0]); err != nil {
		return shobu.Action{}, err
	}
	if a.PassiveStone, err = shobu.ParseCell(fields[1]); err != nil {
		return shobu.Action{}, err
	}
	if a.ActiveBoard, err = parseSubBoard(fields[2]); err != nil {
		return shobu.Action{}, err
	}
	if a.ActiveStone, err = shobu.ParseCell(fields[3]); err != nil {
		return shobu.Action{}, err
	}
	if a.Direction, err = parseDirection(fields[4]); err != nil {
		return shobu.Action{}, err
	}
	if a.Length, err = strconv.Atoi(fields[5]); err != nil {
		return shobu.Action{}, fmt.Errorf("length %q is unknown", fields[5])
	}
	return a, nil
}

func parseSubBoard(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("sub-board %q is unknown", s)
	}
	return id, shobu.CheckSubBoard(id)
}

func parseDirection(s string) (shobu.Direction, error) {
	if d, err := strconv.Atoi(s); err == nil {
		return shobu.ParseDirection(d)
	}
	for _, d := range shobu.Directions {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("direction %q is unknown", s)
}
