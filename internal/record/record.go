// Package record reads and writes match logs: one applied action per line,
// as seven colon-separated integers
//
//	move:passiveBoard:passiveStone:activeBoard:activeStone:direction:length
//
// An empty line stands for "no action" and closes an aborted match.
package record

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

const numFields = 7

type Entry struct {
	Move   int
	Action shobu.Action
	Empty  bool
}

type SyntaxError struct {
	Line int
	Text string
	Err  error
}

func (se *SyntaxError) Error() string {
	return fmt.Sprintf("record line %d %q: %v", se.Line, se.Text, se.Err)
}

func (se *SyntaxError) Unwrap() error {
	return se.Err
}

func NewEntry(move int, a shobu.Action) Entry {
	return Entry{Move: move, Action: a}
}

func Encode(e Entry) string {
	if e.Empty {
		return ""
	}
	a := e.Action
	return fmt.Sprintf("%d:%d:%d:%d:%d:%d:%d", e.Move,
		a.PassiveBoard, a.PassiveStone, a.ActiveBoard, a.ActiveStone,
		a.Direction, a.Length)
}

// Decode parses one line. Field ranges are checked; whether the action is
// legal is left to the engine on replay.
func Decode(line string) (Entry, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{Empty: true}, nil
	}
	parts := strings.Split(line, ":")
	if len(parts) != numFields {
		return Entry{}, fmt.Errorf("%d fields, want %d", len(parts), numFields)
	}
	var v [numFields]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Entry{}, err
		}
		v[i] = n
	}
	if v[0] < 0 {
		return Entry{}, fmt.Errorf("move number %d is negative", v[0])
	}
	if err := shobu.CheckSubBoard(v[1]); err != nil {
		return Entry{}, err
	}
	passive, err := shobu.CheckCell(v[2])
	if err != nil {
		return Entry{}, err
	}
	if err = shobu.CheckSubBoard(v[3]); err != nil {
		return Entry{}, err
	}
	active, err := shobu.CheckCell(v[4])
	if err != nil {
		return Entry{}, err
	}
	dir, err := shobu.ParseDirection(v[5])
	if err != nil {
		return Entry{}, err
	}
	if v[6] < 1 || v[6] > shobu.MaxLength {
		return Entry{}, fmt.Errorf("length %d is out of range(1-%d)",
			v[6], shobu.MaxLength)
	}
	return Entry{
		Move: v[0],
		Action: shobu.Action{
			PassiveBoard: v[1],
			PassiveStone: passive,
			ActiveBoard:  v[3],
			ActiveStone:  active,
			Direction:    dir,
			Length:       v[6],
		},
	}, nil
}

func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(Encode(e)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		e, err := Decode(scanner.Text())
		if err != nil {
			return entries, &SyntaxError{Line: n, Text: scanner.Text(), Err: err}
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}

func WriteFile(name string, entries []Entry) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = Write(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadFile(name string) ([]Entry, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
