package shobu

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrOutOfRange    = errors.New("index out of range")
	ErrNotTerminal   = errors.New("state is not terminal")
)

type InvalidActionError struct {
	action Action
}

type OutOfRangeError struct {
	what  string
	index int
	limit int
}

func NewInvalidActionError(a Action) error {
	return &InvalidActionError{action: a}
}

func (iae *InvalidActionError) Error() string {
	return fmt.Sprintf("action %v is not legal in this state", iae.action)
}

func (iae *InvalidActionError) Action() Action {
	return iae.action
}

func (iae *InvalidActionError) Unwrap() error {
	return ErrInvalidAction
}

func newOutOfRangeError(what string, index, limit int) error {
	if index >= 0 && index < limit {
		panic(fmt.Errorf("%s %d is NOT out of range(0-%d), "+
			"but treat it as an error", what, index, limit-1))
	}
	return &OutOfRangeError{what: what, index: index, limit: limit}
}

func (oore *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s is out of range(0-%d): %d",
		oore.what, oore.limit-1, oore.index)
}

func (oore *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}

func newOverlapError(sub int) error {
	return fmt.Errorf("sub-board %d: a cell is held by both players", sub)
}
