package bgengine

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrIllegalRoll  = errors.New("illegal roll")
	ErrEmptyHistory = errors.New("no moves to undo")
	ErrGameOver     = errors.New("game is over")
)

// MoveError describes a rejected move. It matches ErrIllegalMove.
type MoveError struct {
	From   int
	To     int
	Die    int
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("illegal move %s/%s (%d): %s", FormatSpace(e.From), FormatSpace(e.To), e.Die, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrIllegalMove
}
