package bgengine

import (
	"fmt"
	"slices"
	"time"
)

// snapshot is the state restored by Undo. Board holds only arrays, so the
// copy shares nothing with the live game.
type snapshot struct {
	board Board
	turn  Player
	roll1 int
	roll2 int
	moves []int
	rolls int
}

func (g *Game) snapshot() snapshot {
	return snapshot{
		board: g.board,
		turn:  g.turn,
		roll1: g.roll1,
		roll2: g.roll2,
		moves: slices.Clone(g.moves),
		rolls: g.rolls,
	}
}

// ApplyMove moves a checker of the player to move from the source (a point or
// SpaceBar) to the destination (a point or SpaceOff) using the provided die.
// The move is validated before any state changes. When the move ends the
// turn, either because the dice are used or because no legal move remains,
// the turn passes to the opponent.
func (g *Game) ApplyMove(from int, to int, die int) error {
	err := g.checkMove(from, to, die)
	if err != nil {
		return err
	}

	g.history = append(g.history, g.snapshot())
	g.passed = false

	i := slices.Index(g.moves, die)
	g.moves = slices.Delete(g.moves, i, i+1)

	player := g.turn
	if to == SpaceOff {
		g.board.removeChecker(from)
		g.board.Home[player-1]++
		if g.board.HomeCount(player) == CheckersPerPlayer {
			g.winner = player
			g.ended = time.Now()
		}
	} else {
		opponent := player.Opponent()
		if g.board.Checkers(to, opponent) == 1 {
			g.board.removeChecker(to)
			g.board.Bar[opponent-1]++
		}
		if from == SpaceBar {
			g.board.Bar[player-1]--
		} else {
			g.board.removeChecker(from)
		}
		g.board.pushChecker(to, player)
	}

	switch {
	case g.winner != NoPlayer:
	case len(g.moves) == 0:
		g.SwitchPlayer()
	case !g.HasValidMoves(g.turn):
		g.passed = true
		g.SwitchPlayer()
	}
	return nil
}

func (g *Game) checkMove(from int, to int, die int) error {
	fail := func(reason string) error {
		return &MoveError{
			From:   from,
			To:     to,
			Die:    die,
			Reason: reason,
		}
	}
	switch {
	case g.winner != NoPlayer:
		return fail("the game is over")
	case len(g.moves) == 0:
		return fail("the dice have not been rolled")
	case !slices.Contains(g.moves, die):
		return fail(fmt.Sprintf("%d is not an available move", die))
	case !g.IsValidMove(from, to):
		return fail("the move is not allowed")
	case !g.reaches(g.turn, from, to, die):
		return fail(fmt.Sprintf("%d does not move a checker from %s to %s", die, FormatSpace(from), FormatSpace(to)))
	}
	return nil
}

// Undo restores the game to the state before the most recently applied move,
// including any checker hit by that move.
func (g *Game) Undo() error {
	if g.winner != NoPlayer {
		return ErrGameOver
	} else if len(g.history) == 0 {
		return ErrEmptyHistory
	}

	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.board = last.board
	g.turn = last.turn
	g.roll1, g.roll2 = last.roll1, last.roll2
	g.moves = last.moves
	g.rolls = last.rolls
	g.passed = false
	return nil
}

// UndoTurn returns the player to move after Undo, or NoPlayer when there is
// nothing to undo.
func (g *Game) UndoTurn() Player {
	if len(g.history) == 0 {
		return NoPlayer
	}
	return g.history[len(g.history)-1].turn
}

// UndoDiscardsRoll returns whether the dice were rolled after the most
// recently applied move. Undo would discard that roll.
func (g *Game) UndoDiscardsRoll() bool {
	return len(g.history) != 0 && g.history[len(g.history)-1].rolls != g.rolls
}
