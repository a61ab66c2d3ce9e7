package bgengine

import (
	"fmt"
	"slices"
	"time"
)

// TurnState is the position of a game within the turn lifecycle.
type TurnState int8

const (
	StateAwaitingRoll TurnState = iota
	StateMoving
	StateWon
)

func (s TurnState) String() string {
	switch s {
	case StateMoving:
		return "moving"
	case StateWon:
		return "won"
	default:
		return "awaiting roll"
	}
}

// Game is a single backgammon game session. It is not safe for concurrent use.
type Game struct {
	board  Board
	turn   Player
	roll1  int
	roll2  int
	moves  []int // Remaining move values.
	winner Player

	lastRoll1 int
	lastRoll2 int
	passed    bool
	rolls     int

	started time.Time
	ended   time.Time

	history []snapshot
	dice    DiceSource
}

// NewGame returns a game in the starting position with white to move.
func NewGame() *Game {
	g := &Game{
		dice: cryptoSource{},
	}
	g.Reset()
	return g
}

// Reset returns the game to the starting position and clears the history.
func (g *Game) Reset() {
	g.board.setup()
	g.turn = White
	g.roll1, g.roll2 = 0, 0
	g.lastRoll1, g.lastRoll2 = 0, 0
	g.moves = nil
	g.winner = NoPlayer
	g.passed = false
	g.rolls = 0
	g.started, g.ended = time.Time{}, time.Time{}
	g.history = nil
}

// SetDiceSource replaces the source of die values. A nil source restores
// cryptographically random dice.
func (g *Game) SetDiceSource(src DiceSource) {
	if src == nil {
		src = cryptoSource{}
	}
	g.dice = src
}

// SetPosition replaces the board and the player to move. The dice and the
// history are cleared.
func (g *Game) SetPosition(b *Board, turn Player) error {
	if !turn.valid() {
		return fmt.Errorf("invalid player %d", turn)
	}
	err := b.Validate()
	if err != nil {
		return err
	}
	g.board = *b
	g.turn = turn
	g.roll1, g.roll2 = 0, 0
	g.moves = nil
	g.history = nil
	g.passed = false
	g.winner = NoPlayer
	for _, p := range []Player{White, Black} {
		if g.board.HomeCount(p) == CheckersPerPlayer {
			g.winner = p
		}
	}
	return nil
}

// Board returns a copy of the board.
func (g *Game) Board() Board {
	return g.board
}

// Turn returns the player to move.
func (g *Game) Turn() Player {
	return g.turn
}

// Dice returns the current roll. Both values are 0 before rolling.
func (g *Game) Dice() (int, int) {
	return g.roll1, g.roll2
}

// LastRoll returns the most recent roll, including a roll which was passed.
func (g *Game) LastRoll() (int, int) {
	return g.lastRoll1, g.lastRoll2
}

// RemainingMoves returns a copy of the unused move values.
func (g *Game) RemainingMoves() []int {
	return slices.Clone(g.moves)
}

// Winner returns the player who bore off all checkers, if any.
func (g *Game) Winner() Player {
	return g.winner
}

// GameOver returns whether a player has won.
func (g *Game) GameOver() bool {
	return g.winner != NoPlayer
}

// Passed returns whether the last roll or move ended the turn because no
// legal move remained.
func (g *Game) Passed() bool {
	return g.passed
}

// CanUndo returns whether a move may be undone.
func (g *Game) CanUndo() bool {
	return len(g.history) != 0 && g.winner == NoPlayer
}

// Started returns the time of the first roll.
func (g *Game) Started() time.Time {
	return g.started
}

// Ended returns the time the game was won.
func (g *Game) Ended() time.Time {
	return g.ended
}

// State returns the position of the game in the turn lifecycle.
func (g *Game) State() TurnState {
	switch {
	case g.winner != NoPlayer:
		return StateWon
	case len(g.moves) != 0:
		return StateMoving
	default:
		return StateAwaitingRoll
	}
}

// Roll rolls the dice for the player to move. When no legal move exists the
// turn passes to the opponent immediately.
func (g *Game) Roll() error {
	if g.winner != NoPlayer {
		return fmt.Errorf("%w: %w", ErrIllegalRoll, ErrGameOver)
	} else if len(g.moves) != 0 {
		return fmt.Errorf("%w: moves are pending", ErrIllegalRoll)
	}

	g.roll1, g.roll2 = g.dice.Intn(6)+1, g.dice.Intn(6)+1
	g.lastRoll1, g.lastRoll2 = g.roll1, g.roll2
	g.moves = rollMoves(g.roll1, g.roll2)
	g.passed = false
	g.rolls++
	if g.started.IsZero() {
		g.started = time.Now()
	}

	if !g.HasValidMoves(g.turn) {
		g.passed = true
		g.SwitchPlayer()
	}
	return nil
}

// SwitchPlayer passes the turn to the opponent and clears the dice.
func (g *Game) SwitchPlayer() {
	g.turn = g.turn.Opponent()
	g.roll1, g.roll2 = 0, 0
	g.moves = nil
}

// Snapshot returns a read-only view of the game for presentation.
func (g *Game) Snapshot() *GameState {
	return &GameState{
		Board:      g.board,
		Turn:       g.turn,
		Roll1:      g.roll1,
		Roll2:      g.roll2,
		Moves:      slices.Clone(g.moves),
		Winner:     g.winner,
		State:      g.State(),
		Available:  g.LegalMoves(),
		CanUndo:    g.CanUndo(),
		PositionID: g.board.PositionID(),
		Pips:       [2]int{g.board.Pips(White), g.board.Pips(Black)},
	}
}

func (s TurnState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TurnState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "moving":
		*s = StateMoving
	case "won":
		*s = StateWon
	case "awaiting roll":
		*s = StateAwaitingRoll
	default:
		return fmt.Errorf("unknown turn state %q", text)
	}
	return nil
}
