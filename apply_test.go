package bgengine

import (
	"errors"
	"reflect"
	"testing"
)

// Scenario: moving onto a blot sends it to the bar.
func TestApplyMoveHit(t *testing.T) {
	b := testBoard(t, [2]int{},
		placement{White, 8, 2},
		placement{Black, 10, 1},
		placement{Black, 3, 5},
	)
	g := testGame(t, b, White, 2, 5)
	roll(t, g)

	if err := g.ApplyMove(8, 10, 2); err != nil {
		t.Fatalf("failed to hit: %s", err)
	}
	board := g.Board()
	if got := board.BarCount(Black); got != 1 {
		t.Errorf("black bar = %d, want 1", got)
	}
	if p := board.Points[10]; p.Color != White || p.Checkers != 1 {
		t.Errorf("point 10 = %+v, want one white checker", p)
	}
	if got := board.Checkers(8, White); got != 1 {
		t.Errorf("point 8 holds %d white checkers, want 1", got)
	}
	if got := g.RemainingMoves(); !reflect.DeepEqual(got, []int{5}) {
		t.Errorf("remaining moves = %v, want [5]", got)
	}
	checkInvariants(t, g)
}

func TestApplyMoveEnterFromBar(t *testing.T) {
	b := testBoard(t, [2]int{0, 1},
		placement{White, 20, 1},
		placement{White, 0, 4},
		placement{Black, 12, 4},
	)
	g := testGame(t, b, Black, 4, 6)
	roll(t, g)

	if err := g.ApplyMove(SpaceBar, 20, 4); err != nil {
		t.Fatalf("failed to enter: %s", err)
	}
	board := g.Board()
	if board.BarCount(Black) != 0 || board.BarCount(White) != 1 {
		t.Errorf("bar = %v, want white 1 black 0", board.Bar)
	}
	if board.Checkers(20, Black) != 1 {
		t.Errorf("expected black to hold point 20, got %+v", board.Points[20])
	}
	checkInvariants(t, g)
}

func TestApplyMoveRejected(t *testing.T) {
	g := testGame(t, nil, White, 3, 1)

	if err := g.ApplyMove(0, 3, 3); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("expected move before rolling to be rejected, got %v", err)
	}
	roll(t, g)

	tests := []struct {
		name string
		from int
		to   int
		die  int
	}{
		{"unavailable die", 0, 5, 5},
		{"die does not reach", 0, 2, 3},
		{"blocked point", 0, 5, 3},
		{"empty source", 2, 5, 3},
		{"opponent checker", 7, 4, 3},
		{"bar without checkers", SpaceBar, 2, 3},
		{"bear off from outside home", 18, SpaceOff, 3},
		{"invalid die", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := g.Snapshot()
			err := g.ApplyMove(tt.from, tt.to, tt.die)
			if !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("expected ErrIllegalMove, got %v", err)
			}
			var moveErr *MoveError
			if !errors.As(err, &moveErr) || moveErr.From != tt.from || moveErr.To != tt.to || moveErr.Die != tt.die {
				t.Errorf("unexpected error details: %v", err)
			}
			if !reflect.DeepEqual(before, g.Snapshot()) {
				t.Error("rejected move changed the game")
			}
			if g.CanUndo() {
				t.Error("rejected move was recorded in the history")
			}
		})
	}
}

func TestUndoEmpty(t *testing.T) {
	g := NewGame()
	if err := g.Undo(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("expected ErrEmptyHistory, got %v", err)
	}
	if g.Board() != *NewBoard() || g.Turn() != White {
		t.Error("empty undo changed the game")
	}
}

func TestUndoRestoresHit(t *testing.T) {
	b := testBoard(t, [2]int{},
		placement{White, 8, 2},
		placement{Black, 10, 1},
		placement{Black, 3, 5},
	)
	g := testGame(t, b, White, 2, 5)
	roll(t, g)

	before := g.Snapshot()
	if err := g.ApplyMove(8, 10, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.Undo(); err != nil {
		t.Fatalf("failed to undo: %s", err)
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Errorf("undo did not restore the game\nbefore: %+v\nafter:  %+v", before, g.Snapshot())
	}
	if g.CanUndo() {
		t.Error("expected history to be empty")
	}
}

func TestUndoChained(t *testing.T) {
	g := testGame(t, nil, White, 2, 2)
	roll(t, g)

	var states []*GameState
	moves := []Move{
		{From: 0, To: 2, Die: 2},
		{From: 2, To: 4, Die: 2},
		{From: 16, To: 18, Die: 2},
		{From: 16, To: 18, Die: 2},
	}
	for _, m := range moves {
		states = append(states, g.Snapshot())
		if err := g.ApplyMove(m.From, m.To, m.Die); err != nil {
			t.Fatalf("failed to apply %s: %s", m, err)
		}
	}
	if g.Turn() != Black {
		t.Fatalf("expected black to move after four moves, got %s", g.Turn())
	}

	for i := len(states) - 1; i >= 0; i-- {
		if err := g.Undo(); err != nil {
			t.Fatalf("failed to undo move %d: %s", i, err)
		}
		if !reflect.DeepEqual(states[i], g.Snapshot()) {
			t.Errorf("undo %d did not restore the game", i)
		}
		checkInvariants(t, g)
	}
	if err := g.Undo(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("expected ErrEmptyHistory, got %v", err)
	}
}

// A move ending the turn because no further move is possible is undone along
// with the pass.
func TestUndoRestoresPassedTurn(t *testing.T) {
	b := testBoard(t, [2]int{},
		placement{White, 16, 1},
		placement{White, 18, 2},
		placement{Black, 22, 2},
		placement{Black, 23, 2},
		placement{Black, 21, 2},
	)
	g := testGame(t, b, White, 2, 5)
	roll(t, g)

	if err := g.ApplyMove(16, 18, 2); err != nil {
		t.Fatal(err)
	}
	if !g.Passed() || g.Turn() != Black {
		t.Fatalf("expected the turn to pass, got passed %v turn %s", g.Passed(), g.Turn())
	}
	if err := g.Undo(); err != nil {
		t.Fatal(err)
	}
	if g.Passed() || g.Turn() != White || !reflect.DeepEqual(g.RemainingMoves(), []int{2, 5}) {
		t.Errorf("undo did not restore white's turn: turn %s moves %v", g.Turn(), g.RemainingMoves())
	}
}

func TestUndoAfterNextRoll(t *testing.T) {
	g := testGame(t, nil, White, 3, 1, 6, 5)
	roll(t, g)

	if g.UndoTurn() != NoPlayer || g.UndoDiscardsRoll() {
		t.Fatal("expected nothing to undo before moving")
	}
	for _, m := range []Move{{From: 0, To: 3, Die: 3}, {From: 0, To: 1, Die: 1}} {
		if err := g.ApplyMove(m.From, m.To, m.Die); err != nil {
			t.Fatal(err)
		}
	}
	if g.Turn() != Black || g.UndoTurn() != White || g.UndoDiscardsRoll() {
		t.Fatalf("turn %s, undo restores %s, discards roll %v", g.Turn(), g.UndoTurn(), g.UndoDiscardsRoll())
	}

	roll(t, g)
	if g.UndoTurn() != White || !g.UndoDiscardsRoll() {
		t.Fatalf("expected undo to discard black's roll, undo restores %s", g.UndoTurn())
	}
	if err := g.Undo(); err != nil {
		t.Fatal(err)
	}
	if g.Turn() != White || !reflect.DeepEqual(g.RemainingMoves(), []int{1}) || g.UndoDiscardsRoll() {
		t.Errorf("undo restored turn %s moves %v", g.Turn(), g.RemainingMoves())
	}
	checkInvariants(t, g)
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	g := testGame(t, nil, White, 6, 1)
	roll(t, g)
	state := g.Snapshot()
	if err := g.ApplyMove(0, 6, 6); err != nil {
		t.Fatal(err)
	}
	if state.Board.Checkers(0, White) != 2 || !reflect.DeepEqual(state.Moves, []int{6, 1}) {
		t.Error("snapshot changed after applying a move")
	}
	if len(state.Selectable()) == 0 {
		t.Error("expected selectable checkers in snapshot")
	}
}
