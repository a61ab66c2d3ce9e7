package server

import (
	"testing"

	"codeberg.org/tslocum/bgengine"
)

func TestRenderBoard(t *testing.T) {
	g := bgengine.NewGame()

	expected := []string{
		" 13 14 15 16 17 18 | 19 20 21 22 23 24",
		" b5  .  .  . w3  . | w5  .  .  .  . b2",
		" w5  .  .  . b3  . | b5  .  .  .  . w2",
		" 12 11 10  9  8  7 |  6  5  4  3  2  1",
		"Bar: white 0, black 0. Off: white 0, black 0.",
		"Turn: white. Awaiting roll.",
		"Pips: white 167, black 167.",
		"Position: " + bgengine.NewBoard().PositionID(),
	}
	lines := renderBoard(g.Snapshot())
	if len(lines) != len(expected) {
		t.Fatalf("got %d lines, want %d:\n%q", len(lines), len(expected), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], expected[i])
		}
	}
}

func TestRenderBoardState(t *testing.T) {
	tests := []struct {
		name  string
		state bgengine.GameState
		line  string
	}{
		{
			name: "moving",
			state: bgengine.GameState{
				Turn:  bgengine.Black,
				Roll1: 4,
				Roll2: 4,
				Moves: []int{4, 4, 4},
				State: bgengine.StateMoving,
			},
			line: "Turn: black. Dice: 4-4. Moves: 4 4 4.",
		},
		{
			name: "won",
			state: bgengine.GameState{
				Winner: bgengine.Black,
				State:  bgengine.StateWon,
			},
			line: "Winner: black.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := renderBoard(&tt.state)
			if got := lines[5]; got != tt.line {
				t.Errorf("got %q, want %q", got, tt.line)
			}
		})
	}
}

func TestRenderPoint(t *testing.T) {
	if got := renderPoint(bgengine.Point{}); got != "." {
		t.Errorf("got %q for an empty point", got)
	}
	if got := renderPoint(bgengine.Point{Color: bgengine.White, Checkers: 12}); got != "w12" {
		t.Errorf("got %q, want w12", got)
	}
}
