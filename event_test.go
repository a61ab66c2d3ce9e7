package bgengine

import (
	"encoding/json"
	"testing"
)

func TestDecodeEvent(t *testing.T) {
	moved := &EventMoved{
		Moves: []Move{{From: 7, To: 9, Die: 2}},
		Hit:   true,
	}
	moved.Type = EventTypeMoved
	moved.Player = Black

	buf, err := json.Marshal(moved)
	if err != nil {
		t.Fatal(err)
	}
	ev, err := DecodeEvent(buf)
	if err != nil {
		t.Fatalf("failed to decode event: %s", err)
	}
	decoded, ok := ev.(*EventMoved)
	if !ok {
		t.Fatalf("unexpected event type %T", ev)
	}
	if decoded.Player != Black || !decoded.Hit || len(decoded.Moves) != 1 || decoded.Moves[0] != moved.Moves[0] {
		t.Errorf("got %+v, want %+v", decoded, moved)
	}
}

func TestDecodeEventBoard(t *testing.T) {
	g := testGame(t, nil, White, 3, 1)
	roll(t, g)

	board := &EventBoard{GameState: *g.Snapshot()}
	board.Type = EventTypeBoard
	buf, err := json.Marshal(board)
	if err != nil {
		t.Fatal(err)
	}
	ev, err := DecodeEvent(buf)
	if err != nil {
		t.Fatalf("failed to decode event: %s", err)
	}
	decoded := ev.(*EventBoard)
	if decoded.Board != board.Board {
		t.Error("decoded board differs")
	}
	if decoded.Turn != White || len(decoded.Available) != len(board.Available) {
		t.Errorf("decoded state differs: %+v", decoded.GameState)
	}
}

func TestDecodeEventInvalid(t *testing.T) {
	for _, message := range []string{`{"Type":"unknown"}`, `not json`} {
		if _, err := DecodeEvent([]byte(message)); err == nil {
			t.Errorf("expected error decoding %s", message)
		}
	}
}
