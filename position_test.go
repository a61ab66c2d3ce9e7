package bgengine

import (
	"testing"
)

const startingPositionID = "w2,,,,,b5,,b3,,,,w5,b5,,,,w3,,w5,,,,,b2|0,0|0,0"

func TestPositionID(t *testing.T) {
	b := NewBoard()
	if got := b.PositionID(); got != startingPositionID {
		t.Fatalf("got position ID %q, want %q", got, startingPositionID)
	}

	parsed, err := ParsePositionID(startingPositionID)
	if err != nil {
		t.Fatalf("failed to parse position ID: %s", err)
	}
	if *parsed != *b {
		t.Errorf("parsed board differs from starting board")
	}

	b = testBoard(t, [2]int{1, 2},
		placement{White, 20, 4},
		placement{Black, 3, 1},
	)
	parsed, err = ParsePositionID(b.PositionID())
	if err != nil {
		t.Fatalf("failed to parse position ID %q: %s", b.PositionID(), err)
	}
	if *parsed != *b {
		t.Errorf("got %s, want %s", parsed.PositionID(), b.PositionID())
	}
}

func TestParsePositionIDInvalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"missing sections", "w2,,,,,b5,,b3,,,,w5,b5,,,,w3,,w5,,,,,b2|0,0"},
		{"too few points", "w2,b5|0,0|0,0"},
		{"unknown color", "x2,,,,,b5,,b3,,,,w5,b5,,,,w3,,w5,,,,,b2|0,0|0,0"},
		{"invalid count", "wz,,,,,b5,,b3,,,,w5,b5,,,,w3,,w5,,,,,b2|0,0|0,0"},
		{"wrong total", "w3,,,,,b5,,b3,,,,w5,b5,,,,w3,,w5,,,,,b2|0,0|0,0"},
		{"negative bar", "w2,,,,,b5,,b3,,,,w5,b5,,,,w3,,w5,,,,,b2|-1,0|0,0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePositionID(tt.id); err == nil {
				t.Errorf("expected error for %q", tt.id)
			}
		})
	}
}
