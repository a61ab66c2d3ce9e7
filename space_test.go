package bgengine

import (
	"testing"
)

func TestParseSpace(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1", 0},
		{"24", 23},
		{"bar", SpaceBar},
		{"OFF", SpaceOff},
		{"0", -1},
		{"25", -1},
		{"x", -1},
	}
	for _, tt := range tests {
		if got := ParseSpace(tt.in); got != tt.want {
			t.Errorf("ParseSpace(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseMove(t *testing.T) {
	from, to, err := ParseMove("bar/3")
	if err != nil || from != SpaceBar || to != 2 {
		t.Errorf("ParseMove(bar/3) = %d, %d, %v", from, to, err)
	}
	from, to, err = ParseMove("20/off")
	if err != nil || from != 19 || to != SpaceOff {
		t.Errorf("ParseMove(20/off) = %d, %d, %v", from, to, err)
	}
	for _, invalid := range []string{"off/3", "3/bar", "3", "3/4/5", "a/b"} {
		if _, _, err := ParseMove(invalid); err == nil {
			t.Errorf("ParseMove(%q): expected error", invalid)
		}
	}
}

func TestFormatMoves(t *testing.T) {
	moves := []Move{
		{From: SpaceBar, To: 2, Die: 3},
		{From: 0, To: 5, Die: 5},
		{From: 21, To: SpaceOff, Die: 6},
	}
	if got := string(FormatMoves(moves)); got != "bar/3 1/6 22/off" {
		t.Errorf("FormatMoves = %q", got)
	}
}
