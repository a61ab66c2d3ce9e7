package bgengine

import (
	"testing"
)

type placement struct {
	player Player
	point  int
	count  int
}

// testBoard builds a board from placements and bar counts. Checkers not
// placed on a point or the bar are placed at home.
func testBoard(t *testing.T, bar [2]int, placements ...placement) *Board {
	t.Helper()

	b := &Board{Bar: bar}
	for _, p := range placements {
		err := b.AddCheckers(p.point, p.player, p.count)
		if err != nil {
			t.Fatalf("failed to add checkers: %s", err)
		}
	}
	for i, player := range []Player{White, Black} {
		b.Home[i] = CheckersPerPlayer - b.TotalOf(player)
	}
	err := b.Validate()
	if err != nil {
		t.Fatalf("invalid test board: %s", err)
	}
	return b
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	if err := b.Validate(); err != nil {
		t.Fatalf("starting board is invalid: %s", err)
	}

	expected := []placement{
		{White, 0, 2},
		{White, 11, 5},
		{White, 16, 3},
		{White, 18, 5},
		{Black, 23, 2},
		{Black, 12, 5},
		{Black, 7, 3},
		{Black, 5, 5},
	}
	for _, p := range expected {
		if got := b.Checkers(p.point, p.player); got != p.count {
			t.Errorf("point %d: got %d %s checkers, want %d", p.point, got, p.player, p.count)
		}
	}
	for _, player := range []Player{White, Black} {
		if got := b.TotalOf(player); got != CheckersPerPlayer {
			t.Errorf("%s total = %d, want %d", player, got, CheckersPerPlayer)
		}
		if b.BarCount(player) != 0 || b.HomeCount(player) != 0 {
			t.Errorf("%s has checkers on the bar or at home", player)
		}
		if got := b.Pips(player); got != 167 {
			t.Errorf("%s pips = %d, want 167", player, got)
		}
	}
}

func TestAddCheckers(t *testing.T) {
	b := &Board{}
	if err := b.AddCheckers(3, White, 2); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if b.Points[3].Color != White || b.Points[3].Checkers != 2 {
		t.Fatalf("unexpected point state %+v", b.Points[3])
	}

	tests := []struct {
		name  string
		point int
		color Player
		count int
	}{
		{"occupied by opponent", 3, Black, 1},
		{"invalid point", NumPoints, White, 1},
		{"negative point", -1, White, 1},
		{"invalid color", 4, NoPlayer, 1},
		{"negative count", 4, White, -1},
		{"too many checkers", 3, White, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *b
			if err := b.AddCheckers(tt.point, tt.color, tt.count); err == nil {
				t.Error("expected error, got nil")
			}
			if *b != before {
				t.Error("board changed after rejected AddCheckers")
			}
		})
	}
}

func TestRemoveCheckerClearsColor(t *testing.T) {
	b := &Board{}
	if err := b.AddCheckers(7, Black, 1); err != nil {
		t.Fatal(err)
	}
	if !b.Blot(7) {
		t.Error("expected point 7 to be a blot")
	}
	b.removeChecker(7)
	if b.Points[7].Color != NoPlayer || b.Points[7].Checkers != 0 {
		t.Errorf("expected empty point, got %+v", b.Points[7])
	}
	b.pushChecker(7, White)
	if b.Points[7].Color != White || b.Points[7].Checkers != 1 {
		t.Errorf("expected one white checker, got %+v", b.Points[7])
	}
}

func TestValidate(t *testing.T) {
	b := NewBoard()
	b.Home[0] = 1
	if err := b.Validate(); err == nil {
		t.Error("expected error for 16 white checkers")
	}

	b = NewBoard()
	b.Points[2].Color = Black
	if err := b.Validate(); err == nil {
		t.Error("expected error for colored empty point")
	}
}

func TestPips(t *testing.T) {
	b := testBoard(t, [2]int{1, 0},
		placement{White, 23, 2},
		placement{Black, 0, 3},
	)
	if got := b.Pips(White); got != 25+2 {
		t.Errorf("white pips = %d, want 27", got)
	}
	if got := b.Pips(Black); got != 3 {
		t.Errorf("black pips = %d, want 3", got)
	}
}
