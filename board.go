package bgengine

import "fmt"

// Points are indexed 0-23. White moves toward 23 and bears off past it,
// black moves toward 0 and bears off past it.
const (
	NumPoints = 24

	// SpaceBar is the source of a checker entering from the bar.
	SpaceBar = 25
	// SpaceOff is the destination of a checker being borne off.
	SpaceOff = 26
)

const (
	// CheckersPerPlayer is the number of checkers each player owns.
	CheckersPerPlayer = 15

	maxPointCheckers = 15
)

// Point is a single board position. Color is NoPlayer when the point is empty.
type Point struct {
	Color    Player
	Checkers int
}

// Board holds every checker in play. It contains only arrays, so assigning a
// Board produces an independent copy.
type Board struct {
	Points [NumPoints]Point
	Bar    [2]int // Indexed by player: white, black.
	Home   [2]int // Indexed by player: white, black.
}

// NewBoard returns a board with the standard starting layout.
func NewBoard() *Board {
	b := &Board{}
	b.setup()
	return b
}

func (b *Board) setup() {
	*b = Board{}
	for _, c := range startingLayout {
		err := b.AddCheckers(c.point, c.player, c.count)
		if err != nil {
			panic(err)
		}
	}
}

var startingLayout = []struct {
	player Player
	point  int
	count  int
}{
	{White, 0, 2},
	{White, 11, 5},
	{White, 16, 3},
	{White, 18, 5},
	{Black, 23, 2},
	{Black, 12, 5},
	{Black, 7, 3},
	{Black, 5, 5},
}

// AddCheckers places count checkers of the provided color on a point.
func (b *Board) AddCheckers(point int, color Player, count int) error {
	if !ValidPoint(point) {
		return fmt.Errorf("invalid point %d", point)
	} else if !color.valid() {
		return fmt.Errorf("invalid color %d", color)
	} else if count < 0 {
		return fmt.Errorf("invalid checker count %d", count)
	}
	p := &b.Points[point]
	if p.Checkers > 0 && p.Color != color {
		return fmt.Errorf("point %d is occupied by %s", point, p.Color)
	} else if p.Checkers+count > maxPointCheckers {
		return fmt.Errorf("point %d would hold %d checkers", point, p.Checkers+count)
	}
	p.Checkers += count
	if p.Checkers > 0 {
		p.Color = color
	}
	return nil
}

// Checkers returns the number of checkers of the provided color on a point.
func (b *Board) Checkers(point int, color Player) int {
	if !ValidPoint(point) || b.Points[point].Color != color {
		return 0
	}
	return b.Points[point].Checkers
}

// Blot returns whether a point holds exactly one checker.
func (b *Board) Blot(point int) bool {
	return ValidPoint(point) && b.Points[point].Checkers == 1
}

// BarCount returns the number of the player's checkers waiting on the bar.
func (b *Board) BarCount(p Player) int {
	if !p.valid() {
		return 0
	}
	return b.Bar[p-1]
}

// HomeCount returns the number of checkers the player has borne off.
func (b *Board) HomeCount(p Player) int {
	if !p.valid() {
		return 0
	}
	return b.Home[p-1]
}

// TotalOf counts the player's checkers on the points, on the bar and at home.
func (b *Board) TotalOf(p Player) int {
	total := b.BarCount(p) + b.HomeCount(p)
	for point := range b.Points {
		total += b.Checkers(point, p)
	}
	return total
}

// Pips returns the total number of pips the player must move to bear off all
// checkers. Checkers on the bar count as 25 pips.
func (b *Board) Pips(p Player) int {
	pips := b.BarCount(p) * (NumPoints + 1)
	for point := range b.Points {
		pips += b.Checkers(point, p) * bearOffDistance(p, point)
	}
	return pips
}

// Validate checks the board invariants.
func (b *Board) Validate() error {
	for point, p := range b.Points {
		switch {
		case p.Checkers < 0 || p.Checkers > maxPointCheckers:
			return fmt.Errorf("point %d holds %d checkers", point, p.Checkers)
		case p.Checkers == 0 && p.Color != NoPlayer:
			return fmt.Errorf("empty point %d has color %s", point, p.Color)
		case p.Checkers > 0 && !p.Color.valid():
			return fmt.Errorf("point %d holds checkers without a color", point)
		}
	}
	for _, player := range []Player{White, Black} {
		if b.BarCount(player) < 0 || b.HomeCount(player) < 0 {
			return fmt.Errorf("negative bar or home count for %s", player)
		}
		if total := b.TotalOf(player); total != CheckersPerPlayer {
			return fmt.Errorf("%s has %d checkers", player, total)
		}
	}
	return nil
}

func (b *Board) removeChecker(point int) {
	p := &b.Points[point]
	p.Checkers--
	if p.Checkers == 0 {
		p.Color = NoPlayer
	}
}

func (b *Board) pushChecker(point int, color Player) {
	p := &b.Points[point]
	p.Checkers++
	p.Color = color
}

// ValidPoint returns whether the index refers to one of the 24 points.
func ValidPoint(point int) bool {
	return point >= 0 && point < NumPoints
}
