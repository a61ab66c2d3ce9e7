package bgengine

// GameState is a read-only view of a game sent to the presentation layer.
type GameState struct {
	Board      Board
	Turn       Player
	Roll1      int
	Roll2      int
	Moves      []int  // Remaining move values.
	Available  []Move // Legal moves.
	Winner     Player
	State      TurnState
	CanUndo    bool
	PositionID string
	Pips       [2]int // White, black.
}

// MayRoll returns whether the player to move may roll.
func (g *GameState) MayRoll() bool {
	return g.State == StateAwaitingRoll
}

// Selectable returns the sources holding a checker which may be moved.
func (g *GameState) Selectable() []int {
	var sources []int
	for _, m := range g.Available {
		if len(sources) == 0 || sources[len(sources)-1] != m.From {
			sources = append(sources, m.From)
		}
	}
	return sources
}
