package bgengine

import (
	"slices"
)

// IsValidMove returns whether the player to move may move a checker from the
// source (a point or SpaceBar) to the destination (a point or SpaceOff). The
// dice are not considered.
func (g *Game) IsValidMove(from int, to int) bool {
	return g.validMove(g.turn, from, to)
}

func (g *Game) validMove(player Player, from int, to int) bool {
	if !player.valid() {
		return false
	}
	opponent := player.Opponent()

	// Enter from the bar.
	if from == SpaceBar {
		return g.board.BarCount(player) > 0 && ValidPoint(to) && g.board.Checkers(to, opponent) < 2
	}

	if !ValidPoint(from) || g.board.BarCount(player) > 0 || g.board.Checkers(from, player) == 0 {
		return false
	}

	if to == SpaceOff {
		return g.CanBearOff(player)
	} else if !ValidPoint(to) || (to-from)*player.Direction() <= 0 {
		return false
	}
	return g.board.Checkers(to, opponent) < 2
}

// CanBearOff returns whether all of the player's checkers are in their home
// quadrant and none are on the bar.
func (g *Game) CanBearOff(player Player) bool {
	if !player.valid() || g.board.BarCount(player) > 0 {
		return false
	}
	for point := range g.board.Points {
		if !player.InHome(point) && g.board.Checkers(point, player) > 0 {
			return false
		}
	}
	return true
}

// FurthestChecker returns the point of the player's checker furthest from
// bearing off: the lowest point holding white or the highest point holding
// black.
func (g *Game) FurthestChecker(player Player) int {
	if player == Black {
		for point := NumPoints - 1; point >= 0; point-- {
			if g.board.Checkers(point, Black) > 0 {
				return point
			}
		}
		return NumPoints - 1
	}
	for point := 0; point < NumPoints; point++ {
		if g.board.Checkers(point, White) > 0 {
			return point
		}
	}
	return 0
}

// Target returns the space a die value reaches from the source for the player
// to move. Movement past the last point results in SpaceOff. It returns -1
// when the source or die value is invalid.
func (g *Game) Target(from int, die int) int {
	return target(g.turn, from, die)
}

func target(player Player, from int, die int) int {
	if die < 1 || die > 6 || !player.valid() {
		return -1
	}
	if from == SpaceBar {
		return player.EntryPoint(die)
	} else if !ValidPoint(from) {
		return -1
	}
	to := from + player.Direction()*die
	if !ValidPoint(to) {
		return SpaceOff
	}
	return to
}

// bearOffDistance returns the exact die value needed to bear off from a point.
func bearOffDistance(player Player, from int) int {
	if player == Black {
		return from + 1
	}
	return NumPoints - from
}

// bearOffAllowed returns whether the die bears off a checker from the point.
// The die must fit exactly, or overshoot when no checker lies further back.
func (g *Game) bearOffAllowed(player Player, from int, die int) bool {
	distance := bearOffDistance(player, from)
	return die == distance || (die > distance && from == g.FurthestChecker(player))
}

// reaches returns whether the die moves a checker from the source to the
// destination.
func (g *Game) reaches(player Player, from int, to int, die int) bool {
	if target(player, from, die) != to {
		return false
	} else if to == SpaceOff {
		return g.bearOffAllowed(player, from, die)
	}
	return true
}

// playable returns the destination the die moves a checker to from the
// source, and whether that move is legal.
func (g *Game) playable(player Player, from int, die int) (int, bool) {
	to := target(player, from, die)
	if to == -1 || !g.validMove(player, from, to) {
		return -1, false
	} else if to == SpaceOff && !g.bearOffAllowed(player, from, die) {
		return -1, false
	}
	return to, true
}

// HasValidMoves returns whether the player may use any of the remaining move
// values.
func (g *Game) HasValidMoves(player Player) bool {
	if !player.valid() || g.winner != NoPlayer {
		return false
	}
	for _, die := range uniqueDice(g.moves) {
		if g.board.BarCount(player) > 0 {
			if _, ok := g.playable(player, SpaceBar, die); ok {
				return true
			}
			continue
		}
		for point := range g.board.Points {
			if g.board.Checkers(point, player) == 0 {
				continue
			}
			if _, ok := g.playable(player, point, die); ok {
				return true
			}
		}
	}
	return false
}

// LegalDestinations returns each destination reachable from the source by the
// player to move, paired with the die value which reaches it. Results are
// ordered by destination and die value.
func (g *Game) LegalDestinations(from int) []Destination {
	if g.winner != NoPlayer {
		return nil
	}
	var destinations []Destination
	for _, die := range uniqueDice(g.moves) {
		to, ok := g.playable(g.turn, from, die)
		if !ok {
			continue
		}
		destinations = append(destinations, Destination{To: to, Die: die})
	}
	slices.SortFunc(destinations, func(a, b Destination) int {
		if a.To != b.To {
			return a.To - b.To
		}
		return a.Die - b.Die
	})
	return destinations
}

// LegalMoves returns every move the player to move may make with a single
// remaining die.
func (g *Game) LegalMoves() []Move {
	if g.winner != NoPlayer || len(g.moves) == 0 {
		return nil
	}
	var sources []int
	if g.board.BarCount(g.turn) > 0 {
		sources = []int{SpaceBar}
	} else {
		for point := range g.board.Points {
			if g.board.Checkers(point, g.turn) > 0 {
				sources = append(sources, point)
			}
		}
	}
	var moves []Move
	for _, from := range sources {
		for _, d := range g.LegalDestinations(from) {
			moves = append(moves, Move{From: from, To: d.To, Die: d.Die})
		}
	}
	return moves
}

// WouldHit returns whether moving the player to move onto the point hits a
// blot.
func (g *Game) WouldHit(to int) bool {
	return g.board.Checkers(to, g.turn.Opponent()) == 1
}

// DieFor returns the remaining die value which moves a checker from the
// source to the destination. When more than one die value would bear off the
// checker, the smallest is used. It returns 0 when no die value applies.
func (g *Game) DieFor(from int, to int) int {
	for _, d := range g.LegalDestinations(from) {
		if d.To == to {
			return d.Die
		}
	}
	return 0
}

func uniqueDice(moves []int) []int {
	dice := slices.Clone(moves)
	slices.Sort(dice)
	return slices.Compact(dice)
}
