package server

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/tslocum/bgengine"
)

// renderBoard returns a plain text rendering of the game. Points are numbered
// 1-24 as entered in commands: 13-24 across the top, 12-1 across the bottom.
func renderBoard(state *bgengine.GameState) []string {
	top := make([]int, 0, 12)
	for point := 12; point < bgengine.NumPoints; point++ {
		top = append(top, point)
	}
	bottom := make([]int, 0, 12)
	for point := 11; point >= 0; point-- {
		bottom = append(bottom, point)
	}

	b := &state.Board
	lines := []string{
		renderRow(top, func(point int) string { return strconv.Itoa(point + 1) }),
		renderRow(top, func(point int) string { return renderPoint(b.Points[point]) }),
		renderRow(bottom, func(point int) string { return renderPoint(b.Points[point]) }),
		renderRow(bottom, func(point int) string { return strconv.Itoa(point + 1) }),
		fmt.Sprintf("Bar: white %d, black %d. Off: white %d, black %d.", b.Bar[0], b.Bar[1], b.Home[0], b.Home[1]),
	}

	switch state.State {
	case bgengine.StateWon:
		lines = append(lines, fmt.Sprintf("Winner: %s.", state.Winner))
	case bgengine.StateMoving:
		moves := make([]string, len(state.Moves))
		for i, m := range state.Moves {
			moves[i] = strconv.Itoa(m)
		}
		lines = append(lines, fmt.Sprintf("Turn: %s. Dice: %d-%d. Moves: %s.", state.Turn, state.Roll1, state.Roll2, strings.Join(moves, " ")))
	default:
		lines = append(lines, fmt.Sprintf("Turn: %s. Awaiting roll.", state.Turn))
	}
	lines = append(lines,
		fmt.Sprintf("Pips: white %d, black %d.", state.Pips[0], state.Pips[1]),
		fmt.Sprintf("Position: %s", state.PositionID),
	)
	return lines
}

func renderRow(points []int, cell func(point int) string) string {
	var sb strings.Builder
	for i, point := range points {
		if i == 6 {
			sb.WriteString(" |")
		}
		fmt.Fprintf(&sb, "%3s", cell(point))
	}
	return sb.String()
}

func renderPoint(p bgengine.Point) string {
	if p.Checkers == 0 {
		return "."
	}
	return p.Color.Letter() + strconv.Itoa(p.Checkers)
}
