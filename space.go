package bgengine

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Move is a single checker movement using one die.
type Move struct {
	From int
	To   int
	Die  int
}

func (m Move) String() string {
	return FormatSpace(m.From) + "/" + FormatSpace(m.To)
}

// Destination is a space reachable from a source using the provided die.
type Destination struct {
	To  int
	Die int
}

// ParseSpace parses a space as displayed to players. Points are numbered
// 1-24, the bar is "bar" and bearing off is "off". It returns -1 when the
// space is invalid.
func ParseSpace(space string) int {
	switch strings.ToLower(space) {
	case "bar", "b":
		return SpaceBar
	case "off", "o", "home":
		return SpaceOff
	}
	i, err := strconv.Atoi(space)
	if err != nil || i < 1 || i > NumPoints {
		return -1
	}
	return i - 1
}

// FormatSpace formats a space as displayed to players.
func FormatSpace(space int) string {
	switch space {
	case SpaceBar:
		return "bar"
	case SpaceOff:
		return "off"
	}
	return strconv.Itoa(space + 1)
}

// ParseMove parses a move in the form FROM/TO.
func ParseMove(s string) (from int, to int, err error) {
	split := strings.Split(s, "/")
	if len(split) != 2 {
		return -1, -1, fmt.Errorf("invalid move %q: expected FROM/TO", s)
	}
	from, to = ParseSpace(split[0]), ParseSpace(split[1])
	if from == -1 || from == SpaceOff {
		return -1, -1, fmt.Errorf("invalid source %q", split[0])
	} else if to == -1 || to == SpaceBar {
		return -1, -1, fmt.Errorf("invalid destination %q", split[1])
	}
	return from, to, nil
}

// FormatMoves formats moves separated by spaces.
func FormatMoves(moves []Move) []byte {
	var out bytes.Buffer
	for i, m := range moves {
		if i != 0 {
			out.WriteByte(' ')
		}
		out.WriteString(m.String())
	}
	return out.Bytes()
}
